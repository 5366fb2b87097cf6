package sparkhub

import (
	"context"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (api.UnreadCount, error) {
	var out api.UnreadCount
	err := c.p.Get(ctx, "/notifications/unread-count", nil, &out)
	return out, err
}

// ListNotifications returns one page of the user's inbox. The filter
// narrows by read state or notification kind.
func (c *Client) ListNotifications(ctx context.Context, params api.NotificationListParams) (api.NotificationPage, error) {
	q := pageQuery(nil, params.PageNum, params.PageSize)
	if params.Filter != "" {
		q.Set("filter", string(params.Filter))
	}
	var out api.NotificationPage
	err := c.p.Get(ctx, "/notifications", q, &out)
	return out, err
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.p.Post(ctx, "/notifications/"+itoa(id)+"/read", nil, nil)
}

// MarkAllNotificationsRead marks the whole inbox as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.p.Post(ctx, "/notifications/read-all", nil, nil)
}
