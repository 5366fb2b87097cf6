package api

// NotificationFilter selects which notifications GET /notifications returns.
type NotificationFilter string

// Accepted filter values.
const (
	FilterAll         NotificationFilter = "all"
	FilterUnread      NotificationFilter = "unread"
	FilterSystem      NotificationFilter = "system"
	FilterInteraction NotificationFilter = "interaction"
)

// Notification is a single inbox entry. The sender fields are only set on
// interaction notifications (likes, replies); system notifications leave
// them empty.
type Notification struct {
	ID             int64  `json:"id"`
	Content        string `json:"content"`
	Type           string `json:"type"`
	LinkURL        string `json:"linkUrl"`
	IsRead         bool   `json:"isRead"`
	CreateTime     string `json:"createTime"`
	SenderID       int64  `json:"senderId,omitempty"`
	SenderUsername string `json:"senderUsername,omitempty"`
	SenderAvatar   string `json:"senderAvatar,omitempty"`
}

// UnreadCount is the payload of GET /notifications/unread-count.
type UnreadCount struct {
	Count int `json:"count"`
}

// NotificationListParams are the query parameters for GET /notifications.
type NotificationListParams struct {
	PageNum  int
	PageSize int
	Filter   NotificationFilter
}
