package api

// Page is the general paged-result shape returned by list endpoints
// (projects, admin projects, admin users).
type Page[T any] struct {
	List            []T  `json:"list"`
	PageNum         int  `json:"pageNum"`
	PageSize        int  `json:"pageSize"`
	Total           int  `json:"total"`
	Pages           int  `json:"pages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NotificationPage is the richer paged shape used only by the notification
// endpoint. It is not interchangeable with Page: the backend emits extra
// cursor fields here, and unifying the two would mask real shape mismatches.
type NotificationPage struct {
	List            []Notification `json:"list"`
	Total           int            `json:"total"`
	PageNum         int            `json:"pageNum"`
	PageSize        int            `json:"pageSize"`
	Size            int            `json:"size"`
	StartRow        int            `json:"startRow"`
	EndRow          int            `json:"endRow"`
	Pages           int            `json:"pages"`
	PrePage         int            `json:"prePage"`
	NextPage        int            `json:"nextPage"`
	IsFirstPage     bool           `json:"isFirstPage"`
	IsLastPage      bool           `json:"isLastPage"`
	HasPreviousPage bool           `json:"hasPreviousPage"`
	HasNextPage     bool           `json:"hasNextPage"`
}
