package api

// Comment sort orders accepted by GET /projects/{id}/comments.
const (
	CommentSortTime    = "time"
	CommentSortHotness = "hotness"
)

// Comment is a project comment with its reply subtree. Top-level comments
// have ParentID == 0; replies reference their parent and are nested under
// it by the backend.
type Comment struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	CreateTime string    `json:"createTime"`
	LikeCount  int       `json:"likeCount"`
	IsLiked    bool      `json:"isLiked"`
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
	ParentID   int64     `json:"parentId"`
	Replies    []Comment `json:"replies"`
}

// CommentCreateRequest is the payload for POST /projects/{id}/comments.
// ParentID zero posts a top-level comment.
type CommentCreateRequest struct {
	Content  string `json:"content" validate:"required"`
	ParentID int64  `json:"parentId,omitempty"`
}
