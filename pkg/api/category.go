package api

// Category is a project category returned by GET /categories.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
