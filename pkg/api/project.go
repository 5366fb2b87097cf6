package api

// Project lifecycle states.
const (
	ProjectStatusPending    = 0 // awaiting admin review
	ProjectStatusFunding    = 1
	ProjectStatusSuccessful = 2
	ProjectStatusFailed     = 3
)

// Project is the full project entity returned by detail endpoints.
type Project struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	CoverImage    string   `json:"coverImage"`
	GoalAmount    float64  `json:"goalAmount"`
	CurrentAmount float64  `json:"currentAmount"`
	Status        int      `json:"status"`
	EndTime       string   `json:"endTime"`
	Rewards       []Reward `json:"rewards,omitempty"`
	IsFavorite    bool     `json:"isFavorite,omitempty"`
	CategoryID    int64    `json:"categoryId"`
	CreatorID     int64    `json:"creatorId"`
	BackerIDs     []int64  `json:"backerIds,omitempty"`
}

// ProjectSummary is the trimmed shape used by list pages. It never
// carries the reward tiers.
type ProjectSummary struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CoverImage    string  `json:"coverImage"`
	GoalAmount    float64 `json:"goalAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Status        int     `json:"status"`
	EndTime       string  `json:"endTime"`
}

// Reward is a backing tier attached to a project.
type Reward struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"projectId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// RewardCreate is a reward tier nested in project create/update payloads.
// The yaml tags let the CLI accept the same field names in project files.
type RewardCreate struct {
	Title       string  `json:"title" yaml:"title" validate:"required"`
	Description string  `json:"description" yaml:"description" validate:"required"`
	Amount      float64 `json:"amount" yaml:"amount" validate:"required,gt=0"`
	Stock       int     `json:"stock" yaml:"stock" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// ProjectCreateRequest is the payload for POST /projects.
// EndTime uses the backend's ISO layout "2006-01-02T15:04:05".
type ProjectCreateRequest struct {
	Title       string         `json:"title" yaml:"title" validate:"required"`
	Description string         `json:"description" yaml:"description" validate:"required"`
	CoverImage  string         `json:"coverImage" yaml:"coverImage" validate:"required"`
	GoalAmount  float64        `json:"goalAmount" yaml:"goalAmount" validate:"required,gt=0"`
	EndTime     string         `json:"endTime" yaml:"endTime" validate:"required"`
	CategoryID  int64          `json:"categoryId" yaml:"categoryId"`
	Rewards     []RewardCreate `json:"rewards" yaml:"rewards" validate:"required,min=1,dive"`
}

// ProjectUpdateRequest is the payload for PUT /projects/{id}.
type ProjectUpdateRequest struct {
	Title       string         `json:"title" yaml:"title" validate:"required"`
	Description string         `json:"description" yaml:"description" validate:"required"`
	CoverImage  string         `json:"coverImage" yaml:"coverImage" validate:"required"`
	GoalAmount  float64        `json:"goalAmount" yaml:"goalAmount" validate:"required,gt=0"`
	EndTime     string         `json:"endTime" yaml:"endTime" validate:"required"`
	CategoryID  int64          `json:"categoryId" yaml:"categoryId"`
	Rewards     []RewardCreate `json:"rewards" yaml:"rewards" validate:"dive"`
}

// ProjectListParams are the query parameters for GET /projects.
// Zero values are omitted from the query string.
type ProjectListParams struct {
	PageNum    int
	PageSize   int
	CategoryID int64
	Status     int
	// HasStatus distinguishes "status=0" (pending) from "no status filter".
	HasStatus bool
}
