package api

// Backing payment states.
const (
	BackingStatusPendingPayment = 0
	BackingStatusPaid           = 1
	BackingStatusCancelled      = 2
)

// Backing is a pledge against a reward tier.
type Backing struct {
	ID            int64   `json:"id"`
	BackerID      int64   `json:"backerId"`
	ProjectID     int64   `json:"projectId"`
	RewardID      int64   `json:"rewardId"`
	BackingAmount float64 `json:"backingAmount"`
	Status        int     `json:"status"`
	CreateTime    string  `json:"createTime"`
}

// BackingCreateRequest is the payload for POST /backings.
type BackingCreateRequest struct {
	RewardID int64 `json:"rewardId" validate:"required"`
}
