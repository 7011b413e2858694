package models

import "time"

// ActionDonate is the points action looked up after a successful donation.
const ActionDonate = "Donate"

// PointsActionType maps an action name to its default point value.
// Reference data, read-only from the donation flow.
type PointsActionType struct {
	Model
	ActionType    string `json:"action_type" gorm:"size:32;uniqueIndex;not null"`
	DefaultPoints int    `json:"default_points" gorm:"default:0;not null"`
}

// RewardHistory is one points-earning event. Append-only.
type RewardHistory struct {
	Model
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	ActionTypeID uint      `json:"action_type_id" gorm:"not null"`
	Points       int       `json:"points" gorm:"not null"`
	Timestamp    time.Time `json:"timestamp" gorm:"autoCreateTime"`

	ActionType *PointsActionType `json:"action_type,omitempty" gorm:"foreignKey:ActionTypeID"`
}

// PointsBadge is a badge tier keyed on accumulated points.
type PointsBadge struct {
	Model
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	MinPoints   int    `json:"min_points"`
	MaxPoints   *int   `json:"max_points,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty" gorm:"size:255"`
}

// RewardHistoryFilter carries the reward-history query filters.
type RewardHistoryFilter struct {
	ActionTypeID *uint
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
