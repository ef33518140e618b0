package model

import (
	"time"

	"gorm.io/datatypes"
)

// Progress records which steps of a roadmap a user has completed.
// There is one record per (UserID, RoadmapID) pair.
type Progress struct {
	ID             uint                        `json:"id" gorm:"primaryKey"`
	UserID         uint                        `json:"userId" gorm:"not null;uniqueIndex:idx_progress_user_roadmap"`
	RoadmapID      uint                        `json:"roadmapId" gorm:"not null;uniqueIndex:idx_progress_user_roadmap"`
	CompletedSteps datatypes.JSONSlice[string] `json:"completedSteps" gorm:"not null"`
	LastUpdated    time.Time                   `json:"lastUpdated" gorm:"not null"`
}

// TableName overrides the pluralized default.
func (Progress) TableName() string {
	return "progress"
}
