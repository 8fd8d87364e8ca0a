package models

import (
	"time"

	"gorm.io/gorm"

	"teamspace/internal/ids"
)

// AuditLog records one successful mutation of a team space.
type AuditLog struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	TeamSpaceID  string    `gorm:"not null;index" json:"team_space_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	ActorUserID  string    `json:"actor_user_id,omitempty"`
	Changes      string    `json:"changes,omitempty"`
}

// BeforeCreate assigns a time-ordered ID to new rows.
func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = ids.NewRecordID()
	}
	return nil
}
