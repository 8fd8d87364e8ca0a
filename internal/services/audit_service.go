package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"teamspace/internal/events"
	"teamspace/internal/logger"
	"teamspace/internal/models"
	"teamspace/internal/session"
)

// Resource types recorded in the audit log.
const (
	ResourceTeamSpace   = "team_space"
	ResourceMember      = "member"
	ResourceCategory    = "spending_category"
	ResourceTransaction = "transaction"
)

// AuditEntry describes one successful mutation.
type AuditEntry struct {
	Event        string
	TeamSpaceID  string
	ResourceType string
	ResourceID   string
	Version      int64
	Changes      map[string]any
}

// auditService handles audit log recording and event publishing.
type auditService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewAuditService creates a new AuditServicer. A nil publisher disables events.
func NewAuditService(db *gorm.DB, publisher events.Publisher) AuditServicer {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &auditService{db: db, publisher: publisher}
}

// Log records an audit row and publishes the matching event. Errors are
// logged but never propagate to avoid disrupting the main operation.
func (s *auditService) Log(ctx context.Context, entry AuditEntry) {
	actor := session.FromContext(ctx).UserID

	var changesJSON string
	if entry.Changes != nil {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", entry.Event)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	row := &models.AuditLog{
		TeamSpaceID:  entry.TeamSpaceID,
		Action:       entry.Event,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		ActorUserID:  actor,
		Changes:      changesJSON,
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"team_space_id", entry.TeamSpaceID,
			"action", entry.Event,
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
		)
	}

	event := events.New(entry.Event, entry.TeamSpaceID, entry.ResourceID, entry.Version)
	event.ActorUserID = actor
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Get().Errorw("failed to publish event",
			"error", err,
			"type", entry.Event,
			"team_space_id", entry.TeamSpaceID,
		)
	}
}

type nopAudit struct{}

func (nopAudit) Log(context.Context, AuditEntry) {}
