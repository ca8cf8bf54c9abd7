package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is one row of the append-only cross-cutting audit ledger.
// Entries are never updated or deleted.
type AuditLogEntry struct {
	ID         string            `json:"id"`
	ActorID    string            `json:"actor_id"`
	Action     string            `json:"action"`
	EntityType string            `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	UserAgent  string            `json:"user_agent,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewAuditLogEntry creates an audit entry stamped with the current time.
func NewAuditLogEntry(actorID, action, entityType, entityID string, metadata map[string]string, userAgent string) *AuditLogEntry {
	return &AuditLogEntry{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		UserAgent:  userAgent,
		CreatedAt:  time.Now(),
	}
}
