package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEntry is an append-only record of a request resolution. Written in the
// same DB transaction as the status transition, so a resolution and its audit
// row commit or roll back together.
type AuditEntry struct {
	EntryID     uuid.UUID      `gorm:"column:entry_id;type:uuid;primaryKey" json:"entry_id"`
	RequestID   uuid.UUID      `gorm:"column:request_id;type:uuid;not null;index" json:"request_id"`
	RequestKind string         `gorm:"column:request_kind;type:varchar(12);not null" json:"request_kind"`
	Action      string         `gorm:"column:action;type:varchar(10);not null" json:"action"`
	ActorID     uuid.UUID      `gorm:"column:actor_id;type:uuid;not null" json:"actor_id"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

func (e *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	return nil
}
