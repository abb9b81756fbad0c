package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	KycStatusPending  = "pending"
	KycStatusApproved = "approved"
	KycStatusRejected = "rejected"
)

// KycRecord tracks a user's identity verification status. Document storage is
// out of scope; only the status lives here.
type KycRecord struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Status    string    `gorm:"column:status;type:varchar(10);not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KycRecord) TableName() string {
	return "kyc_records"
}
