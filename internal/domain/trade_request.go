package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// TradeRequest is a pending intent to buy into a project or sell from a
// holding. It never carries a side effect: holdings and balance change only
// when an admin approves it. Once status leaves pending the row is immutable.
type TradeRequest struct {
	RequestID   uuid.UUID  `gorm:"column:request_id;type:uuid;primaryKey" json:"request_id"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Type        string     `gorm:"column:type;type:varchar(10);not null" json:"type"`
	ProjectID   *uuid.UUID `gorm:"column:project_id;type:uuid" json:"project_id,omitempty"`
	PortfolioID *uuid.UUID `gorm:"column:portfolio_id;type:uuid" json:"portfolio_id,omitempty"`
	Shares      int64      `gorm:"column:shares;not null" json:"shares"`
	Amount      int64      `gorm:"column:amount;not null" json:"amount"`
	Status      string     `gorm:"column:status;type:varchar(10);not null;default:pending;index" json:"status"`
	Reason      *string    `gorm:"column:reason" json:"reason,omitempty"`
	// Effect of the approved apply, recorded for audit (sell only).
	SoldShares *int64    `gorm:"column:sold_shares" json:"sold_shares,omitempty"`
	SoldAmount *int64    `gorm:"column:sold_amount" json:"sold_amount,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (TradeRequest) TableName() string {
	return "trade_requests"
}

func (r *TradeRequest) BeforeCreate(tx *gorm.DB) error {
	if r.RequestID == uuid.Nil {
		r.RequestID = uuid.New()
	}
	return nil
}
