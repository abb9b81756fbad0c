package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holding is one user's stake in one project. Amount is always
// shares × share price; it is recomputed on every mutation, never set
// independently. USD figures are derived at read time and not persisted.
type Holding struct {
	PortfolioID uuid.UUID `gorm:"column:portfolio_id;type:uuid;primaryKey" json:"portfolio_id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_project" json:"user_id"`
	ProjectID   uuid.UUID `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_user_project" json:"project_id"`
	Shares      int64     `gorm:"column:shares;not null" json:"shares"`
	Amount      int64     `gorm:"column:amount;not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Holding) TableName() string {
	return "holdings"
}

func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.PortfolioID == uuid.Nil {
		h.PortfolioID = uuid.New()
	}
	return nil
}
