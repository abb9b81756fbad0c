package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a fixed-price investment project from the static catalog.
type Project struct {
	ProjectID   uuid.UUID `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Region      string    `gorm:"column:region" json:"region"`
	CapacityKW  int       `gorm:"column:capacity_kw" json:"capacity_kw"`
	Status      string    `gorm:"column:status;not null;default:active" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ProjectID == uuid.Nil {
		p.ProjectID = uuid.New()
	}
	return nil
}
