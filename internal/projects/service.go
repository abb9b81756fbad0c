package projects

import (
	"context"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reads the static project catalog.
type Service struct {
	DB *gorm.DB
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := s.DB.WithContext(ctx).
		Where("status = ?", "active").
		Order("name ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Service) Get(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Project not found")
		}
		return nil, err
	}
	return &project, nil
}
