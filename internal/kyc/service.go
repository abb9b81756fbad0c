package kyc

import (
	"context"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service stores per-user verification status. Document upload and review
// happen outside this system; only the resulting status lives here.
type Service struct {
	DB *gorm.DB
}

// IsApproved reports whether the user's verification is approved. A user with
// no record is simply not approved.
func (s *Service) IsApproved(ctx context.Context, userID uuid.UUID) (bool, error) {
	var rec domain.KycRecord
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.Status == domain.KycStatusApproved, nil
}

// Get returns the user's record, defaulting to pending when none exists.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.KycRecord, error) {
	var rec domain.KycRecord
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return &domain.KycRecord{UserID: userID, Status: domain.KycStatusPending}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetStatus upserts the user's verification status (admin operation).
func (s *Service) SetStatus(ctx context.Context, userID uuid.UUID, status string) (*domain.KycRecord, error) {
	switch status {
	case domain.KycStatusPending, domain.KycStatusApproved, domain.KycStatusRejected:
	default:
		return nil, apperr.New(apperr.InvalidAmount, "Unknown verification status")
	}

	var user domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}

	rec := domain.KycRecord{UserID: userID, Status: status}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAll returns every record for the admin review screen.
func (s *Service) ListAll(ctx context.Context) ([]domain.KycRecord, error) {
	var recs []domain.KycRecord
	if err := s.DB.WithContext(ctx).Order("updated_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
