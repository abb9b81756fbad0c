package banks

import (
	"context"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the system bank directory.
type Service struct {
	DB *gorm.DB
}

// ListActive returns the active system banks shown on the withdrawal form.
func (s *Service) ListActive(ctx context.Context) ([]domain.Bank, error) {
	var banks []domain.Bank
	if err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&banks).Error; err != nil {
		return nil, err
	}
	return banks, nil
}

// Get returns one active bank by id. Deactivated banks are treated as
// missing so new withdrawals cannot snapshot them.
func (s *Service) Get(ctx context.Context, bankID uuid.UUID) (*domain.Bank, error) {
	var bank domain.Bank
	if err := s.DB.WithContext(ctx).Where("bank_id = ? AND is_active = ?", bankID, true).First(&bank).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Bank not found")
		}
		return nil, err
	}
	return &bank, nil
}
