package audit

import (
	"solarvest-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultLimit = 100

// Service reads the append-only resolution trail. Writes happen inside the
// approval transactions, not here.
type Service struct {
	DB *gorm.DB
}

// List returns recent audit entries, newest first, optionally filtered to a
// single request.
func (s *Service) List(requestID *uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultLimit
	}
	q := s.DB.Order("created_at DESC").Limit(limit)
	if requestID != nil {
		q = q.Where("request_id = ?", *requestID)
	}
	var entries []domain.AuditEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
