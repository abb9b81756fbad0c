package users

import (
	"context"
	"errors"
	"strings"

	"solarvest-backend/internal/auth"
	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/ledger"
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service manages investor accounts on behalf of admins.
type Service struct {
	DB     *gorm.DB
	Ledger *ledger.Ledger
}

// CreateInput is the admin-supplied investor profile.
type CreateInput struct {
	Fullname   string
	Email      string
	NationalID string
	Password   string
}

// Create registers a new investor account. The national id must be an
// 11-digit identifier unique across accounts.
func (s *Service) Create(in CreateInput) (*domain.User, error) {
	in.Fullname = strings.TrimSpace(in.Fullname)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.NationalID = strings.TrimSpace(in.NationalID)

	if in.Fullname == "" || in.Password == "" {
		return nil, apperr.New(apperr.InvalidAmount, "Fullname and password are required")
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, apperr.New(apperr.InvalidAmount, "Invalid email address")
	}
	if !validation.IsValidNationalID(in.NationalID) {
		return nil, apperr.New(apperr.InvalidAmount, "National id must be 11 digits")
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, apperr.New(apperr.InvalidAmount, "Password must be at least 8 characters with a letter and a digit")
	}

	var count int64
	if err := s.DB.Model(&domain.User{}).
		Where("national_id = ? OR email = ?", in.NationalID, in.Email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.DuplicateIdentifier, "An account with this national id or email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Fullname:     in.Fullname,
		Email:        in.Email,
		NationalID:   &in.NationalID,
		PasswordHash: hash,
		Role:         domain.RoleInvestor,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all accounts, newest first.
func (s *Service) List() ([]domain.User, error) {
	var users []domain.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns a single account by id.
func (s *Service) Get(userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	return &user, nil
}

// AdjustBalance applies an admin balance correction through the ledger so the
// same non-negative invariant holds as for every other movement. Returns the
// refreshed account.
func (s *Service) AdjustBalance(ctx context.Context, userID uuid.UUID, delta int64) (*domain.User, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}
	if err := s.Ledger.AdjustBalance(ctx, userID, delta); err != nil {
		return nil, err
	}
	return s.Get(userID)
}
