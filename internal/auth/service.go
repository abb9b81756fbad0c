package auth

import (
	"solarvest-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service authenticates callers. Admins sign in with email+password; investors
// sign in with their 11-digit national id. The ledger and request queue never
// see credentials, only the resolved (user_id, role) identity.
type Service struct {
	DB *gorm.DB
}

// LoginAdmin verifies an email+password pair and requires the admin role.
func (s *Service) LoginAdmin(email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	var u domain.User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Role != domain.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// LoginInvestor verifies a national id + password pair.
func (s *Service) LoginInvestor(nationalID, password string) (*domain.User, error) {
	if nationalID == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	var u domain.User
	if err := s.DB.Where("national_id = ?", nationalID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// HashPassword produces the stored bcrypt hash for a new user's password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
