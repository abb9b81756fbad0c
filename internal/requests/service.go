package requests

import (
	"context"
	"encoding/json"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/ledger"
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ManualBankFallback is the display name snapshotted when a manual withdrawal
// destination leaves the bank name blank.
const ManualBankFallback = "Diger"

// BankDirectory resolves system-registered withdrawal destinations.
type BankDirectory interface {
	Get(ctx context.Context, bankID uuid.UUID) (*domain.Bank, error)
}

// Service owns deposit/withdrawal request submission, request listings and
// the approval engine (approval.go). Submission stages a pending request and
// never touches balance.
type Service struct {
	DB     *gorm.DB
	Ledger *ledger.Ledger
	Banks  BankDirectory
}

// SubmitDeposit stages a pending deposit request.
func (s *Service) SubmitDeposit(ctx context.Context, userID uuid.UUID, amount int64) (*domain.TransactionRequest, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.InvalidAmount, "Amount must be a positive number")
	}
	req := domain.TransactionRequest{
		UserID: userID,
		Type:   domain.TransactionTypeDeposit,
		Amount: amount,
		Status: domain.RequestStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// Destination is the withdrawal target as submitted: either a system bank id
// or a manual bank triple. Exactly one form must be present.
type Destination struct {
	BankID        *uuid.UUID
	BankName      string
	IBAN          string
	AccountHolder string
}

// SubmitWithdrawal stages a pending withdrawal. The resolved bank fields are
// snapshotted onto the request so later edits to a system bank record cannot
// alter it. The balance check here is advisory; the authoritative one runs at
// approval.
func (s *Service) SubmitWithdrawal(ctx context.Context, userID uuid.UUID, amount int64, dest Destination) (*domain.TransactionRequest, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.InvalidAmount, "Amount must be a positive number")
	}

	details, err := s.resolveDestination(ctx, dest)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	if user.Balance < amount {
		return nil, apperr.New(apperr.InsufficientFunds, "Insufficient funds for this withdrawal")
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	req := domain.TransactionRequest{
		UserID:            userID,
		Type:              domain.TransactionTypeWithdrawal,
		Amount:            amount,
		Status:            domain.RequestStatusPending,
		WithdrawalDetails: datatypes.JSON(payload),
	}
	if err := s.DB.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) resolveDestination(ctx context.Context, dest Destination) (*domain.WithdrawalDetails, error) {
	if dest.BankID != nil {
		bank, err := s.Banks.Get(ctx, *dest.BankID)
		if err != nil {
			return nil, err
		}
		return &domain.WithdrawalDetails{
			BankName:      bank.Name,
			IBAN:          bank.IBAN,
			AccountHolder: bank.AccountHolder,
			Source:        domain.BankSourceSystem,
		}, nil
	}

	if validation.IsBlank(dest.IBAN) && validation.IsBlank(dest.AccountHolder) {
		return nil, apperr.New(apperr.MissingDestination, "A bank selection or IBAN details are required")
	}
	if validation.IsBlank(dest.IBAN) || validation.IsBlank(dest.AccountHolder) {
		return nil, apperr.New(apperr.MissingDestination, "IBAN and account holder are both required for a manual destination")
	}
	name := dest.BankName
	if validation.IsBlank(name) {
		name = ManualBankFallback
	}
	return &domain.WithdrawalDetails{
		BankName:      name,
		IBAN:          dest.IBAN,
		AccountHolder: dest.AccountHolder,
		Source:        domain.BankSourceManual,
	}, nil
}

// ListTransactions returns the user's deposit/withdrawal requests, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.TransactionRequest, error) {
	var reqs []domain.TransactionRequest
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListAllTransactions returns every deposit/withdrawal request (admin scope).
func (s *Service) ListAllTransactions(ctx context.Context) ([]domain.TransactionRequest, error) {
	var reqs []domain.TransactionRequest
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListTrades returns the user's buy/sell requests, newest first.
func (s *Service) ListTrades(ctx context.Context, userID uuid.UUID) ([]domain.TradeRequest, error) {
	var reqs []domain.TradeRequest
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListAllTrades returns every buy/sell request (admin scope).
func (s *Service) ListAllTrades(ctx context.Context) ([]domain.TradeRequest, error) {
	var reqs []domain.TradeRequest
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}
