package requests

import (
	"context"
	"encoding/json"
	"testing"

	"solarvest-backend/internal/banks"
	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/ledger"
	"solarvest-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const sharePrice = 25000

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Holding{},
		&domain.Project{},
		&domain.TradeRequest{},
		&domain.TransactionRequest{},
		&domain.Bank{},
		&domain.AuditEntry{},
	))
	return &Service{
		DB:     db,
		Ledger: ledger.New(db, sharePrice),
		Banks:  &banks.Service{DB: db},
	}, db
}

func createUser(t *testing.T, db *gorm.DB, balance int64) domain.User {
	u := domain.User{
		Fullname: "Test Investor",
		Email:    uuid.New().String() + "@test.com",
		Role:     domain.RoleInvestor,
		Balance:  balance,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createBank(t *testing.T, db *gorm.DB) domain.Bank {
	b := domain.Bank{
		Name:          "Ziraat Bankasi",
		IBAN:          "TR330006100519786457841326",
		AccountHolder: "Solarvest A.S.",
		IsActive:      true,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func withdrawalDetails(t *testing.T, req *domain.TransactionRequest) domain.WithdrawalDetails {
	var d domain.WithdrawalDetails
	require.NoError(t, json.Unmarshal(req.WithdrawalDetails, &d))
	return d
}

func TestSubmitDeposit_StaysPendingAndLeavesBalance(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 1000)

	req, err := s.SubmitDeposit(context.Background(), user.UserID, 50000)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, req.Status)
	assert.Equal(t, domain.TransactionTypeDeposit, req.Type)

	var u domain.User
	require.NoError(t, db.Where("user_id = ?", user.UserID).First(&u).Error)
	assert.Equal(t, int64(1000), u.Balance)
}

func TestSubmitDeposit_NonPositiveAmount(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 0)

	for _, amount := range []int64{0, -100} {
		_, err := s.SubmitDeposit(context.Background(), user.UserID, amount)
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidAmount, apperr.KindOf(err))
	}
}

func TestSubmitWithdrawal_SystemBankSnapshot(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)
	bank := createBank(t, db)

	req, err := s.SubmitWithdrawal(context.Background(), user.UserID, 40000, Destination{BankID: &bank.BankID})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, req.Status)

	d := withdrawalDetails(t, req)
	assert.Equal(t, bank.Name, d.BankName)
	assert.Equal(t, bank.IBAN, d.IBAN)
	assert.Equal(t, bank.AccountHolder, d.AccountHolder)
	assert.Equal(t, domain.BankSourceSystem, d.Source)

	// Editing the bank afterwards must not change the snapshot.
	require.NoError(t, db.Model(&domain.Bank{}).
		Where("bank_id = ?", bank.BankID).
		Update("iban", "TR000000000000000000000000").Error)
	var stored domain.TransactionRequest
	require.NoError(t, db.Where("request_id = ?", req.RequestID).First(&stored).Error)
	assert.Equal(t, bank.IBAN, withdrawalDetails(t, &stored).IBAN)
}

func TestSubmitWithdrawal_ManualDestination(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)

	req, err := s.SubmitWithdrawal(context.Background(), user.UserID, 10000, Destination{
		BankName:      "Garanti",
		IBAN:          "TR120006200000000001234567",
		AccountHolder: "Ali Veli",
	})
	require.NoError(t, err)

	d := withdrawalDetails(t, req)
	assert.Equal(t, "Garanti", d.BankName)
	assert.Equal(t, domain.BankSourceManual, d.Source)
}

func TestSubmitWithdrawal_BlankManualBankNameFallsBack(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)

	req, err := s.SubmitWithdrawal(context.Background(), user.UserID, 10000, Destination{
		IBAN:          "TR120006200000000001234567",
		AccountHolder: "Ali Veli",
	})
	require.NoError(t, err)
	assert.Equal(t, ManualBankFallback, withdrawalDetails(t, req).BankName)
}

func TestSubmitWithdrawal_MissingDestination(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)

	_, err := s.SubmitWithdrawal(context.Background(), user.UserID, 10000, Destination{})
	require.Error(t, err)
	assert.Equal(t, apperr.MissingDestination, apperr.KindOf(err))

	// Partial manual details are also rejected.
	_, err = s.SubmitWithdrawal(context.Background(), user.UserID, 10000, Destination{
		IBAN: "TR120006200000000001234567",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.MissingDestination, apperr.KindOf(err))
}

func TestSubmitWithdrawal_InsufficientFunds(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 5000)
	bank := createBank(t, db)

	_, err := s.SubmitWithdrawal(context.Background(), user.UserID, 5001, Destination{BankID: &bank.BankID})
	require.Error(t, err)
	assert.Equal(t, apperr.InsufficientFunds, apperr.KindOf(err))
}

func TestSubmitWithdrawal_UnknownBank(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)
	unknown := uuid.New()

	_, err := s.SubmitWithdrawal(context.Background(), user.UserID, 10000, Destination{BankID: &unknown})
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestSubmitWithdrawal_DeactivatedBank(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)
	bank := createBank(t, db)
	require.NoError(t, db.Model(&domain.Bank{}).Where("bank_id = ?", bank.BankID).
		Update("is_active", false).Error)

	_, err := s.SubmitWithdrawal(context.Background(), user.UserID, 10000, Destination{BankID: &bank.BankID})
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestListTransactions_OnlyOwn(t *testing.T) {
	s, db := setupService(t)
	a := createUser(t, db, 0)
	b := createUser(t, db, 0)

	_, err := s.SubmitDeposit(context.Background(), a.UserID, 1000)
	require.NoError(t, err)
	_, err = s.SubmitDeposit(context.Background(), b.UserID, 2000)
	require.NoError(t, err)

	mine, err := s.ListTransactions(context.Background(), a.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1000), mine[0].Amount)

	all, err := s.ListAllTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
