package ledger

import (
	"context"
	"sync"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger exclusively owns balance and holding mutation. Every apply runs
// under the owning user's mutex and inside a DB transaction, so concurrent
// sells against the same holding serialize and the second caller observes the
// first one's committed state. Only the approval engine invokes the apply
// methods, and only while transitioning a request into approved.
type Ledger struct {
	db         *gorm.DB
	sharePrice int64

	muMap map[uuid.UUID]*sync.Mutex
	mapMu sync.Mutex
}

func New(db *gorm.DB, sharePrice int64) *Ledger {
	return &Ledger{
		db:         db,
		sharePrice: sharePrice,
		muMap:      make(map[uuid.UUID]*sync.Mutex),
	}
}

// SharePrice returns the fixed TL price of one share.
func (l *Ledger) SharePrice() int64 {
	return l.sharePrice
}

func (l *Ledger) userLock(userID uuid.UUID) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()
	mu, ok := l.muMap[userID]
	if !ok {
		mu = &sync.Mutex{}
		l.muMap[userID] = mu
	}
	return mu
}

// WithUserLock runs fn while holding the user's mutation lock. The approval
// engine uses it to make its claim-then-apply step atomic with respect to
// every other mutation for the same user. Rate lookups must never happen
// inside fn; mutation sections stay short.
func (l *Ledger) WithUserLock(userID uuid.UUID, fn func() error) error {
	mu := l.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// SellResult is the effect of an approved sell, recorded on the request.
type SellResult struct {
	SoldShares int64 `json:"sold_shares"`
	SoldAmount int64 `json:"sold_amount"`
}

// BuyTx debits shares × share price from the user's balance and creates or
// grows the holding, inside the caller's transaction. The balance check
// happens here, at apply time, not at submission: balances move between
// submission and approval. Caller must hold the user lock.
func (l *Ledger) BuyTx(tx *gorm.DB, userID, projectID uuid.UUID, shares int64) error {
	if shares < 1 {
		return apperr.New(apperr.InvalidShareCount, "Share count must be at least 1")
	}
	cost := shares * l.sharePrice

	var user domain.User
	if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return err
	}
	if user.Balance < cost {
		return apperr.New(apperr.InsufficientBalance, "Insufficient balance for this purchase")
	}

	var holding domain.Holding
	err := tx.Where("user_id = ? AND project_id = ?", userID, projectID).First(&holding).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		holding = domain.Holding{
			UserID:    userID,
			ProjectID: projectID,
			Shares:    shares,
			Amount:    cost,
		}
		if err := tx.Create(&holding).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		holding.Shares += shares
		holding.Amount = holding.Shares * l.sharePrice
		if err := tx.Save(&holding).Error; err != nil {
			return err
		}
	}

	user.Balance -= cost
	return tx.Save(&user).Error
}

// SellTx credits shares × share price to the user's balance. Selling the full
// position deletes the holding; a partial sell decrements shares and
// recomputes the TL amount. Caller must hold the user lock.
func (l *Ledger) SellTx(tx *gorm.DB, userID, portfolioID uuid.UUID, shares int64) (SellResult, error) {
	if shares < 1 {
		return SellResult{}, apperr.New(apperr.InvalidShareCount, "Share count must be at least 1")
	}

	var holding domain.Holding
	if err := tx.Where("portfolio_id = ? AND user_id = ?", portfolioID, userID).First(&holding).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return SellResult{}, apperr.New(apperr.NotFound, "Holding not found")
		}
		return SellResult{}, err
	}
	if shares > holding.Shares {
		return SellResult{}, apperr.New(apperr.InvalidShareCount, "Cannot sell more shares than owned")
	}

	proceeds := shares * l.sharePrice
	if shares == holding.Shares {
		if err := tx.Delete(&holding).Error; err != nil {
			return SellResult{}, err
		}
	} else {
		holding.Shares -= shares
		holding.Amount = holding.Shares * l.sharePrice
		if err := tx.Save(&holding).Error; err != nil {
			return SellResult{}, err
		}
	}

	var user domain.User
	if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return SellResult{}, err
	}
	user.Balance += proceeds
	if err := tx.Save(&user).Error; err != nil {
		return SellResult{}, err
	}

	return SellResult{SoldShares: shares, SoldAmount: proceeds}, nil
}

// DepositTx credits amount to the user's balance. Caller must hold the user lock.
func (l *Ledger) DepositTx(tx *gorm.DB, userID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.InvalidAmount, "Amount must be a positive number")
	}
	var user domain.User
	if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return err
	}
	user.Balance += amount
	return tx.Save(&user).Error
}

// WithdrawTx debits amount from the user's balance. The authoritative balance
// check happens here; the submission-time check is advisory only. Caller must
// hold the user lock.
func (l *Ledger) WithdrawTx(tx *gorm.DB, userID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.InvalidAmount, "Amount must be a positive number")
	}
	var user domain.User
	if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return err
	}
	if user.Balance < amount {
		return apperr.New(apperr.InsufficientFunds, "Insufficient funds for this withdrawal")
	}
	user.Balance -= amount
	return tx.Save(&user).Error
}

// ApplyBuy is BuyTx wrapped in its own lock and transaction.
func (l *Ledger) ApplyBuy(ctx context.Context, userID, projectID uuid.UUID, shares int64) error {
	return l.WithUserLock(userID, func() error {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return l.BuyTx(tx, userID, projectID, shares)
		})
	})
}

// ApplySell is SellTx wrapped in its own lock and transaction.
func (l *Ledger) ApplySell(ctx context.Context, userID, portfolioID uuid.UUID, shares int64) (SellResult, error) {
	var result SellResult
	err := l.WithUserLock(userID, func() error {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = l.SellTx(tx, userID, portfolioID, shares)
			return err
		})
	})
	return result, err
}

// ApplyDeposit is DepositTx wrapped in its own lock and transaction.
func (l *Ledger) ApplyDeposit(ctx context.Context, userID uuid.UUID, amount int64) error {
	return l.WithUserLock(userID, func() error {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return l.DepositTx(tx, userID, amount)
		})
	})
}

// ApplyWithdrawal is WithdrawTx wrapped in its own lock and transaction.
func (l *Ledger) ApplyWithdrawal(ctx context.Context, userID uuid.UUID, amount int64) error {
	return l.WithUserLock(userID, func() error {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return l.WithdrawTx(tx, userID, amount)
		})
	})
}

// AdjustBalance applies an admin balance correction. Positive delta credits,
// negative debits; a debit below zero fails with InsufficientFunds.
func (l *Ledger) AdjustBalance(ctx context.Context, userID uuid.UUID, delta int64) error {
	if delta == 0 {
		return apperr.New(apperr.InvalidAmount, "Amount must be a positive number")
	}
	return l.WithUserLock(userID, func() error {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var user domain.User
			if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperr.New(apperr.NotFound, "User not found")
				}
				return err
			}
			if user.Balance+delta < 0 {
				return apperr.New(apperr.InsufficientFunds, "Adjustment would make the balance negative")
			}
			user.Balance += delta
			return tx.Save(&user).Error
		})
	})
}
