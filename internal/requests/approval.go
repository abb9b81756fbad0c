package requests

import (
	"context"
	"encoding/json"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The approval engine resolves pending requests. Resolution is a
// compare-and-transition: the request row is claimed with a guarded UPDATE
// (status must still be pending), so two concurrent approvals of the same
// request produce exactly one ledger mutation and one AlreadyResolved error.
// Claim, ledger apply and audit row commit in one DB transaction, held under
// the owning user's ledger lock.

const (
	auditKindTrade       = "trade"
	auditKindTransaction = "transaction"
)

// ApproveTrade applies a pending buy/sell request. On ledger rejection (e.g.
// the balance became insufficient since submission) the request transitions
// to rejected with the failure reason instead of staying pending, and the
// ledger error is returned to the caller.
func (s *Service) ApproveTrade(ctx context.Context, requestID, actorID uuid.UUID) (*domain.TradeRequest, error) {
	var req domain.TradeRequest
	if err := s.DB.WithContext(ctx).Where("request_id = ?", requestID).First(&req).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Trade request not found")
		}
		return nil, err
	}
	if req.Status != domain.RequestStatusPending {
		return &req, apperr.New(apperr.AlreadyResolved, "Request has already been resolved")
	}

	var applyErr error
	err := s.Ledger.WithUserLock(req.UserID, func() error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			claim := tx.Model(&domain.TradeRequest{}).
				Where("request_id = ? AND status = ?", requestID, domain.RequestStatusPending).
				Update("status", domain.RequestStatusApproved)
			if claim.Error != nil {
				return claim.Error
			}
			if claim.RowsAffected == 0 {
				return apperr.New(apperr.AlreadyResolved, "Request has already been resolved")
			}
			if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
				return err
			}

			var payload interface{}
			switch req.Type {
			case domain.TradeTypeBuy:
				if req.ProjectID == nil {
					applyErr = apperr.New(apperr.NotFound, "Project not found")
				} else {
					applyErr = s.Ledger.BuyTx(tx, req.UserID, *req.ProjectID, req.Shares)
					payload = map[string]interface{}{"shares": req.Shares, "amount": req.Amount}
				}
			case domain.TradeTypeSell:
				if req.PortfolioID == nil {
					applyErr = apperr.New(apperr.NotFound, "Holding not found")
				} else {
					var result struct {
						SoldShares int64 `json:"sold_shares"`
						SoldAmount int64 `json:"sold_amount"`
					}
					res, err := s.Ledger.SellTx(tx, req.UserID, *req.PortfolioID, req.Shares)
					applyErr = err
					if err == nil {
						result.SoldShares = res.SoldShares
						result.SoldAmount = res.SoldAmount
						req.SoldShares = &res.SoldShares
						req.SoldAmount = &res.SoldAmount
						payload = result
					}
				}
			default:
				applyErr = apperr.New(apperr.Internal, "Unknown trade request type")
			}

			if applyErr != nil {
				if apperr.KindOf(applyErr) == apperr.Internal {
					return applyErr
				}
				// Validation failure: commit the rejection, not the apply.
				reason := applyErr.Error()
				req.Status = domain.RequestStatusRejected
				req.Reason = &reason
				if err := tx.Save(&req).Error; err != nil {
					return err
				}
				return s.writeAudit(tx, auditKindTrade, requestID, actorID,
					domain.RequestStatusRejected, map[string]interface{}{"reason": reason})
			}

			if err := tx.Save(&req).Error; err != nil {
				return err
			}
			return s.writeAudit(tx, auditKindTrade, requestID, actorID,
				domain.RequestStatusApproved, payload)
		})
	})
	if err != nil {
		return nil, err
	}
	return &req, applyErr
}

// RejectTrade marks a pending trade request rejected. No ledger mutation.
func (s *Service) RejectTrade(ctx context.Context, requestID, actorID uuid.UUID, reason string) (*domain.TradeRequest, error) {
	var req domain.TradeRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&domain.TradeRequest{}).
			Where("request_id = ? AND status = ?", requestID, domain.RequestStatusPending).
			Updates(map[string]interface{}{"status": domain.RequestStatusRejected, "reason": reason})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperr.New(apperr.NotFound, "Trade request not found")
				}
				return err
			}
			return apperr.New(apperr.AlreadyResolved, "Request has already been resolved")
		}
		if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
			return err
		}
		return s.writeAudit(tx, auditKindTrade, requestID, actorID,
			domain.RequestStatusRejected, map[string]interface{}{"reason": reason})
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ApproveTransaction applies a pending deposit/withdrawal request.
func (s *Service) ApproveTransaction(ctx context.Context, requestID, actorID uuid.UUID) (*domain.TransactionRequest, error) {
	var req domain.TransactionRequest
	if err := s.DB.WithContext(ctx).Where("request_id = ?", requestID).First(&req).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Transaction request not found")
		}
		return nil, err
	}
	if req.Status != domain.RequestStatusPending {
		return &req, apperr.New(apperr.AlreadyResolved, "Request has already been resolved")
	}

	var applyErr error
	err := s.Ledger.WithUserLock(req.UserID, func() error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			claim := tx.Model(&domain.TransactionRequest{}).
				Where("request_id = ? AND status = ?", requestID, domain.RequestStatusPending).
				Update("status", domain.RequestStatusApproved)
			if claim.Error != nil {
				return claim.Error
			}
			if claim.RowsAffected == 0 {
				return apperr.New(apperr.AlreadyResolved, "Request has already been resolved")
			}
			if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
				return err
			}

			switch req.Type {
			case domain.TransactionTypeDeposit:
				applyErr = s.Ledger.DepositTx(tx, req.UserID, req.Amount)
			case domain.TransactionTypeWithdrawal:
				applyErr = s.Ledger.WithdrawTx(tx, req.UserID, req.Amount)
			default:
				applyErr = apperr.New(apperr.Internal, "Unknown transaction request type")
			}

			if applyErr != nil {
				if apperr.KindOf(applyErr) == apperr.Internal {
					return applyErr
				}
				reason := applyErr.Error()
				req.Status = domain.RequestStatusRejected
				req.Reason = &reason
				if err := tx.Save(&req).Error; err != nil {
					return err
				}
				return s.writeAudit(tx, auditKindTransaction, requestID, actorID,
					domain.RequestStatusRejected, map[string]interface{}{"reason": reason})
			}

			if err := tx.Save(&req).Error; err != nil {
				return err
			}
			return s.writeAudit(tx, auditKindTransaction, requestID, actorID,
				domain.RequestStatusApproved, map[string]interface{}{"type": req.Type, "amount": req.Amount})
		})
	})
	if err != nil {
		return nil, err
	}
	return &req, applyErr
}

// RejectTransaction marks a pending deposit/withdrawal rejected. No ledger mutation.
func (s *Service) RejectTransaction(ctx context.Context, requestID, actorID uuid.UUID, reason string) (*domain.TransactionRequest, error) {
	var req domain.TransactionRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&domain.TransactionRequest{}).
			Where("request_id = ? AND status = ?", requestID, domain.RequestStatusPending).
			Updates(map[string]interface{}{"status": domain.RequestStatusRejected, "reason": reason})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperr.New(apperr.NotFound, "Transaction request not found")
				}
				return err
			}
			return apperr.New(apperr.AlreadyResolved, "Request has already been resolved")
		}
		if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
			return err
		}
		return s.writeAudit(tx, auditKindTransaction, requestID, actorID,
			domain.RequestStatusRejected, map[string]interface{}{"reason": reason})
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) writeAudit(tx *gorm.DB, kind string, requestID, actorID uuid.UUID, action string, payload interface{}) error {
	entry := domain.AuditEntry{
		RequestID:   requestID,
		RequestKind: kind,
		Action:      action,
		ActorID:     actorID,
	}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		entry.Payload = datatypes.JSON(b)
	}
	return tx.Create(&entry).Error
}
