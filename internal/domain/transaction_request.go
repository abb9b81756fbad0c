package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

const (
	BankSourceSystem = "system"
	BankSourceManual = "manual"
)

// WithdrawalDetails is the destination snapshot taken at submission time, so a
// later edit of a system bank record cannot retroactively alter a pending
// request. Stored as JSON on the request row.
type WithdrawalDetails struct {
	BankName      string `json:"bank_name"`
	IBAN          string `json:"iban"`
	AccountHolder string `json:"account_holder"`
	Source        string `json:"source"`
}

// TransactionRequest is a pending deposit or withdrawal. Balance is untouched
// until approval.
type TransactionRequest struct {
	RequestID         uuid.UUID      `gorm:"column:request_id;type:uuid;primaryKey" json:"request_id"`
	UserID            uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Type              string         `gorm:"column:type;type:varchar(12);not null" json:"type"`
	Amount            int64          `gorm:"column:amount;not null" json:"amount"`
	Status            string         `gorm:"column:status;type:varchar(10);not null;default:pending;index" json:"status"`
	Reason            *string        `gorm:"column:reason" json:"reason,omitempty"`
	WithdrawalDetails datatypes.JSON `gorm:"column:withdrawal_details" json:"withdrawal_details,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (TransactionRequest) TableName() string {
	return "transaction_requests"
}

func (r *TransactionRequest) BeforeCreate(tx *gorm.DB) error {
	if r.RequestID == uuid.Nil {
		r.RequestID = uuid.New()
	}
	return nil
}
