package apperr

import "github.com/gofiber/fiber/v2"

// Kind is the stable, machine-readable error category. Clients must key on
// Kind, never on message text (messages are locale-specific).
type Kind string

const (
	InvalidAmount       Kind = "invalid_amount"
	InvalidShareCount   Kind = "invalid_share_count"
	NotFound            Kind = "not_found"
	KycRequired         Kind = "kyc_required"
	InsufficientBalance Kind = "insufficient_balance"
	InsufficientFunds   Kind = "insufficient_funds"
	AlreadyResolved     Kind = "already_resolved"
	MissingDestination  Kind = "missing_destination"
	DuplicateIdentifier Kind = "duplicate_identifier"
	Unauthorized        Kind = "unauthorized"
	Internal            Kind = "internal"
)

// Error pairs a Kind with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds an *Error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the Kind from err, or Internal for unknown errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return Internal
}

// StatusCode maps a Kind to its HTTP status. The mapping is a transport
// concern; services only ever produce Kinds.
func StatusCode(kind Kind) int {
	switch kind {
	case InvalidAmount, InvalidShareCount, KycRequired,
		InsufficientBalance, InsufficientFunds, MissingDestination,
		DuplicateIdentifier:
		return fiber.StatusBadRequest
	case NotFound:
		return fiber.StatusNotFound
	case AlreadyResolved:
		return fiber.StatusConflict
	case Unauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
