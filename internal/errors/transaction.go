package errors

import "net/http"

var (
	ErrUnauthorizedRole = &DomainError{
		Code:    "UNAUTHORIZED_ROLE",
		Message: "role is not permitted for this transaction kind",
		Status:  http.StatusForbidden,
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
		Status:  http.StatusBadRequest,
	}
	ErrLimitExceeded = &DomainError{
		Code:    "LIMIT_EXCEEDED",
		Message: "daily transaction limit exceeded",
		Status:  http.StatusExpectationFailed,
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidKind = &DomainError{
		Code:    "INVALID_KIND",
		Message: "unknown transaction kind",
		Status:  http.StatusBadRequest,
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Status:  http.StatusNotFound,
	}
	ErrDuplicateAccount = &DomainError{
		Code:    "DUPLICATE_ACCOUNT",
		Message: "an account with this email or phone already exists",
		Status:  http.StatusConflict,
	}
	ErrUserBlocked = &DomainError{
		Code:    "USER_BLOCKED",
		Message: "account is blocked",
		Status:  http.StatusForbidden,
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
		Status:  http.StatusInternalServerError,
	}
	ErrTreasuryUnavailable = &DomainError{
		Code:    "TREASURY_UNAVAILABLE",
		Message: "treasury account is not provisioned",
		Status:  http.StatusServiceUnavailable,
	}
	ErrTransactionFailed = &DomainError{
		Code:    "TRANSACTION_FAILED",
		Message: "transaction could not be completed, retry the request",
		Status:  http.StatusConflict,
	}
)
