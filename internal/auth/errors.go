package auth

import "errors"

// Typed transition outcomes. Store errors (conflict) and mail transport
// errors (delivery) propagate from their own packages.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrPasswordMismatch   = errors.New("password_mismatch")
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrInvalidOTP         = errors.New("invalid_otp")
	ErrInvalidOTPFormat   = errors.New("invalid_otp_format")
	ErrRecoveryIncomplete = errors.New("recovery_incomplete")
)
