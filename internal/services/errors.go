package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; everything else surfaces as a 500.
var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrDuplicateTransaction = errors.New("transaction id already submitted")
	ErrAlreadyRedeemed      = errors.New("bonus already redeemed")
	ErrInvalidOrExhausted   = errors.New("bonus code invalid or exhausted")
	ErrNotFound             = errors.New("record not found")
	ErrMobileTaken          = errors.New("mobile number already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAlreadyProcessed     = errors.New("record already processed")
	ErrUnknownTier          = errors.New("unknown product tier")
	ErrInvalidTxnID         = errors.New("transaction id must be 11 or 16 digits")
	ErrBelowMinimum         = errors.New("amount below minimum")
	ErrInvalidCarrier       = errors.New("unsupported carrier")
)
