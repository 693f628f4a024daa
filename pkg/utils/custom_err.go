package utils

import "errors"

var (
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrNotFound           = errors.New("resource not found")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrValidationMismatch = errors.New("checkout session does not belong to contribution")
	ErrJobFailed          = errors.New("generation job failed")
	ErrPriceUnavailable   = errors.New("price not configured")
	ErrSentinelPrice      = errors.New("sentinel keys are always free")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrDatabaseError      = errors.New("database error")
)
