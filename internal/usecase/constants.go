package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single ledger transaction. Accrual
	// walks every open position, so this also caps settlement time.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
