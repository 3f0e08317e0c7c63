package usecase

import "time"

const (
	// DefaultStoreTimeout bounds a single state store call.
	DefaultStoreTimeout = 5 * time.Second

	// DefaultParseTimeout bounds a natural-language parse, all providers included.
	DefaultParseTimeout = 15 * time.Second

	// RecentTransactionsLimit is how many transactions the analytics view lists.
	RecentTransactionsLimit = 20

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending marks a key whose request is still running.
	IdempotencyPending = "processing"

	// BackupFilePrefix starts every exported backup file name.
	BackupFilePrefix = "hostel_tracker_backup_"
)
