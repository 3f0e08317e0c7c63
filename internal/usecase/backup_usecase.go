package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
)

// BackupUseCase exports, imports and resets the whole state.
type BackupUseCase struct {
	ledger  Ledger
	clock   Clock
	metrics *metrics.Metrics
}

// NewBackupUseCase creates a new BackupUseCase.
func NewBackupUseCase(ledger Ledger, clock Clock, m *metrics.Metrics) *BackupUseCase {
	return &BackupUseCase{
		ledger:  ledger,
		clock:   clock,
		metrics: m,
	}
}

// Backup is an exported state document.
type Backup struct {
	Filename string
	Data     []byte
}

// BackupFilename names the backup taken on day now.
func BackupFilename(now time.Time) string {
	return BackupFilePrefix + now.Format(time.DateOnly) + ".json"
}

// Export serializes the current state.
func (uc *BackupUseCase) Export(ctx context.Context) (*Backup, error) {
	data, err := domain.EncodeState(uc.ledger.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	return &Backup{
		Filename: BackupFilename(uc.clock.Now()),
		Data:     data,
	}, nil
}

// Import replaces the whole state with a backup document. A malformed
// document leaves the current state untouched.
func (uc *BackupUseCase) Import(ctx context.Context, data []byte) (domain.State, error) {
	imported, err := domain.DecodeState(data, uc.clock.Now().Location())
	if err != nil {
		uc.countImport("rejected")
		return domain.State{}, err
	}

	next, err := uc.ledger.Apply(ctx, domain.ReplaceState{State: imported})
	if err != nil {
		uc.countImport("failed")
		return domain.State{}, err
	}

	uc.countImport("applied")
	return next, nil
}

// Reset restores the default state.
func (uc *BackupUseCase) Reset(ctx context.Context) (domain.State, error) {
	return uc.ledger.Apply(ctx, domain.ResetState{})
}

func (uc *BackupUseCase) countImport(status string) {
	if uc.metrics != nil {
		uc.metrics.Imports.WithLabelValues(status).Inc()
	}
}
