// Package executor performs planned moves against the vault and maintains
// the bounded undo history.
package executor

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"attachmint/pkg/logging"
	"attachmint/pkg/types"
	"attachmint/pkg/vault"
)

// MoveFailure records one failed item of a batch.
type MoveFailure struct {
	Move types.Move `json:"move" yaml:"move"`
	Err  string     `json:"error" yaml:"error"`
}

// ApplySummary reports the outcome of one best-effort batch.
type ApplySummary struct {
	Attempted int           `json:"attempted" yaml:"attempted"`
	Succeeded int           `json:"succeeded" yaml:"succeeded"`
	Failed    int           `json:"failed" yaml:"failed"`
	Failures  []MoveFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	// UndoID identifies the recorded undo entry, empty when nothing
	// succeeded.
	UndoID string `json:"undoId,omitempty" yaml:"undoId,omitempty"`
}

// UndoSummary reports the outcome of replaying one undo entry.
type UndoSummary struct {
	Restored int           `json:"restored" yaml:"restored"`
	Failed   int           `json:"failed" yaml:"failed"`
	Failures []MoveFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Executor runs move batches sequentially against the vault provider. Each
// item failure is recorded and the batch continues; a batch is best-effort,
// not a transaction.
type Executor struct {
	provider vault.Provider
	ledger   *Ledger
	logger   zerolog.Logger
}

// New builds an executor writing successful batches into the ledger.
func New(provider vault.Provider, ledger *Ledger) *Executor {
	return &Executor{
		provider: provider,
		ledger:   ledger,
		logger:   logging.GetLogger("executor"),
	}
}

// Apply executes the moves one at a time: resolve the source, create
// missing destination folders, rename. If any move succeeded, the
// successful subset is pushed onto the undo ledger.
func (e *Executor) Apply(moves []types.Move) ApplySummary {
	summary := ApplySummary{Attempted: len(moves)}
	var succeeded []types.Move

	for _, m := range moves {
		if err := e.applyOne(m); err != nil {
			e.logger.Warn().Err(err).Str("from", m.From).Str("to", m.To).Msg("Move failed")
			summary.Failures = append(summary.Failures, MoveFailure{Move: m, Err: err.Error()})
			continue
		}
		e.logger.Info().Str("from", m.From).Str("to", m.To).Msg("Moved")
		succeeded = append(succeeded, m)
	}

	summary.Succeeded = len(succeeded)
	summary.Failed = len(summary.Failures)

	if len(succeeded) > 0 {
		entry := types.UndoEntry{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Moves:     succeeded,
		}
		e.ledger.Push(entry)
		summary.UndoID = entry.ID
	}
	return summary
}

func (e *Executor) applyOne(m types.Move) error {
	if folder := types.ParentPath(m.To); folder != "" {
		// Idempotent: the folder may already exist, or appear between
		// the check and the create.
		if err := e.provider.CreateFolder(folder); err != nil {
			return err
		}
	}
	return e.provider.RenameFile(m.From, m.To)
}

// Undo replays a recorded batch in reverse, newest move first, with the
// same per-item failure tolerance.
func (e *Executor) Undo(entry types.UndoEntry) UndoSummary {
	summary := UndoSummary{}
	for i := len(entry.Moves) - 1; i >= 0; i-- {
		m := entry.Moves[i].Reversed()
		if err := e.applyOne(m); err != nil {
			e.logger.Warn().Err(err).Str("from", m.From).Str("to", m.To).Msg("Undo move failed")
			summary.Failures = append(summary.Failures, MoveFailure{Move: m, Err: err.Error()})
			continue
		}
		e.logger.Info().Str("from", m.From).Str("to", m.To).Msg("Restored")
		summary.Restored++
	}
	summary.Failed = len(summary.Failures)
	return summary
}
