// Package core orchestrates the detection, planning, simulation and apply
// pipeline over one vault. The engine owns the only shared mutable state:
// the dirty flag, the debounce timer and the undo ledger. Everything the
// pipeline computes is rebuilt from scratch per scan.
package core

import (
	"sync"

	"github.com/rs/zerolog"

	"attachmint/pkg/errors"
	"attachmint/pkg/executor"
	"attachmint/pkg/logging"
	"attachmint/pkg/settings"
	"attachmint/pkg/types"
	"attachmint/pkg/vault"
)

// Engine ties the pipeline together for one vault.
type Engine struct {
	provider vault.Provider
	meta     vault.Metadata
	settings *settings.Settings
	ledger   *executor.Ledger
	exec     *executor.Executor
	logger   zerolog.Logger

	mu         sync.Mutex
	dirty      bool
	lastReport *types.DetectReport
}

// NewEngine builds an engine over the given host ports.
func NewEngine(provider vault.Provider, meta vault.Metadata, s *settings.Settings) *Engine {
	ledger := executor.NewLedger()
	return &Engine{
		provider: provider,
		meta:     meta,
		settings: s,
		ledger:   ledger,
		exec:     executor.New(provider, ledger),
		logger:   logging.GetLogger("core"),
	}
}

// MarkDirty flags the cached report as stale; the next non-forced detect
// recomputes.
func (e *Engine) MarkDirty() {
	e.mu.Lock()
	e.dirty = true
	e.mu.Unlock()
}

// Ledger exposes the undo history for reporting.
func (e *Engine) Ledger() *executor.Ledger {
	return e.ledger
}

// ApplyResult is the outcome of one ApplyPlan call.
type ApplyResult struct {
	Summary executor.ApplySummary `json:"summary" yaml:"summary"`
	// NothingToDo is set when the fresh detect produced no moves; Reason
	// says whether conflicts blocked them or placement was already
	// correct.
	NothingToDo bool   `json:"nothingToDo,omitempty" yaml:"nothingToDo,omitempty"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ApplyPlan forces a fresh detect, then executes the preview's moves as a
// best-effort batch. Nothing touches disk when the preview is empty.
func (e *Engine) ApplyPlan() (*ApplyResult, error) {
	report, err := e.DetectReport(true)
	if err != nil {
		return nil, err
	}

	moves := report.Moves()
	if len(moves) == 0 {
		reason := "all attachments already in place"
		if report.Stats.Conflicts > 0 {
			reason = "remaining moves are blocked by conflicts"
		}
		e.logger.Info().Str("reason", reason).Msg("Nothing to apply")
		return &ApplyResult{NothingToDo: true, Reason: reason}, nil
	}

	summary := e.exec.Apply(moves)
	e.MarkDirty()
	return &ApplyResult{Summary: summary}, nil
}

// UndoResult is the outcome of one UndoLastOperation call.
type UndoResult struct {
	Entry     types.UndoEntry      `json:"entry" yaml:"entry"`
	Summary   executor.UndoSummary `json:"summary" yaml:"summary"`
	Cancelled bool                 `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
}

// UndoLastOperation pops the most recent batch and replays it in reverse.
// When confirm is non-nil and declines, the entry is pushed back unchanged.
func (e *Engine) UndoLastOperation(confirm func(types.UndoEntry) bool) (*UndoResult, error) {
	entry, ok := e.ledger.Pop()
	if !ok {
		return nil, errors.New(errors.ErrUndoEmpty, "nothing to undo")
	}
	if confirm != nil && !confirm(entry) {
		e.ledger.Push(entry)
		return &UndoResult{Entry: entry, Cancelled: true}, nil
	}

	summary := e.exec.Undo(entry)
	e.MarkDirty()
	return &UndoResult{Entry: entry, Summary: summary}, nil
}
