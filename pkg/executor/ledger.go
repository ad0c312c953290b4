package executor

import "attachmint/pkg/types"

// UndoCapacity bounds the undo history. Oldest entries are evicted first.
const UndoCapacity = 10

// Ledger is the bounded, reversible move history: a fixed-capacity FIFO,
// the only process-lifetime mutable state besides configuration.
type Ledger struct {
	entries []types.UndoEntry
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Push appends an entry, evicting the oldest when over capacity.
func (l *Ledger) Push(entry types.UndoEntry) {
	l.entries = append(l.entries, entry)
	if len(l.entries) > UndoCapacity {
		l.entries = l.entries[len(l.entries)-UndoCapacity:]
	}
}

// Pop removes and returns the most recent entry.
func (l *Ledger) Pop() (types.UndoEntry, bool) {
	if len(l.entries) == 0 {
		return types.UndoEntry{}, false
	}
	entry := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return entry, true
}

// Len returns the number of recorded batches.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the history, oldest first.
func (l *Ledger) Entries() []types.UndoEntry {
	return append([]types.UndoEntry(nil), l.entries...)
}
