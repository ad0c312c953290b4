package executor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachmint/pkg/testutil"
	"attachmint/pkg/types"
)

func TestApply_BestEffortBatch(t *testing.T) {
	provider, _ := testutil.NewMemVault(t, map[string]string{
		"a.png":     "a",
		"pics/b.md": "b",
	})
	ledger := NewLedger()
	exec := New(provider, ledger)

	summary := exec.Apply([]types.Move{
		{From: "a.png", To: "_staging/a.png"},
		{From: "missing.png", To: "_staging/missing.png"},
		{From: "pics/b.md", To: "notes/assets/b.md"},
	})

	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "missing.png", summary.Failures[0].Move.From)
	assert.NotEmpty(t, summary.UndoID)

	assert.True(t, provider.FileExists("_staging/a.png"))
	assert.True(t, provider.FileExists("notes/assets/b.md"))
	assert.False(t, provider.FileExists("a.png"))

	// Only the successful subset is recorded.
	require.Equal(t, 1, ledger.Len())
	entry := ledger.Entries()[0]
	assert.Equal(t, summary.UndoID, entry.ID)
	require.Len(t, entry.Moves, 2)
}

func TestApply_NothingSucceededRecordsNothing(t *testing.T) {
	provider, _ := testutil.NewMemVault(t, nil)
	ledger := NewLedger()
	exec := New(provider, ledger)

	summary := exec.Apply([]types.Move{{From: "ghost.png", To: "x/ghost.png"}})

	assert.Equal(t, 1, summary.Failed)
	assert.Empty(t, summary.UndoID)
	assert.Equal(t, 0, ledger.Len())
}

func TestUndo_RestoresInReverse(t *testing.T) {
	provider, _ := testutil.NewMemVault(t, map[string]string{
		"a.png": "a",
		"b.png": "b",
	})
	ledger := NewLedger()
	exec := New(provider, ledger)

	exec.Apply([]types.Move{
		{From: "a.png", To: "_staging/a.png"},
		{From: "b.png", To: "_staging/b.png"},
	})
	entry, ok := ledger.Pop()
	require.True(t, ok)

	summary := exec.Undo(entry)

	assert.Equal(t, 2, summary.Restored)
	assert.Equal(t, 0, summary.Failed)
	for _, path := range []string{"a.png", "b.png"} {
		assert.True(t, provider.FileExists(path), "%s should be restored", path)
	}
}

func TestUndo_ToleratesMissingFiles(t *testing.T) {
	provider, _ := testutil.NewMemVault(t, map[string]string{
		"_staging/a.png": "a",
	})
	exec := New(provider, NewLedger())

	summary := exec.Undo(types.UndoEntry{
		ID: "t",
		Moves: []types.Move{
			{From: "a.png", To: "_staging/a.png"},
			{From: "b.png", To: "_staging/b.png"},
		},
	})

	assert.Equal(t, 1, summary.Restored)
	assert.Equal(t, 1, summary.Failed)
}

func TestLedger_CapacityEvictsOldest(t *testing.T) {
	ledger := NewLedger()
	for i := 0; i < UndoCapacity+3; i++ {
		ledger.Push(types.UndoEntry{ID: fmt.Sprintf("batch-%d", i), Timestamp: time.Now()})
	}

	assert.Equal(t, UndoCapacity, ledger.Len())
	entries := ledger.Entries()
	assert.Equal(t, "batch-3", entries[0].ID)
	assert.Equal(t, fmt.Sprintf("batch-%d", UndoCapacity+2), entries[len(entries)-1].ID)
}

func TestLedger_PopIsLIFO(t *testing.T) {
	ledger := NewLedger()
	ledger.Push(types.UndoEntry{ID: "first"})
	ledger.Push(types.UndoEntry{ID: "second"})

	entry, ok := ledger.Pop()
	require.True(t, ok)
	assert.Equal(t, "second", entry.ID)
	assert.Equal(t, 1, ledger.Len())

	_, ok = ledger.Pop()
	assert.True(t, ok)
	_, ok = ledger.Pop()
	assert.False(t, ok)
}
