package types

import "time"

// Move is one executed (or planned) rename, vault-relative on both sides.
type Move struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Reversed returns the move that undoes this one.
func (m Move) Reversed() Move {
	return Move{From: m.To, To: m.From}
}

// UndoEntry records one successfully applied batch so it can be replayed in
// reverse. Entries live only in the in-memory undo ring.
type UndoEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Moves     []Move    `json:"moves" yaml:"moves"`
}
