package types

import "sort"

// Stats summarizes one detection pass.
type Stats struct {
	Files       int `json:"files" yaml:"files"`
	Notes       int `json:"notes" yaml:"notes"`
	Attachments int `json:"attachments" yaml:"attachments"`
	Missing     int `json:"missing" yaml:"missing"`
	Orphans     int `json:"orphans" yaml:"orphans"`
	Moves       int `json:"moves" yaml:"moves"`
	Conflicts   int `json:"conflicts" yaml:"conflicts"`
}

// DetectReport is the immutable snapshot produced by one detection pass.
// It is rebuilt from scratch on every scan and never mutated afterwards.
type DetectReport struct {
	// Entries holds every real file entry plus synthetic missing entries,
	// sorted by path.
	Entries []*FileEntry `json:"entries" yaml:"entries"`
	// Preview holds the virtual target copies for conflict-free moves,
	// sorted by path. No two preview entries share a path.
	Preview []*FileEntry `json:"preview,omitempty" yaml:"preview,omitempty"`
	Stats   Stats        `json:"stats" yaml:"stats"`
}

// Entry returns the entry with the given path, or nil.
func (r *DetectReport) Entry(path string) *FileEntry {
	for _, e := range r.Entries {
		if e.Path == path {
			return e
		}
	}
	return nil
}

// Moves returns the {from, to} pairs encoded by the preview set, in
// preview path order.
func (r *DetectReport) Moves() []Move {
	var moves []Move
	for _, p := range r.Preview {
		if p.IsPreview && p.VirtualFrom != "" {
			moves = append(moves, Move{From: p.VirtualFrom, To: p.Path})
		}
	}
	return moves
}

// SortEntries orders both entry lists by path for reproducible output.
func (r *DetectReport) SortEntries() {
	sort.Slice(r.Entries, func(i, j int) bool { return r.Entries[i].Path < r.Entries[j].Path })
	sort.Slice(r.Preview, func(i, j int) bool { return r.Preview[i].Path < r.Preview[j].Path })
}

// ComputeStats recounts the summary from the entry lists.
func (r *DetectReport) ComputeStats() {
	s := Stats{}
	for _, e := range r.Entries {
		s.Files++
		switch {
		case e.Kind == KindNote:
			s.Notes++
		case e.Kind.IsAttachment():
			s.Attachments++
		}
		if e.HasTag(TagMissing) {
			s.Missing++
		}
		if e.HasTag(TagOrphan) {
			s.Orphans++
		}
		if e.HasConflict() {
			s.Conflicts++
		}
	}
	s.Moves = len(r.Preview)
	r.Stats = s
}
