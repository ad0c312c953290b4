package types

import "sort"

// FileEntry is one node of the detection graph: a real vault file, a
// synthetic missing-reference placeholder, or a virtual preview copy.
// Path is the unique key into the entry map.
type FileEntry struct {
	Path         string     `json:"path" yaml:"path"`
	DisplayName  string     `json:"displayName" yaml:"displayName"`
	Zone         Zone       `json:"zone" yaml:"zone"`
	Kind         FileKind   `json:"kind" yaml:"kind"`
	ReferencedBy []Backlink `json:"referencedBy,omitempty" yaml:"referencedBy,omitempty"`
	Action       Action     `json:"action" yaml:"action"`
	Tags         []Tag      `json:"tags,omitempty" yaml:"tags,omitempty"`
	ConflictWith []string   `json:"conflictWith,omitempty" yaml:"conflictWith,omitempty"`

	// VirtualFrom points at the real entry a preview copy was derived
	// from; set only when IsPreview is true.
	VirtualFrom string `json:"virtualFrom,omitempty" yaml:"virtualFrom,omitempty"`
	IsPreview   bool   `json:"isPreview,omitempty" yaml:"isPreview,omitempty"`
}

// AddTag adds a tag, keeping the tag list deduplicated and sorted so that
// repeated detection passes produce identical entries.
func (e *FileEntry) AddTag(t Tag) {
	for _, have := range e.Tags {
		if have == t {
			return
		}
	}
	e.Tags = append(e.Tags, t)
	sort.Slice(e.Tags, func(i, j int) bool { return e.Tags[i] < e.Tags[j] })
}

// HasTag reports whether the entry carries the tag.
func (e *FileEntry) HasTag(t Tag) bool {
	for _, have := range e.Tags {
		if have == t {
			return true
		}
	}
	return false
}

// HasConflict reports whether any conflict tag is present.
func (e *FileEntry) HasConflict() bool {
	for _, have := range e.Tags {
		if have.IsConflict() {
			return true
		}
	}
	return false
}

// AddBacklink appends a backlink, deduplicated by source note path.
func (e *FileEntry) AddBacklink(b Backlink) {
	for _, have := range e.ReferencedBy {
		if have.FromNote == b.FromNote {
			return
		}
	}
	e.ReferencedBy = append(e.ReferencedBy, b)
}

// Mark returns the single-character status shown per entry, derived purely
// from kind, tags and action:
//
//	C  conflict (either conflict tag)
//	M  missing reference
//	B  planned move to staging
//	R  planned relocation
//	K  attachment kept in place
//	-  anything else (notes, outside files)
func (e *FileEntry) Mark() string {
	switch {
	case e.HasConflict():
		return "C"
	case e.HasTag(TagMissing):
		return "M"
	case e.Action.Kind == ActionMoveToStaging:
		return "B"
	case e.Action.Kind == ActionMoveTo:
		return "R"
	case e.Kind.IsAttachment():
		return "K"
	default:
		return "-"
	}
}
