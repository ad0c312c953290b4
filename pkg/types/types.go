package types

// Zone identifies the configured region of the vault a path belongs to.
type Zone string

const (
	// ZoneWorkspace is the primary workspace (defaults to the vault root
	// when no workspace folder is configured).
	ZoneWorkspace Zone = "workspace"
	// ZoneStaging is the staging/cleanup area. Files here are never
	// re-planned; staging is terminal.
	ZoneStaging Zone = "staging"
	// ZoneExtra covers the configured extra-scan folders.
	ZoneExtra Zone = "extra"
	// ZoneOutside is everything else.
	ZoneOutside Zone = "outside"
)

// FileKind classifies a vault file.
type FileKind string

const (
	// KindNote is a markdown file not matched by any attachment rule.
	KindNote FileKind = "note"
	// KindAttachmentFile is any non-markdown file.
	KindAttachmentFile FileKind = "attachment"
	// KindAttachmentNote is a markdown file matched by an attachment
	// detection rule (drawing formats stored as markdown, etc).
	KindAttachmentNote FileKind = "attachment-note"
	// KindUnknown is the synthetic placeholder kind for unresolved
	// references.
	KindUnknown FileKind = "unknown"
)

// IsAttachment reports whether the kind is planned by the action planner.
func (k FileKind) IsAttachment() bool {
	return k == KindAttachmentFile || k == KindAttachmentNote
}

// Tag is a status flag attached to an entry during detection or simulation.
type Tag string

const (
	// TagMissing marks a synthetic entry for an unresolved reference.
	TagMissing Tag = "missing"
	// TagOrphan marks an attachment no note references.
	TagOrphan Tag = "orphan"
	// TagConflictTarget marks entries whose move target is occupied or
	// claimed by another move.
	TagConflictTarget Tag = "conflict-target-occupied"
	// TagConflictName marks entries whose filename collides with another
	// file elsewhere in the vault.
	TagConflictName Tag = "conflict-ambiguous-name"
)

// IsConflict reports whether the tag blocks a move.
func (t Tag) IsConflict() bool {
	return t == TagConflictTarget || t == TagConflictName
}

// ActionKind discriminates the planned action variants.
type ActionKind string

const (
	// ActionKeep leaves the file where it is.
	ActionKeep ActionKind = "keep"
	// ActionMoveToStaging relocates the file into the staging folder.
	ActionMoveToStaging ActionKind = "move-to-staging"
	// ActionMoveTo relocates the file to a computed target path.
	ActionMoveTo ActionKind = "move-to"
	// ActionUnknown is the placeholder action for synthetic entries.
	ActionUnknown ActionKind = "unknown"
)

// Action is the planned disposition for one entry. Exactly one variant is
// active at a time; Target and Explicit are meaningful only for ActionMoveTo.
type Action struct {
	Kind     ActionKind `json:"kind" yaml:"kind"`
	Target   string     `json:"target,omitempty" yaml:"target,omitempty"`
	Reason   string     `json:"reason,omitempty" yaml:"reason,omitempty"`
	Explicit bool       `json:"explicit,omitempty" yaml:"explicit,omitempty"`
}

// Keep returns the keep action with an optional reason.
func Keep(reason string) Action {
	return Action{Kind: ActionKeep, Reason: reason}
}

// MoveToStaging returns the staging action.
func MoveToStaging(reason string) Action {
	return Action{Kind: ActionMoveToStaging, Reason: reason}
}

// MoveTo returns a move action toward target.
func MoveTo(target, reason string, explicit bool) Action {
	return Action{Kind: ActionMoveTo, Target: target, Reason: reason, Explicit: explicit}
}

// UnknownAction returns the placeholder action for synthetic entries.
func UnknownAction(reason string) Action {
	return Action{Kind: ActionUnknown, Reason: reason}
}

// IsMove reports whether the action proposes relocating the file.
func (a Action) IsMove() bool {
	return a.Kind == ActionMoveToStaging || a.Kind == ActionMoveTo
}

// Backlink records one reference from a note to an attachment.
type Backlink struct {
	// FromNote is the vault path of the referencing note.
	FromNote string `json:"from" yaml:"from"`
	// Raw is the original link text as found in the note.
	Raw string `json:"raw" yaml:"raw"`
	// Cleaned is the link text with alias, heading, block ref and query
	// stripped, separators normalized and percent-encoding decoded.
	Cleaned string `json:"cleaned" yaml:"cleaned"`
	// ExplicitPath is the vault-relative path encoded in the link itself,
	// empty when the link carried no path separator.
	ExplicitPath string `json:"explicitPath,omitempty" yaml:"explicitPath,omitempty"`
}

// IsExplicit reports whether the link itself encodes a folder path.
func (b Backlink) IsExplicit() bool {
	return b.ExplicitPath != ""
}
