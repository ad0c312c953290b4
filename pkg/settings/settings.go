// Package settings holds the persisted configuration and its load/save
// machinery. Loading is layered: embedded defaults first, then the user
// file merged on top, so a partial or malformed user file degrades to
// defaults instead of failing.
package settings

// BacklinkScope selects which notes are scanned for backlinks.
type BacklinkScope string

const (
	// ScopeWorkspace restricts the scan to workspace-zone notes.
	ScopeWorkspace BacklinkScope = "workspace"
	// ScopeVault scans every note in the vault.
	ScopeVault BacklinkScope = "vault"
)

// PlacementMode maps a base folder (derived from a referencing note) to the
// destination folder for an attachment.
type PlacementMode string

const (
	// PlacementVaultFolder places attachments at the vault root.
	PlacementVaultFolder PlacementMode = "vault-folder"
	// PlacementSpecifiedFolder places attachments in one fixed folder.
	PlacementSpecifiedFolder PlacementMode = "specified-folder"
	// PlacementSameFolder places attachments next to the note.
	PlacementSameFolder PlacementMode = "same-folder-as-note"
	// PlacementSubfolder places attachments in a named subfolder under
	// the note's folder.
	PlacementSubfolder PlacementMode = "subfolder-under-note"
)

// MultiBacklinkPolicy decides placement when several notes reference the
// same attachment.
type MultiBacklinkPolicy string

const (
	// MultiUnchanged keeps multi-referenced attachments where they are.
	MultiUnchanged MultiBacklinkPolicy = "unchanged"
	// MultiLCA places them under the lowest common ancestor folder of
	// all referencing notes.
	MultiLCA MultiBacklinkPolicy = "lca"
	// MultiPickFirst plans as if only the first recorded backlink existed.
	MultiPickFirst MultiBacklinkPolicy = "pick-first"
)

// NameCheckMode controls the vault-wide ambiguous-filename check.
type NameCheckMode string

const (
	// NameCheckOff disables the check.
	NameCheckOff NameCheckMode = "off"
	// NameCheckIgnoreExplicit checks every move except explicit ones.
	NameCheckIgnoreExplicit NameCheckMode = "on-ignore-explicit"
	// NameCheckEvenExplicit checks explicit moves too.
	NameCheckEvenExplicit NameCheckMode = "on-even-explicit"
)

// Settings is the persisted configuration, round-tripped as TOML.
type Settings struct {
	// Zone roots. An empty WorkspaceFolder means the vault root is the
	// workspace.
	WorkspaceFolder string `koanf:"workspace_folder" toml:"workspace_folder"`
	StagingFolder   string `koanf:"staging_folder" toml:"staging_folder"`

	// Extra-scan folders.
	ExtraFolders     []string `koanf:"extra_folders" toml:"extra_folders"`
	ExtraScanEnabled bool     `koanf:"extra_scan_enabled" toml:"extra_scan_enabled"`

	// LegacyExtraFolder is the retired single-string form of
	// ExtraFolders. It is absorbed into ExtraFolders on load and
	// dropped; it never survives a save.
	LegacyExtraFolder string `koanf:"extra_folder" toml:"-"`

	Recursive bool `koanf:"recursive" toml:"recursive"`

	// Backlink scanning.
	Scope              BacklinkScope `koanf:"backlink_scope" toml:"backlink_scope"`
	IncludeLinks       bool          `koanf:"include_links" toml:"include_links"`
	IncludeEmbeds      bool          `koanf:"include_embeds" toml:"include_embeds"`
	IncludeFrontmatter bool          `koanf:"include_frontmatter" toml:"include_frontmatter"`

	// Placement policy.
	Placement       PlacementMode `koanf:"placement" toml:"placement"`
	SpecifiedFolder string        `koanf:"specified_folder" toml:"specified_folder"`
	SubfolderName   string        `koanf:"subfolder_name" toml:"subfolder_name"`

	MultiBacklink MultiBacklinkPolicy `koanf:"multi_backlink" toml:"multi_backlink"`
	NameCheck     NameCheckMode       `koanf:"name_check" toml:"name_check"`

	// RulePatterns are user attachment-detection patterns, unioned with
	// the permanent built-in defaults at compile time of the classifier.
	RulePatterns []string `koanf:"rule_patterns" toml:"rule_patterns"`

	// PlanOutside includes outside-zone attachments in planning.
	PlanOutside bool `koanf:"plan_outside" toml:"plan_outside"`
}

// ExtraScanFolders returns the active extra-scan folder list, empty when
// the feature is disabled.
func (s *Settings) ExtraScanFolders() []string {
	if !s.ExtraScanEnabled {
		return nil
	}
	return s.ExtraFolders
}
