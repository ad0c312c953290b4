// Package vault defines the host-facing ports the engine consumes: a file
// provider for listing and mutating vault files, and a metadata provider for
// link extraction and host-style link resolution. Adapters in this package
// back both with an afero filesystem; the engine itself never touches the OS.
package vault

// Links carries the raw link strings extracted from one note, split by
// source so each can be toggled independently.
type Links struct {
	Links            []string
	Embeds           []string
	FrontmatterLinks []string
}

// Provider is the file side of the host vault.
type Provider interface {
	// ListFiles returns every file path in the vault, sorted.
	ListFiles() ([]string, error)
	// ListFolder returns the file paths under folder, optionally
	// recursive, sorted.
	ListFolder(folder string, recursive bool) ([]string, error)
	// FileExists reports whether a file exists at the vault path.
	FileExists(path string) bool
	// ReadFile returns the file contents.
	ReadFile(path string) ([]byte, error)
	// CreateFolder creates the folder and any missing parents. Creating
	// an existing folder is not an error.
	CreateFolder(path string) error
	// RenameFile moves a file; it fails if the source is missing and
	// never overwrites an existing destination.
	RenameFile(oldPath, newPath string) error
}

// Metadata is the note-metadata side of the host vault.
type Metadata interface {
	// GetLinks returns the raw link strings found in the note.
	GetLinks(notePath string) (Links, error)
	// ResolveLink runs the host's best-match link resolution for key as
	// written in fromNote, returning the resolved vault path.
	ResolveLink(key, fromNote string) (string, bool)
}
