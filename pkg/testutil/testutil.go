// Package testutil provides in-memory vault fixtures for tests.
package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"attachmint/pkg/settings"
	"attachmint/pkg/vault"
)

// NewMemVault builds an in-memory vault from a map of path -> content and
// returns the provider plus a markdown-parsing metadata adapter over it.
func NewMemVault(t *testing.T, files map[string]string) (vault.Provider, vault.Metadata) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	provider := vault.NewFS(fs)
	return provider, vault.NewMarkdownMetadata(provider)
}

// DefaultSettings mirrors the embedded defaults, for tests that build
// settings directly instead of loading a file.
func DefaultSettings() *settings.Settings {
	return &settings.Settings{
		WorkspaceFolder:    "",
		StagingFolder:      "_staging",
		Recursive:          true,
		Scope:              settings.ScopeWorkspace,
		IncludeLinks:       true,
		IncludeEmbeds:      true,
		IncludeFrontmatter: true,
		Placement:          settings.PlacementSubfolder,
		SubfolderName:      "attachments",
		MultiBacklink:      settings.MultiUnchanged,
		NameCheck:          settings.NameCheckOff,
	}
}
