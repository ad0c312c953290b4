package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attachmint.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "", s.WorkspaceFolder)
	assert.Equal(t, "_staging", s.StagingFolder)
	assert.True(t, s.Recursive)
	assert.Equal(t, ScopeWorkspace, s.Scope)
	assert.True(t, s.IncludeLinks)
	assert.True(t, s.IncludeEmbeds)
	assert.True(t, s.IncludeFrontmatter)
	assert.Equal(t, PlacementSubfolder, s.Placement)
	assert.Equal(t, "attachments", s.SubfolderName)
	assert.Equal(t, MultiUnchanged, s.MultiBacklink)
	assert.Equal(t, NameCheckOff, s.NameCheck)
	assert.False(t, s.PlanOutside)
}

func TestLoad_UserFileMergesOverDefaults(t *testing.T) {
	path := writeSettingsFile(t, `
staging_folder = "Inbox"
placement = "same-folder-as-note"
name_check = "on-ignore-explicit"
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Inbox", s.StagingFolder)
	assert.Equal(t, PlacementSameFolder, s.Placement)
	assert.Equal(t, NameCheckIgnoreExplicit, s.NameCheck)
	// Untouched keys keep their defaults.
	assert.True(t, s.Recursive)
	assert.Equal(t, ScopeWorkspace, s.Scope)
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := writeSettingsFile(t, "staging_folder = [broken")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "_staging", s.StagingFolder)
}

func TestLoad_LegacyExtraFolderMigrates(t *testing.T) {
	path := writeSettingsFile(t, `extra_folder = "Clippings"`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "", s.LegacyExtraFolder)
	assert.Contains(t, s.ExtraFolders, "Clippings")
	assert.True(t, s.ExtraScanEnabled)
	assert.Equal(t, []string{"Clippings"}, s.ExtraScanFolders())

	// The migration was persisted: the saved file no longer carries the
	// legacy key and loads identically.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "extra_folder =")

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.ExtraFolders, reloaded.ExtraFolders)
	assert.True(t, reloaded.ExtraScanEnabled)
}

func TestLoad_LegacyFolderAlreadyListed(t *testing.T) {
	path := writeSettingsFile(t, `
extra_folder = "Clippings"
extra_folders = ["Clippings", "Imports"]
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clippings", "Imports"}, s.ExtraFolders)
	assert.True(t, s.ExtraScanEnabled)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "attachmint.toml")

	s, err := Load(path)
	require.NoError(t, err)
	s.StagingFolder = "Inbox"
	s.ExtraFolders = []string{"Clippings"}
	s.ExtraScanEnabled = true
	s.RulePatterns = []string{`\.drawio\.md$`}

	require.NoError(t, Save(path, s))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, reloaded)
}

func TestExtraScanFolders_DisabledReturnsNothing(t *testing.T) {
	s := &Settings{ExtraFolders: []string{"Clippings"}}
	assert.Empty(t, s.ExtraScanFolders())
}
