package backlinks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachmint/pkg/testutil"
	"attachmint/pkg/types"
)

func entriesFor(paths ...string) map[string]*types.FileEntry {
	entries := make(map[string]*types.FileEntry, len(paths))
	for _, p := range paths {
		entries[p] = &types.FileEntry{Path: p, DisplayName: types.BaseName(p), Zone: types.ZoneWorkspace, Kind: types.KindAttachmentFile, Action: types.Keep("")}
	}
	return entries
}

func TestResolve_ExplicitPathWins(t *testing.T) {
	_, meta := testutil.NewMemVault(t, map[string]string{
		"notes/a.md":     "![[assets/img.png]]",
		"assets/img.png": "x",
	})
	entries := entriesFor("assets/img.png")

	r := NewResolver(meta, testutil.DefaultSettings())
	missing := r.Resolve(entries, []string{"notes/a.md"})

	require.Empty(t, missing)
	require.Len(t, entries["assets/img.png"].ReferencedBy, 1)
	bl := entries["assets/img.png"].ReferencedBy[0]
	assert.Equal(t, "notes/a.md", bl.FromNote)
	assert.Equal(t, "assets/img.png", bl.ExplicitPath)
}

func TestResolve_HostResolutionByBasename(t *testing.T) {
	_, meta := testutil.NewMemVault(t, map[string]string{
		"notes/a.md":   "![[img.png]]",
		"pics/img.png": "x",
	})
	entries := entriesFor("pics/img.png")

	r := NewResolver(meta, testutil.DefaultSettings())
	missing := r.Resolve(entries, []string{"notes/a.md"})

	require.Empty(t, missing)
	require.Len(t, entries["pics/img.png"].ReferencedBy, 1)
	assert.Equal(t, "", entries["pics/img.png"].ReferencedBy[0].ExplicitPath)
}

func TestResolve_ExplicitFallbackToBasename(t *testing.T) {
	// The explicit path points at a folder that no longer holds the
	// file; resolution falls back to the basename.
	_, meta := testutil.NewMemVault(t, map[string]string{
		"notes/a.md":   "![[old/img.png]]",
		"pics/img.png": "x",
	})
	entries := entriesFor("pics/img.png")

	r := NewResolver(meta, testutil.DefaultSettings())
	missing := r.Resolve(entries, []string{"notes/a.md"})

	require.Empty(t, missing)
	require.Len(t, entries["pics/img.png"].ReferencedBy, 1)
	assert.Equal(t, "old/img.png", entries["pics/img.png"].ReferencedBy[0].ExplicitPath)
}

func TestResolve_MissingGroupedByKey(t *testing.T) {
	_, meta := testutil.NewMemVault(t, map[string]string{
		"notes/a.md": "![[ghost/gone.png]]",
		"notes/b.md": "![[ghost/gone.png]] and [[gone-too]]",
	})
	entries := entriesFor()

	r := NewResolver(meta, testutil.DefaultSettings())
	missing := r.Resolve(entries, []string{"notes/a.md", "notes/b.md"})

	require.Len(t, missing, 2)
	// Sorted by path: explicit key first.
	ghost := missing[0]
	assert.Equal(t, "ghost/gone.png", ghost.Path)
	assert.Equal(t, types.KindUnknown, ghost.Kind)
	assert.Equal(t, types.ZoneOutside, ghost.Zone)
	assert.True(t, ghost.HasTag(types.TagMissing))
	assert.Equal(t, types.ActionUnknown, ghost.Action.Kind)
	require.Len(t, ghost.ReferencedBy, 2)

	assert.Equal(t, "gone-too", missing[1].Path)
	require.Len(t, missing[1].ReferencedBy, 1)
}

func TestResolve_DedupedBySourceNote(t *testing.T) {
	_, meta := testutil.NewMemVault(t, map[string]string{
		"notes/a.md":   "![[img.png]] then again [[img.png]]",
		"pics/img.png": "x",
	})
	entries := entriesFor("pics/img.png")

	r := NewResolver(meta, testutil.DefaultSettings())
	r.Resolve(entries, []string{"notes/a.md"})

	assert.Len(t, entries["pics/img.png"].ReferencedBy, 1)
}

func TestResolve_SourceToggles(t *testing.T) {
	files := map[string]string{
		"notes/a.md": `---
cover: "[[front.png]]"
---
[[linked.png]] and ![[embedded.png]]`,
		"front.png":    "x",
		"linked.png":   "x",
		"embedded.png": "x",
	}

	tests := []struct {
		name       string
		links      bool
		embeds     bool
		fm         bool
		referenced []string
	}{
		{"all on", true, true, true, []string{"front.png", "linked.png", "embedded.png"}},
		{"links only", true, false, false, []string{"linked.png"}},
		{"embeds only", false, true, false, []string{"embedded.png"}},
		{"frontmatter only", false, false, true, []string{"front.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, meta := testutil.NewMemVault(t, files)
			entries := entriesFor("front.png", "linked.png", "embedded.png")

			s := testutil.DefaultSettings()
			s.IncludeLinks = tt.links
			s.IncludeEmbeds = tt.embeds
			s.IncludeFrontmatter = tt.fm

			NewResolver(meta, s).Resolve(entries, []string{"notes/a.md"})

			var got []string
			for path, e := range entries {
				if len(e.ReferencedBy) > 0 {
					got = append(got, path)
				}
			}
			assert.ElementsMatch(t, tt.referenced, got)
		})
	}
}
