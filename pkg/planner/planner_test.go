package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachmint/pkg/settings"
	"attachmint/pkg/testutil"
	"attachmint/pkg/types"
)

func attachment(path string, zone types.Zone, backlinks ...types.Backlink) *types.FileEntry {
	return &types.FileEntry{
		Path:         path,
		DisplayName:  types.BaseName(path),
		Zone:         zone,
		Kind:         types.KindAttachmentFile,
		ReferencedBy: backlinks,
		Action:       types.Keep(""),
	}
}

func fromNote(note string) types.Backlink {
	return types.Backlink{FromNote: note, Raw: "x", Cleaned: "x"}
}

func planOne(t *testing.T, s *settings.Settings, e *types.FileEntry) types.Action {
	t.Helper()
	entries := map[string]*types.FileEntry{e.Path: e}
	New(s).Plan(entries, nil)
	return e.Action
}

func TestPlan_OrphanGoesToStaging(t *testing.T) {
	e := attachment("img.png", types.ZoneWorkspace)
	action := planOne(t, testutil.DefaultSettings(), e)

	assert.Equal(t, types.ActionMoveToStaging, action.Kind)
	assert.Equal(t, "orphan", action.Reason)
	assert.True(t, e.HasTag(types.TagOrphan))
}

func TestPlan_StagingZoneIsTerminal(t *testing.T) {
	e := attachment("_staging/img.png", types.ZoneStaging)
	action := planOne(t, testutil.DefaultSettings(), e)

	assert.Equal(t, types.ActionKeep, action.Kind)
	assert.False(t, e.HasTag(types.TagOrphan))
}

func TestPlan_OutsideZoneNeedsFlag(t *testing.T) {
	s := testutil.DefaultSettings()
	e := attachment("elsewhere/img.png", types.ZoneOutside)
	assert.Equal(t, types.ActionKeep, planOne(t, s, e).Kind)

	s.PlanOutside = true
	e2 := attachment("elsewhere/img.png", types.ZoneOutside)
	assert.Equal(t, types.ActionMoveToStaging, planOne(t, s, e2).Kind)
}

func TestPlan_NotesAndMissingAreNeverPlanned(t *testing.T) {
	s := testutil.DefaultSettings()

	note := &types.FileEntry{Path: "a.md", Zone: types.ZoneWorkspace, Kind: types.KindNote}
	assert.Equal(t, types.ActionKeep, planOne(t, s, note).Kind)

	ghost := &types.FileEntry{Path: "gone.png", Zone: types.ZoneOutside, Kind: types.KindUnknown}
	ghost.AddTag(types.TagMissing)
	assert.Equal(t, types.ActionKeep, planOne(t, s, ghost).Kind)
}

func TestPlan_SingleExplicitBacklink(t *testing.T) {
	bl := types.Backlink{FromNote: "proj/note.md", Raw: "assets/img.png", Cleaned: "assets/img.png", ExplicitPath: "assets/img.png"}
	e := attachment("old/img.png", types.ZoneWorkspace, bl)

	action := planOne(t, testutil.DefaultSettings(), e)
	require.Equal(t, types.ActionMoveTo, action.Kind)
	assert.Equal(t, "assets/img.png", action.Target)
	assert.True(t, action.Explicit)
	assert.Equal(t, "single-backlink-explicit", action.Reason)
}

func TestPlan_SingleBacklinkPlacementModes(t *testing.T) {
	tests := []struct {
		name       string
		placement  settings.PlacementMode
		specified  string
		subfolder  string
		wantTarget string
	}{
		{"vault folder", settings.PlacementVaultFolder, "", "", "img.png"},
		{"specified folder", settings.PlacementSpecifiedFolder, "media", "", "media/img.png"},
		{"same folder as note", settings.PlacementSameFolder, "", "", "proj/web/img.png"},
		{"subfolder under note", settings.PlacementSubfolder, "", "assets", "proj/web/assets/img.png"},
		{"subfolder falls back when unnamed", settings.PlacementSubfolder, "", "", "proj/web/img.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.DefaultSettings()
			s.Placement = tt.placement
			s.SpecifiedFolder = tt.specified
			s.SubfolderName = tt.subfolder

			e := attachment("old/img.png", types.ZoneWorkspace, fromNote("proj/web/note.md"))
			action := planOne(t, s, e)

			require.Equal(t, types.ActionMoveTo, action.Kind)
			assert.Equal(t, tt.wantTarget, action.Target)
			assert.False(t, action.Explicit)
		})
	}
}

func TestPlan_MultiBacklinkPolicies(t *testing.T) {
	backlinks := []types.Backlink{fromNote("proj/web/a.md"), fromNote("proj/api/b.md")}

	t.Run("unchanged keeps", func(t *testing.T) {
		s := testutil.DefaultSettings()
		e := attachment("old/diagram.png", types.ZoneWorkspace, backlinks...)
		assert.Equal(t, types.ActionKeep, planOne(t, s, e).Kind)
	})

	t.Run("pick-first plans from first backlink", func(t *testing.T) {
		s := testutil.DefaultSettings()
		s.MultiBacklink = settings.MultiPickFirst
		s.Placement = settings.PlacementSameFolder
		e := attachment("old/diagram.png", types.ZoneWorkspace, backlinks...)

		action := planOne(t, s, e)
		require.Equal(t, types.ActionMoveTo, action.Kind)
		assert.Equal(t, "proj/web/diagram.png", action.Target)
	})

	t.Run("lca applies placement to common ancestor", func(t *testing.T) {
		s := testutil.DefaultSettings()
		s.MultiBacklink = settings.MultiLCA
		s.Placement = settings.PlacementSubfolder
		s.SubfolderName = "assets"
		e := attachment("old/diagram.png", types.ZoneWorkspace, backlinks...)

		action := planOne(t, s, e)
		require.Equal(t, types.ActionMoveTo, action.Kind)
		assert.Equal(t, "proj/assets/diagram.png", action.Target)
		assert.Equal(t, "multi-backlink-lca", action.Reason)
	})
}

func TestPlan_ScanScopePredicate(t *testing.T) {
	s := testutil.DefaultSettings()
	shallow := attachment("img.png", types.ZoneWorkspace)
	deep := attachment("deep/img2.png", types.ZoneWorkspace)
	entries := map[string]*types.FileEntry{shallow.Path: shallow, deep.Path: deep}

	New(s).Plan(entries, func(e *types.FileEntry) bool {
		return types.ParentPath(e.Path) == ""
	})

	assert.Equal(t, types.ActionMoveToStaging, shallow.Action.Kind)
	assert.Equal(t, types.ActionKeep, deep.Action.Kind)
	assert.Equal(t, "outside scan depth", deep.Action.Reason)
}
