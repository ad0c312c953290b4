// Package simulate runs the whole candidate move-set through one
// deterministic collision-detection pass, producing a conflict-free preview
// before anything happens on disk.
package simulate

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"attachmint/pkg/logging"
	"attachmint/pkg/settings"
	"attachmint/pkg/types"
	"attachmint/pkg/zone"
)

// Simulator checks every planned move against every other and against the
// pre-existing files. The side-table indices are scoped to one Simulate
// call; the simulator itself holds only configuration.
type Simulator struct {
	staging   string
	nameCheck settings.NameCheckMode
	zones     *zone.Classifier
	logger    zerolog.Logger
}

// New builds a simulator from settings.
func New(s *settings.Settings, zones *zone.Classifier) *Simulator {
	return &Simulator{
		staging:   types.NormalizePath(s.StagingFolder),
		nameCheck: s.NameCheck,
		zones:     zones,
		logger:    logging.GetLogger("simulate"),
	}
}

// pass carries the per-run side tables: three claim indices plus the
// emitted previews, all rolled back together when a claimant reverts.
type pass struct {
	entries map[string]*types.FileEntry
	// existing is the set of real file paths in the snapshot.
	existing map[string]bool
	// existingNames maps normalized filename to the sorted real paths
	// carrying it.
	existingNames map[string][]string

	plannedTargets    map[string]string // resolved target -> source
	plannedFolderName map[string]string // folder-key -> source
	plannedName       map[string]string // normalized filename -> source
	previews          map[string]*types.FileEntry
	reverted          map[string]bool
}

// Simulate mutates the snapshot entries (reverting conflicted candidates to
// Keep and tagging them) and returns the preview entries for the
// conflict-free subset, sorted by target path. One left-to-right pass over
// candidates sorted by source path; a reverted candidate is never
// reconsidered even though its rollback might free capacity for another
// outcome.
func (sim *Simulator) Simulate(entries map[string]*types.FileEntry) []*types.FileEntry {
	p := &pass{
		entries:           entries,
		existing:          make(map[string]bool),
		existingNames:     make(map[string][]string),
		plannedTargets:    make(map[string]string),
		plannedFolderName: make(map[string]string),
		plannedName:       make(map[string]string),
		previews:          make(map[string]*types.FileEntry),
		reverted:          make(map[string]bool),
	}

	var candidates []*types.FileEntry
	realPaths := make([]string, 0, len(entries))
	for path, e := range entries {
		if e.Kind == types.KindUnknown {
			continue
		}
		realPaths = append(realPaths, path)
		if e.Action.IsMove() && !e.HasConflict() {
			candidates = append(candidates, e)
		}
	}
	sort.Strings(realPaths)
	for _, path := range realPaths {
		p.existing[path] = true
		name := NormalizeName(types.BaseName(path))
		p.existingNames[name] = append(p.existingNames[name], path)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Path < candidates[j].Path })

	for _, c := range candidates {
		if p.reverted[c.Path] {
			continue
		}
		sim.simulateOne(p, c)
	}

	out := make([]*types.FileEntry, 0, len(p.previews))
	for _, preview := range p.previews {
		out = append(out, preview)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (sim *Simulator) simulateOne(p *pass, c *types.FileEntry) {
	target := sim.resolveTarget(c)
	if target == c.Path {
		c.Action = types.Keep("already in place")
		return
	}

	// 1. Target already claimed by an earlier candidate this pass.
	if source, ok := p.plannedTargets[target]; ok {
		sim.revertBoth(p, c, source, types.TagConflictTarget)
		return
	}

	// 2. Target occupied by a pre-existing file. A file that itself plans
	// to move away still occupies its source path here; such chains end
	// as conflicts, not as sequenced moves.
	if p.existing[target] {
		sim.revert(p, c, types.TagConflictTarget)
		if occupier, ok := p.entries[target]; ok && occupier.Kind != types.KindUnknown {
			sim.revert(p, occupier, types.TagConflictTarget)
			p.dropClaims(occupier.Path)
		}
		return
	}

	// 3. Same folder plus normalized filename claimed: catches case and
	// unicode-equivalent collisions whose raw target strings differ.
	fk := folderKey(target)
	if source, ok := p.plannedFolderName[fk]; ok {
		sim.revertBoth(p, c, source, types.TagConflictTarget)
		return
	}

	// 4. Vault-wide ambiguous-name check.
	name := NormalizeName(types.BaseName(target))
	checkName := sim.nameCheckActive(c)
	if checkName {
		if source, ok := p.plannedName[name]; ok {
			sim.revertBoth(p, c, source, types.TagConflictName)
			return
		}
		var colliding []string
		for _, path := range p.existingNames[name] {
			if path != c.Path {
				colliding = append(colliding, path)
			}
		}
		if len(colliding) > 0 {
			if len(colliding) > 3 {
				colliding = colliding[:3]
			}
			c.ConflictWith = colliding
			sim.revert(p, c, types.TagConflictName)
			return
		}
	}

	p.plannedTargets[target] = c.Path
	p.plannedFolderName[fk] = c.Path
	if checkName {
		p.plannedName[name] = c.Path
	}
	p.previews[target] = sim.previewOf(c, target)
}

// resolveTarget computes the destination path a candidate's action implies.
func (sim *Simulator) resolveTarget(c *types.FileEntry) string {
	switch c.Action.Kind {
	case types.ActionMoveToStaging:
		return types.JoinPath(sim.staging, types.BaseName(c.Path))
	case types.ActionMoveTo:
		return types.NormalizePath(c.Action.Target)
	default:
		return c.Path
	}
}

// nameCheckActive reports whether the global name check applies to this
// candidate: explicit moves are exempt unless the strict mode is on.
func (sim *Simulator) nameCheckActive(c *types.FileEntry) bool {
	switch sim.nameCheck {
	case settings.NameCheckEvenExplicit:
		return true
	case settings.NameCheckIgnoreExplicit:
		return !c.Action.Explicit
	default:
		return false
	}
}

// revert demotes an entry to Keep with a conflict tag. Once reverted, an
// entry stays reverted for the rest of the pass.
func (sim *Simulator) revert(p *pass, e *types.FileEntry, tag types.Tag) {
	sim.logger.Debug().Str("path", e.Path).Str("tag", string(tag)).Msg("Reverting conflicted move")
	e.Action = types.Keep("conflict")
	e.AddTag(tag)
	p.reverted[e.Path] = true
}

// revertBoth reverts the current candidate and the earlier claimant,
// removing the claimant's marks from every index and its preview.
func (sim *Simulator) revertBoth(p *pass, c *types.FileEntry, earlierSource string, tag types.Tag) {
	sim.revert(p, c, tag)
	if earlier, ok := p.entries[earlierSource]; ok {
		sim.revert(p, earlier, tag)
	}
	p.dropClaims(earlierSource)
}

// dropClaims removes every index claim and preview registered by source.
func (p *pass) dropClaims(source string) {
	for target, s := range p.plannedTargets {
		if s == source {
			delete(p.plannedTargets, target)
		}
	}
	for key, s := range p.plannedFolderName {
		if s == source {
			delete(p.plannedFolderName, key)
		}
	}
	for name, s := range p.plannedName {
		if s == source {
			delete(p.plannedName, name)
		}
	}
	for target, preview := range p.previews {
		if preview.VirtualFrom == source {
			delete(p.previews, target)
		}
	}
}

// previewOf builds the virtual target copy of a candidate.
func (sim *Simulator) previewOf(c *types.FileEntry, target string) *types.FileEntry {
	preview := &types.FileEntry{
		Path:         target,
		DisplayName:  types.BaseName(target),
		Zone:         sim.zones.Classify(target),
		Kind:         c.Kind,
		ReferencedBy: append([]types.Backlink(nil), c.ReferencedBy...),
		Action:       c.Action,
		Tags:         append([]types.Tag(nil), c.Tags...),
		VirtualFrom:  c.Path,
		IsPreview:    true,
	}
	return preview
}

// NormalizeName reduces a filename to its collision key: NFC-normalized and
// case-folded, so case or unicode-form variants of one name collide.
func NormalizeName(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

// folderKey is the (folder, normalized filename) index key.
func folderKey(path string) string {
	return NormalizeName(types.ParentPath(path)) + "\x00" + NormalizeName(types.BaseName(path))
}
