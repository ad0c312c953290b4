package core

import (
	"attachmint/pkg/backlinks"
	"attachmint/pkg/kinds"
	"attachmint/pkg/logging"
	"attachmint/pkg/planner"
	"attachmint/pkg/settings"
	"attachmint/pkg/simulate"
	"attachmint/pkg/types"
	"attachmint/pkg/zone"
)

// DetectReport returns the current snapshot report. Unless forced, a clean
// cached report is reused; a forced or dirty detect rebuilds everything
// from scratch.
func (e *Engine) DetectReport(force bool) (*types.DetectReport, error) {
	e.mu.Lock()
	if !force && !e.dirty && e.lastReport != nil {
		report := e.lastReport
		e.mu.Unlock()
		return report, nil
	}
	e.mu.Unlock()

	report, err := e.detect()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.lastReport = report
	e.dirty = false
	e.mu.Unlock()
	return report, nil
}

// detect runs one full pass: classify, resolve backlinks, plan, simulate.
// It works on its own snapshot and touches no engine state.
func (e *Engine) detect() (*types.DetectReport, error) {
	defer logging.LogOperationStart(e.logger, "detect")()

	zones := zone.NewClassifier(e.settings)
	classifier := kinds.NewClassifier(e.settings.RulePatterns)

	files, err := e.provider.ListFiles()
	if err != nil {
		return nil, err
	}

	// One entry per real file; the map is the arena for this pass.
	entries := make(map[string]*types.FileEntry, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := types.NormalizePath(f)
		if _, ok := entries[path]; ok {
			continue
		}
		entries[path] = &types.FileEntry{
			Path:        path,
			DisplayName: types.BaseName(path),
			Zone:        zones.Classify(path),
			Kind:        classifier.KindOf(path),
			Action:      types.Keep(""),
		}
		paths = append(paths, path)
	}

	// Note set selected by backlink scope, in sorted file order.
	var notes []string
	for _, path := range paths {
		entry := entries[path]
		if entry.Kind != types.KindNote {
			continue
		}
		if e.settings.Scope == settings.ScopeWorkspace && entry.Zone != types.ZoneWorkspace {
			continue
		}
		notes = append(notes, path)
	}

	resolver := backlinks.NewResolver(e.meta, e.settings)
	missing := resolver.Resolve(entries, notes)

	planner.New(e.settings).Plan(entries, e.scanScope(zones))

	// Synthetic missing entries join the arena after planning; their
	// paths never shadow a real file (the resolver checked first).
	for _, m := range missing {
		if _, ok := entries[m.Path]; ok {
			e.logger.Warn().Str("path", m.Path).Msg("Missing-entry key shadows a real file, skipping")
			continue
		}
		entries[m.Path] = m
	}

	previews := simulate.New(e.settings, zones).Simulate(entries)

	report := &types.DetectReport{Preview: previews}
	for _, entry := range entries {
		if includeInReport(entry) {
			report.Entries = append(report.Entries, entry)
		}
	}
	report.SortEntries()
	report.ComputeStats()

	e.logger.Info().
		Int("files", report.Stats.Files).
		Int("moves", report.Stats.Moves).
		Int("conflicts", report.Stats.Conflicts).
		Int("missing", report.Stats.Missing).
		Msg("Detection complete")
	return report, nil
}

// scanScope returns the depth predicate for non-recursive scans, nil when
// scanning is recursive.
func (e *Engine) scanScope(zones *zone.Classifier) func(*types.FileEntry) bool {
	if e.settings.Recursive {
		return nil
	}
	return func(entry *types.FileEntry) bool {
		root, ok := zones.Root(entry.Path)
		if !ok {
			// Outside-zone paths have no scan root; the planner's
			// own outside handling governs them.
			return true
		}
		return types.ParentPath(entry.Path) == root
	}
}

// includeInReport keeps every in-zone and synthetic entry, and only the
// relevant subset of outside files: referenced, tagged or planned ones.
func includeInReport(entry *types.FileEntry) bool {
	if entry.Zone != types.ZoneOutside || entry.Kind == types.KindUnknown {
		return true
	}
	return len(entry.ReferencedBy) > 0 || len(entry.Tags) > 0 || entry.Action.IsMove()
}
