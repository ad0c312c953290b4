// Package planner decides, per attachment, whether to keep, relocate or
// stage it, consulting the configured placement policy.
package planner

import (
	"github.com/rs/zerolog"

	"attachmint/pkg/logging"
	"attachmint/pkg/settings"
	"attachmint/pkg/types"
)

// Planner assigns an action to every entry of a snapshot. It is pure given
// its inputs: no vault calls, no shared state.
type Planner struct {
	placement     settings.PlacementMode
	specified     string
	subfolder     string
	multiBacklink settings.MultiBacklinkPolicy
	planOutside   bool
	logger        zerolog.Logger
}

// New builds a planner from settings.
func New(s *settings.Settings) *Planner {
	return &Planner{
		placement:     s.Placement,
		specified:     types.NormalizePath(s.SpecifiedFolder),
		subfolder:     s.SubfolderName,
		multiBacklink: s.MultiBacklink,
		planOutside:   s.PlanOutside,
		logger:        logging.GetLogger("planner"),
	}
}

// Plan sets the action on each entry. Only attachment-kind entries without
// the missing tag are planned; staging-zone entries are terminal keeps, and
// outside-zone entries are planned only when configured to. A non-nil
// inScope predicate excludes entries outside the scan depth.
func (p *Planner) Plan(entries map[string]*types.FileEntry, inScope func(*types.FileEntry) bool) {
	for _, e := range entries {
		e.Action = p.planEntry(e, inScope)
		if e.Action.Kind == types.ActionMoveToStaging && e.Action.Reason == "orphan" {
			e.AddTag(types.TagOrphan)
		}
	}
}

func (p *Planner) planEntry(e *types.FileEntry, inScope func(*types.FileEntry) bool) types.Action {
	if !e.Kind.IsAttachment() || e.HasTag(types.TagMissing) {
		return types.Keep("")
	}
	if inScope != nil && !inScope(e) {
		return types.Keep("outside scan depth")
	}
	if e.Zone == types.ZoneStaging {
		return types.Keep("already staged")
	}
	if e.Zone == types.ZoneOutside && !p.planOutside {
		return types.Keep("outside scan zones")
	}

	switch len(e.ReferencedBy) {
	case 0:
		return types.MoveToStaging("orphan")
	case 1:
		return p.planSingle(e, e.ReferencedBy[0])
	default:
		return p.planMulti(e)
	}
}

// planSingle computes the action for exactly one backlink.
func (p *Planner) planSingle(e *types.FileEntry, bl types.Backlink) types.Action {
	if bl.IsExplicit() {
		return types.MoveTo(bl.ExplicitPath, "single-backlink-explicit", true)
	}
	folder := p.policyFolder(types.ParentPath(bl.FromNote))
	return types.MoveTo(types.JoinPath(folder, types.BaseName(e.Path)), "single-backlink", false)
}

// planMulti applies the multi-backlink policy.
func (p *Planner) planMulti(e *types.FileEntry) types.Action {
	switch p.multiBacklink {
	case settings.MultiPickFirst:
		return p.planSingle(e, e.ReferencedBy[0])
	case settings.MultiLCA:
		folders := make([]string, 0, len(e.ReferencedBy))
		for _, bl := range e.ReferencedBy {
			folders = append(folders, types.ParentPath(bl.FromNote))
		}
		folder := p.policyFolder(LCA(folders))
		return types.MoveTo(types.JoinPath(folder, types.BaseName(e.Path)), "multi-backlink-lca", false)
	default:
		return types.Keep("multiple backlinks")
	}
}

// policyFolder resolves the placement policy against a base folder derived
// from the referencing note(s).
func (p *Planner) policyFolder(base string) string {
	switch p.placement {
	case settings.PlacementVaultFolder:
		return ""
	case settings.PlacementSpecifiedFolder:
		return p.specified
	case settings.PlacementSameFolder:
		return base
	case settings.PlacementSubfolder:
		if p.subfolder == "" {
			return base
		}
		return types.JoinPath(base, p.subfolder)
	default:
		p.logger.Warn().Str("placement", string(p.placement)).Msg("Unknown placement mode, using note folder")
		return base
	}
}
