// Package backlinks scans notes for links, normalizes them and resolves
// them to vault files, recording unresolved references as synthetic missing
// entries.
package backlinks

import (
	"sort"

	"github.com/rs/zerolog"

	"attachmint/pkg/logging"
	"attachmint/pkg/settings"
	"attachmint/pkg/types"
	"attachmint/pkg/vault"
)

// Resolver walks the selected note set and attaches backlinks to the
// snapshot's entries. It is pure over the snapshot: the only external calls
// are the metadata provider's.
type Resolver struct {
	meta               vault.Metadata
	includeLinks       bool
	includeEmbeds      bool
	includeFrontmatter bool
	logger             zerolog.Logger
}

// NewResolver builds a resolver honoring the link-source toggles.
func NewResolver(meta vault.Metadata, s *settings.Settings) *Resolver {
	return &Resolver{
		meta:               meta,
		includeLinks:       s.IncludeLinks,
		includeEmbeds:      s.IncludeEmbeds,
		includeFrontmatter: s.IncludeFrontmatter,
		logger:             logging.GetLogger("backlinks"),
	}
}

// Resolve scans the given notes (already filtered by backlink scope),
// appends backlinks to the matching entries in the snapshot map, and
// returns the synthetic missing entries for unresolved references, sorted
// by path. Notes are visited in the given order; dedup by source note keeps
// repeated links from one note to one target as a single backlink.
func (r *Resolver) Resolve(entries map[string]*types.FileEntry, notes []string) []*types.FileEntry {
	missing := make(map[string]*types.FileEntry)

	for _, note := range notes {
		links, err := r.meta.GetLinks(note)
		if err != nil {
			r.logger.Warn().Err(err).Str("note", note).Msg("Failed to read note links")
			continue
		}
		for _, raw := range r.selectRaw(links) {
			bl, ok := ParseLink(raw, note)
			if !ok {
				continue
			}
			r.resolveOne(bl, entries, missing)
		}
	}

	out := make([]*types.FileEntry, 0, len(missing))
	for _, e := range missing {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// selectRaw flattens the enabled link sources, in a stable order.
func (r *Resolver) selectRaw(links vault.Links) []string {
	var raw []string
	if r.includeLinks {
		raw = append(raw, links.Links...)
	}
	if r.includeEmbeds {
		raw = append(raw, links.Embeds...)
	}
	if r.includeFrontmatter {
		raw = append(raw, links.FrontmatterLinks...)
	}
	return raw
}

// resolveOne attaches one backlink to its target entry, or records it under
// a missing key. Resolution order: the explicit path when a file exists
// there, then host link resolution on the cleaned text, then host
// resolution on just the explicit path's basename.
func (r *Resolver) resolveOne(bl types.Backlink, entries, missing map[string]*types.FileEntry) {
	if bl.ExplicitPath != "" {
		if target, ok := entries[bl.ExplicitPath]; ok {
			target.AddBacklink(bl)
			return
		}
	}

	if path, ok := r.meta.ResolveLink(bl.Cleaned, bl.FromNote); ok {
		if target, ok := entries[path]; ok {
			target.AddBacklink(bl)
			return
		}
	}

	if bl.ExplicitPath != "" {
		if path, ok := r.meta.ResolveLink(types.BaseName(bl.ExplicitPath), bl.FromNote); ok {
			if target, ok := entries[path]; ok {
				target.AddBacklink(bl)
				return
			}
		}
	}

	key := bl.Cleaned
	if bl.ExplicitPath != "" {
		key = bl.ExplicitPath
	}
	entry, ok := missing[key]
	if !ok {
		entry = &types.FileEntry{
			Path:        key,
			DisplayName: types.BaseName(key),
			Zone:        types.ZoneOutside,
			Kind:        types.KindUnknown,
			Action:      types.UnknownAction("unresolved reference"),
		}
		entry.AddTag(types.TagMissing)
		missing[key] = entry
		r.logger.Debug().Str("key", key).Str("note", bl.FromNote).Msg("Unresolved link")
	}
	entry.AddBacklink(bl)
}
