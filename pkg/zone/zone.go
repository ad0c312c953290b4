// Package zone maps vault paths to configured zones.
package zone

import (
	"attachmint/pkg/settings"
	"attachmint/pkg/types"
)

// Classifier assigns a zone to each vault path from the configured roots.
// Priority is fixed: staging first, then extra-scan folders, then the
// workspace, else outside. The fixed order keeps nested roots deterministic
// (staging inside the workspace still classifies as staging).
type Classifier struct {
	workspace string
	staging   string
	extra     []string
}

// NewClassifier builds a classifier from settings. Roots are normalized to
// vault form once here.
func NewClassifier(s *settings.Settings) *Classifier {
	c := &Classifier{
		workspace: types.NormalizePath(s.WorkspaceFolder),
		staging:   types.NormalizePath(s.StagingFolder),
	}
	for _, f := range s.ExtraScanFolders() {
		if f = types.NormalizePath(f); f != "" {
			c.extra = append(c.extra, f)
		}
	}
	return c
}

// Classify returns the zone for a path. It is total: every path lands in
// exactly one zone.
func (c *Classifier) Classify(path string) types.Zone {
	zone, _ := c.classify(path)
	return zone
}

// Root returns the zone root that captured the path; ok is false for
// outside paths. The workspace root may be "" (the vault root).
func (c *Classifier) Root(path string) (root string, ok bool) {
	zone, root := c.classify(path)
	return root, zone != types.ZoneOutside
}

func (c *Classifier) classify(path string) (types.Zone, string) {
	path = types.NormalizePath(path)

	if c.staging != "" && types.IsUnder(path, c.staging) {
		return types.ZoneStaging, c.staging
	}
	for _, root := range c.extra {
		if types.IsUnder(path, root) {
			return types.ZoneExtra, root
		}
	}
	// An empty workspace root means the whole vault is the workspace.
	if types.IsUnder(path, c.workspace) {
		return types.ZoneWorkspace, c.workspace
	}
	return types.ZoneOutside, ""
}
