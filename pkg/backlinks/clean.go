package backlinks

import (
	"net/url"
	"strings"

	"attachmint/pkg/types"
)

// externalSchemes are link prefixes that never point into the vault.
var externalSchemes = []string{"http://", "https://", "mailto:", "file://"}

// CleanLink reduces a raw link string to its target text: everything after
// the first alias, heading, block-ref or query marker is dropped, in that
// order, then separators are normalized and percent-encoding decoded once.
// ok is false for empty results and external links.
func CleanLink(raw string) (cleaned string, ok bool) {
	s := raw
	for _, sep := range []string{"|", "#", "^", "?"} {
		if idx := strings.Index(s, sep); idx >= 0 {
			s = s[:idx]
		}
	}
	s = strings.ReplaceAll(s, "\\", "/")
	if strings.Contains(s, "%") {
		if decoded, err := url.PathUnescape(s); err == nil {
			s = decoded
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, scheme := range externalSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}
	return s, true
}

// ParseLink cleans a raw link and computes its explicit vault path, if the
// link text itself encodes one. ok is false for invalid or external links.
func ParseLink(raw, fromNote string) (types.Backlink, bool) {
	cleaned, ok := CleanLink(raw)
	if !ok {
		return types.Backlink{}, false
	}
	return types.Backlink{
		FromNote:     fromNote,
		Raw:          raw,
		Cleaned:      cleaned,
		ExplicitPath: explicitPath(cleaned, fromNote),
	}, true
}

// explicitPath returns the vault-relative path a cleaned link encodes, or
// "" when the link has no path separator. Relative forms resolve against
// the note's folder by concatenation; ".." segments are deliberately not
// collapsed here, the host normalizer owns that.
func explicitPath(cleaned, fromNote string) string {
	if !strings.Contains(cleaned, "/") {
		return ""
	}
	p := strings.TrimPrefix(cleaned, "/")
	if strings.HasPrefix(p, "./") {
		return types.JoinPath(types.ParentPath(fromNote), strings.TrimPrefix(p, "./"))
	}
	if strings.HasPrefix(p, "../") {
		return types.JoinPath(types.ParentPath(fromNote), p)
	}
	return p
}
