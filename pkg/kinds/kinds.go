// Package kinds classifies vault files into notes and attachments using
// compiled pattern rules.
package kinds

import (
	"regexp"

	"attachmint/pkg/logging"
	"attachmint/pkg/types"
)

// builtinPatterns are the permanent attachment-detection rules. They match
// markdown files that are really drawings or other tool data, and are always
// unioned with user patterns, never removable.
var builtinPatterns = []string{
	`\.excalidraw\.md$`,
	`\.canvas\.md$`,
	`\.tldraw\.md$`,
	`(^|/)excalidraw/.*\.md$`,
}

// Classifier maps a path to a file kind using compiled case-insensitive
// rules. Non-markdown files are attachments unconditionally; markdown files
// matching any rule are attachment notes.
type Classifier struct {
	rules []*regexp.Regexp
}

// NewClassifier compiles the built-in patterns plus the user patterns.
// Invalid user patterns are dropped with a warning; built-ins always
// compile.
func NewClassifier(userPatterns []string) *Classifier {
	logger := logging.GetLogger("kinds")

	c := &Classifier{}
	for _, p := range builtinPatterns {
		c.rules = append(c.rules, regexp.MustCompile(`(?i)`+p))
	}
	for _, p := range userPatterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			logger.Warn().Err(err).Str("pattern", p).Msg("Dropping invalid attachment rule")
			continue
		}
		c.rules = append(c.rules, re)
	}
	return c
}

// KindOf returns the kind for a path.
func (c *Classifier) KindOf(path string) types.FileKind {
	if !types.IsMarkdown(path) {
		return types.KindAttachmentFile
	}
	for _, re := range c.rules {
		if re.MatchString(path) {
			return types.KindAttachmentNote
		}
	}
	return types.KindNote
}
