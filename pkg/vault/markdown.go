package vault

import (
	"strings"

	"gopkg.in/yaml.v3"

	"attachmint/pkg/logging"
	"attachmint/pkg/types"
)

// markdownMetadata implements Metadata by parsing note content directly:
// wiki links, embeds, inline markdown links and YAML frontmatter. It stands
// in for the host's metadata cache when running against a plain directory.
type markdownMetadata struct {
	provider Provider
}

// NewMarkdownMetadata returns a Metadata implementation that parses notes
// through the given Provider.
func NewMarkdownMetadata(p Provider) Metadata {
	return &markdownMetadata{provider: p}
}

func (m *markdownMetadata) GetLinks(notePath string) (Links, error) {
	data, err := m.provider.ReadFile(notePath)
	if err != nil {
		return Links{}, err
	}
	return ExtractLinks(string(data)), nil
}

// ExtractLinks pulls raw link strings from markdown content, split by
// source. Fenced code blocks and inline code spans are ignored.
func ExtractLinks(content string) Links {
	var out Links
	lines := strings.Split(content, "\n")

	fmEnd := frontmatterEnd(lines)
	if fmEnd > 0 {
		out.FrontmatterLinks = parseFrontmatterLinks(lines[:fmEnd+1])
	}

	inFence := false
	start := 0
	if fmEnd > 0 {
		start = fmEnd + 1
	}
	for i := start; i < len(lines); i++ {
		trim := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trim, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		line := stripInlineCode(lines[i])
		wikis, embeds := parseWikiLinks(line)
		out.Links = append(out.Links, wikis...)
		out.Embeds = append(out.Embeds, embeds...)
		out.Links = append(out.Links, parseMarkdownLinks(line)...)
	}
	return out
}

func stripInlineCode(line string) string {
	var out strings.Builder
	inCode := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '`' {
			inCode = !inCode
			continue
		}
		if !inCode {
			out.WriteByte(ch)
		}
	}
	return out.String()
}

// parseWikiLinks returns the targets of [[...]] links and ![[...]] embeds.
func parseWikiLinks(line string) (links, embeds []string) {
	remaining := line
	for {
		start := strings.Index(remaining, "[[")
		if start == -1 {
			break
		}
		end := strings.Index(remaining[start+2:], "]]")
		if end == -1 {
			break
		}
		target := remaining[start+2 : start+2+end]
		isEmbed := start > 0 && remaining[start-1] == '!'
		if target != "" {
			if isEmbed {
				embeds = append(embeds, target)
			} else {
				links = append(links, target)
			}
		}
		remaining = remaining[start+2+end+2:]
	}
	return links, embeds
}

// parseMarkdownLinks returns the URL parts of [text](url) links, embeds
// included. The enclosing angle brackets of <url> form are stripped.
func parseMarkdownLinks(line string) []string {
	var out []string
	remaining := line
	for {
		open := strings.Index(remaining, "[")
		if open == -1 {
			break
		}
		mid := strings.Index(remaining[open:], "](")
		if mid == -1 {
			break
		}
		mid = open + mid
		end := strings.Index(remaining[mid+2:], ")")
		if end == -1 {
			break
		}
		target := remaining[mid+2 : mid+2+end]
		target = strings.TrimPrefix(target, "<")
		target = strings.TrimSuffix(target, ">")
		if target != "" {
			out = append(out, target)
		}
		remaining = remaining[mid+2+end+1:]
	}
	return out
}

// frontmatterEnd returns the line index of the closing "---" of the
// frontmatter block, or -1 when the note has none.
func frontmatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return -1
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i
		}
	}
	return -1
}

// parseFrontmatterLinks extracts wiki-link-shaped string values from the
// YAML frontmatter, at any nesting depth. Malformed YAML yields no links
// rather than an error.
func parseFrontmatterLinks(lines []string) []string {
	yamlContent := strings.Join(lines[1:len(lines)-1], "\n")
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &doc); err != nil {
		logger := logging.GetLogger("vault.markdown")
		logger.Debug().Err(err).Msg("Skipping malformed frontmatter")
		return nil
	}
	var out []string
	collectFrontmatterLinks(doc, &out)
	return out
}

func collectFrontmatterLinks(value interface{}, out *[]string) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]") {
			inner := s[2 : len(s)-2]
			if inner != "" {
				*out = append(*out, inner)
			}
		}
	case []interface{}:
		for _, item := range v {
			collectFrontmatterLinks(item, out)
		}
	case map[string]interface{}:
		for _, item := range v {
			collectFrontmatterLinks(item, out)
		}
	}
}

// ResolveLink implements host-style best-match resolution: an exact path
// match first (with and without an appended .md), then a unique-enough
// basename match preferring files closer to the referencing note.
func (m *markdownMetadata) ResolveLink(key, fromNote string) (string, bool) {
	key = types.NormalizePath(key)
	if key == "" {
		return "", false
	}

	candidates := []string{key}
	if !strings.Contains(types.BaseName(key), ".") {
		candidates = append(candidates, key+".md")
	}
	for _, c := range candidates {
		if m.provider.FileExists(c) {
			return c, true
		}
		// A path-bearing key also resolves relative to the note folder.
		rel := types.JoinPath(types.ParentPath(fromNote), c)
		if rel != c && m.provider.FileExists(rel) {
			return rel, true
		}
	}

	files, err := m.provider.ListFiles()
	if err != nil {
		return "", false
	}
	return bestBasenameMatch(files, candidates, fromNote)
}

// bestBasenameMatch picks the file whose basename matches one of the
// candidate basenames, preferring the referencing note's folder, then the
// shortest path, then lexicographic order.
func bestBasenameMatch(files, candidates []string, fromNote string) (string, bool) {
	wanted := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		wanted[strings.ToLower(types.BaseName(c))] = true
	}
	noteFolder := types.ParentPath(fromNote)

	best := ""
	bestScore := -1
	for _, f := range files {
		if !wanted[strings.ToLower(types.BaseName(f))] {
			continue
		}
		score := 0
		if types.ParentPath(f) == noteFolder {
			score += 1 << 20
		}
		score -= len(f)
		if bestScore == -1 || score > bestScore || (score == bestScore && f < best) {
			best, bestScore = f, score
		}
	}
	return best, best != ""
}
