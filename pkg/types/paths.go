package types

import "strings"

// Vault paths always use forward slashes, have no leading slash, and use ""
// for the vault root. These helpers keep that form without touching the OS
// path package, whose separator and Clean semantics differ.

// NormalizePath converts backslashes, trims surrounding whitespace and
// strips any leading or trailing slash.
func NormalizePath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(p, "/")
}

// JoinPath joins folder and name, treating "" as the vault root.
func JoinPath(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ParentPath returns the folder containing p, "" for top-level paths.
func ParentPath(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// BaseName returns the last path segment of p.
func BaseName(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}

// IsMarkdown reports whether the path has a markdown extension.
func IsMarkdown(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// IsUnder reports whether p equals root or lies beneath it. An empty root
// contains everything.
func IsUnder(p, root string) bool {
	if root == "" {
		return true
	}
	return p == root || strings.HasPrefix(p, root+"/")
}
