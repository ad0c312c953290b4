package planner

import "strings"

// LCA returns the lowest common ancestor folder of the given folders: the
// longest shared path-segment prefix. No shared prefix yields "" (the vault
// root); a single folder is its own ancestor.
func LCA(folders []string) string {
	if len(folders) == 0 {
		return ""
	}
	common := strings.Split(folders[0], "/")
	if folders[0] == "" {
		common = nil
	}
	for _, f := range folders[1:] {
		var segs []string
		if f != "" {
			segs = strings.Split(f, "/")
		}
		n := 0
		for n < len(common) && n < len(segs) && common[n] == segs[n] {
			n++
		}
		common = common[:n]
		if len(common) == 0 {
			return ""
		}
	}
	return strings.Join(common, "/")
}
