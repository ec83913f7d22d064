package shared

import "strings"

// Permission suffixes guarding list pages and their row actions.
const (
	PermSuffixView = ".view"
	PermSuffixEdit = ".edit"
)

// PermView returns the permission required to browse a resource.
func PermView(resource string) string {
	return strings.ToLower(resource) + PermSuffixView
}

// PermEdit returns the permission required to run row actions on a resource.
func PermEdit(resource string) string {
	return strings.ToLower(resource) + PermSuffixEdit
}

// ResourceScopes lists the view and edit permissions of each resource.
func ResourceScopes(resources ...string) []string {
	out := make([]string, 0, len(resources)*2)
	for _, r := range resources {
		out = append(out, PermView(r), PermEdit(r))
	}
	return out
}
