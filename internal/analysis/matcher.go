package analysis

import "strings"

// groupPatterns returns the candidate substrings that reference a group in
// a policy statement: bare, single-quoted, and double-quoted.
func groupPatterns(name string) [3]string {
	lower := strings.ToLower(name)
	return [3]string{
		"group " + lower,
		"group '" + lower + "'",
		`group "` + lower + `"`,
	}
}

// Matches reports whether the statement references any of the group names.
// Matching is case-insensitive and stops at the first hit.
//
// This is an intentionally approximate containment check, not a policy
// grammar parser: a group name that happens to appear as a prefix of
// another token also matches, and alternate syntaxes (dynamic groups,
// any-user grants, nested group references) do not. Callers rely on these
// exact substring semantics.
func Matches(statement string, groupNames []string) bool {
	lower := strings.ToLower(statement)
	for _, name := range groupNames {
		for _, pattern := range groupPatterns(name) {
			if strings.Contains(lower, pattern) {
				return true
			}
		}
	}
	return false
}
