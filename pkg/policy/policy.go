// Package policy evaluates an ordered table of route rules against
// incoming requests. The table is data: each rule names URL patterns and
// the requirement to access them, and the first matching rule wins.
package policy

import "strings"

// Rule maps URL patterns to an access requirement. AnyRole grants access
// when the session holds at least one of the listed roles; Authenticated
// alone admits any logged-in session. A rule with neither set permits all.
type Rule struct {
	Patterns      []string
	AnyRole       []string
	Authenticated bool
}

// DefaultRules is the route table for the admin application, evaluated
// top to bottom.
func DefaultRules() []Rule {
	return []Rule{
		{
			Patterns: []string{"/admin.html", "/js/admin.js"},
			AnyRole:  []string{"ADMIN"},
		},
		{
			Patterns: []string{"/user.html", "/js/user.js"},
			AnyRole:  []string{"ADMIN", "USER"},
		},
		{
			Patterns: []string{"/api/users/**"},
			AnyRole:  []string{"ADMIN"},
		},
		{
			Patterns:      []string{"/api/auth/user"},
			Authenticated: true,
		},
	}
}

// Match returns the first rule whose patterns cover the path. The second
// return is false when no rule matches, meaning the path is unrestricted.
func Match(rules []Rule, path string) (Rule, bool) {
	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if matchPattern(pattern, path) {
				return rule, true
			}
		}
	}
	return Rule{}, false
}

// matchPattern supports exact paths and a trailing "/**" wildcard that
// covers the prefix itself and everything below it.
func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
