package regex

import (
	"regexp"
	"strings"
)

// MaxLoginLength is the longest login GitHub accepts.
const MaxLoginLength = 39

var (
	// GitHub identifiers
	GitHubLogin    = regexp.MustCompile(`^[A-Za-z0-9](?:-?[A-Za-z0-9]){0,38}$`)
	RepositoryName = regexp.MustCompile(`^[A-Za-z0-9](?:-?[A-Za-z0-9]){0,38}/[A-Za-z0-9._-]{1,100}$`)

	// Repository URLs as copied from the browser or the README
	HTTPSRepo = regexp.MustCompile(`^https://github\.com/([^/\s]+)/([^/\s]+?)(?:\.git)?/?$`)
)

// IsLogin reports whether s is a well-formed GitHub login. The pattern alone
// cannot bound the length once hyphens are involved.
func IsLogin(s string) bool {
	return len(s) <= MaxLoginLength && GitHubLogin.MatchString(s)
}

// IsRepositoryName reports whether s is a well-formed owner/name pair.
func IsRepositoryName(s string) bool {
	owner, _, _ := strings.Cut(s, "/")
	return len(owner) <= MaxLoginLength && RepositoryName.MatchString(s)
}
