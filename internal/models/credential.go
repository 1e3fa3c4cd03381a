package models

import "strings"

// Credential is the GitHub login and personal access token used for a session.
type Credential struct {
	Username string
	Token    string
}

// Complete reports whether both fields were filled in.
func (c Credential) Complete() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Token) != ""
}
