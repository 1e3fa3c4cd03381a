// Package readme renders a classification as README Markdown and previews it.
package readme

import (
	"strings"

	"github.com/ghreadme/ghreadme/internal/models"
)

// Translator resolves localized labels.
type Translator interface {
	GetMessage(messageID string, count int, templateData map[string]interface{}) string
}

const (
	msgProfileTitle = "categories.profile_git"
	msgCommitOnly   = "categories.commit_only"
	msgPullRequests = "categories.pull_requests"
	msgOther        = "categories.other_contributions"
)

// RenderMarkdown builds the README text: a title, then one section per
// non-empty bucket in the order commit-only, pull requests, other.
// comments maps NameWithOwner to the user's note for that repository.
func RenderMarkdown(c models.Classification, comments map[string]string, t Translator) string {
	lines := []string{"# " + t.GetMessage(msgProfileTitle, 0, nil) + " : " + c.Username + "\n"}

	lines = append(lines, section(t.GetMessage(msgCommitOnly, 0, nil), c.CommitOnly, comments)...)

	if prs := section(t.GetMessage(msgPullRequests, 0, nil), c.PullRequests, comments); len(prs) > 0 {
		lines = append(lines, "")
		lines = append(lines, prs...)
	}

	if other := section(t.GetMessage(msgOther, 0, nil), c.Other, comments); len(other) > 0 {
		lines = append(lines, "")
		lines = append(lines, other...)
	}

	return strings.Join(lines, "\n") + "\n"
}

func section(title string, repos []models.RepoSummary, comments map[string]string) []string {
	if len(repos) == 0 {
		return nil
	}

	lines := make([]string, 0, len(repos)+1)
	lines = append(lines, "## "+title+"\n")
	for _, r := range repos {
		line := "- [" + r.NameWithOwner + "](" + r.URL + ")"
		// A comment stays on its list line.
		if comment := strings.Join(strings.Fields(comments[r.NameWithOwner]), " "); comment != "" {
			line += " — " + comment
		}
		lines = append(lines, line)
	}
	return lines
}
