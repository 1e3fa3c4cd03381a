package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/models"
)

// PrintClassificationSummary prints the number of repositories per bucket.
func PrintClassificationSummary(w io.Writer, c models.Classification, t *i18n.Translations) {
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Fprint(w, "📊 ")
	_, _ = fmt.Fprintln(w, t.GetMessage("status_messages.repositories_found", 0, map[string]interface{}{
		"Count": c.Total(),
	}))

	PrintKeyValue(w, t.GetMessage("categories.commit_only", 0, nil), fmt.Sprint(len(c.CommitOnly)))
	PrintKeyValue(w, t.GetMessage("categories.pull_requests", 0, nil), fmt.Sprint(len(c.PullRequests)))
	PrintKeyValue(w, t.GetMessage("categories.other_contributions", 0, nil), fmt.Sprint(len(c.Other)))
}
