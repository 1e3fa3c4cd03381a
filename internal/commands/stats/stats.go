package stats

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/montanaflynn/stats"
	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/commands/completion_helper"
	"github.com/ghreadme/ghreadme/internal/config"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/services"
)

const (
	defaultTop = 5
	barWidth   = 10
	separator  = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
)

type offlineGenerator interface {
	GenerateOffline(ctx context.Context, username string, opts services.GenerateOptions) (*services.Result, error)
}

// Totals aggregates the merged repositories of one classification.
type Totals struct {
	Commits      int
	PullRequests int
	Issues       int
	Reviews      int
	Created      int

	MeanCommits   float64
	MedianCommits float64

	// Top holds the repositories with the most commits, most first.
	Top []models.RepoSummary
}

type StatsCommand struct {
	service offlineGenerator
}

func NewStatsCommand(service offlineGenerator) *StatsCommand {
	return &StatsCommand{service: service}
}

func (c *StatsCommand) CreateCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: t.GetMessage("stats.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("generate.username_flag", 0, nil),
			},
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("stats.top_flag", 0, nil),
				Value:   defaultTop,
			},
			&cli.BoolFlag{
				Name:  "include-private",
				Usage: t.GetMessage("generate.include_private_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "include-forks",
				Usage: t.GetMessage("generate.include_forks_flag", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			username := strings.TrimSpace(cmd.String("username"))
			if username == "" {
				username = settings.Username
			}

			result, err := c.service.GenerateOffline(ctx, username, services.GenerateOptions{
				IncludePrivate: cmd.Bool("include-private"),
				IncludeForks:   cmd.Bool("include-forks"),
			})
			if err != nil {
				return err
			}

			c.print(cmd.Root().Writer, t, result.Classification, Summarize(result.Classification, int(cmd.Int("top"))))
			return nil
		},
	}
}

// Summarize computes totals over every classified repository. Mean and
// median only consider repositories with at least one commit.
func Summarize(c models.Classification, top int) Totals {
	var totals Totals
	repos := c.Repositories()

	var commits stats.Float64Data
	for _, r := range repos {
		totals.Commits += r.Commits
		totals.PullRequests += r.PullRequests
		totals.Issues += r.Issues
		totals.Reviews += r.Reviews
		if r.Created {
			totals.Created++
		}
		if r.Commits > 0 {
			commits = append(commits, float64(r.Commits))
		}
	}

	if len(commits) > 0 {
		totals.MeanCommits, _ = stats.Mean(commits)
		totals.MedianCommits, _ = stats.Median(commits)
	}

	ranked := make([]models.RepoSummary, 0, len(repos))
	for _, r := range repos {
		if r.Commits > 0 {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Commits != ranked[j].Commits {
			return ranked[i].Commits > ranked[j].Commits
		}
		return ranked[i].NameWithOwner < ranked[j].NameWithOwner
	})
	if top >= 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	totals.Top = ranked

	return totals
}

func (c *StatsCommand) print(w io.Writer, t *i18n.Translations, classification models.Classification, totals Totals) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.FgHiBlack)

	_, _ = cyan.Fprintf(w, "\n📊 %s\n", t.GetMessage("stats.title", 0, map[string]interface{}{
		"Username": classification.Username,
	}))
	_, _ = fmt.Fprintln(w, separator)

	if classification.Total() == 0 {
		_, _ = fmt.Fprintf(w, "%s\n\n", t.GetMessage("stats.no_activity", 0, nil))
		return
	}

	rows := []struct {
		label string
		value int
	}{
		{t.GetMessage("stats.commits", 0, nil), totals.Commits},
		{t.GetMessage("stats.pull_requests", 0, nil), totals.PullRequests},
		{t.GetMessage("stats.issues", 0, nil), totals.Issues},
		{t.GetMessage("stats.reviews", 0, nil), totals.Reviews},
		{t.GetMessage("stats.created", 0, nil), totals.Created},
	}
	maxValue := 0
	for _, row := range rows {
		maxValue = max(maxValue, row.value)
	}

	_, _ = dim.Fprintln(w, t.GetMessage("stats.kinds_label", 0, nil))
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%-22s %s  %s\n", row.label, yellow.Sprintf("%6d", row.value), cyan.Sprint(bar(row.value, maxValue)))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s: %.1f\n", t.GetMessage("stats.mean_commits", 0, nil), totals.MeanCommits)
	_, _ = fmt.Fprintf(w, "%s: %.1f\n", t.GetMessage("stats.median_commits", 0, nil), totals.MedianCommits)

	if len(totals.Top) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = dim.Fprintln(w, t.GetMessage("stats.top_title", 0, map[string]interface{}{"Count": len(totals.Top)}))
		for i, r := range totals.Top {
			_, _ = fmt.Fprintf(w, "%2d. %s %s\n", i+1, r.NameWithOwner, yellow.Sprintf("(%d)", r.Commits))
		}
	}
	_, _ = fmt.Fprintln(w, separator)
	_, _ = fmt.Fprintln(w)
}

func bar(value, maxValue int) string {
	filled := 0
	if maxValue > 0 {
		filled = value * barWidth / maxValue
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
