package stats

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/services"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type mockOfflineGenerator struct {
	mock.Mock
}

func (m *mockOfflineGenerator) GenerateOffline(ctx context.Context, username string, opts services.GenerateOptions) (*services.Result, error) {
	args := m.Called(ctx, username, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Result), args.Error(1)
}

func sampleClassification() models.Classification {
	return models.Classification{
		Username: "octo",
		CommitOnly: []models.RepoSummary{
			{NameWithOwner: "octo/alpha", Commits: 10, Created: true},
			{NameWithOwner: "octo/beta", Commits: 2},
		},
		PullRequests: []models.RepoSummary{
			{NameWithOwner: "acme/lib", Commits: 4, PullRequests: 3, Reviews: 1},
		},
		Other: []models.RepoSummary{
			{NameWithOwner: "acme/docs", Issues: 2},
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Run("should add up every kind", func(t *testing.T) {
		// Act
		totals := Summarize(sampleClassification(), 5)

		// Assert
		assert.Equal(t, 16, totals.Commits)
		assert.Equal(t, 3, totals.PullRequests)
		assert.Equal(t, 2, totals.Issues)
		assert.Equal(t, 1, totals.Reviews)
		assert.Equal(t, 1, totals.Created)
		assert.InDelta(t, 16.0/3.0, totals.MeanCommits, 0.001)
		assert.Equal(t, 4.0, totals.MedianCommits)
	})

	t.Run("should rank repositories by commits and cut to top", func(t *testing.T) {
		// Act
		totals := Summarize(sampleClassification(), 2)

		// Assert
		require.Len(t, totals.Top, 2)
		assert.Equal(t, "octo/alpha", totals.Top[0].NameWithOwner)
		assert.Equal(t, "acme/lib", totals.Top[1].NameWithOwner)
	})

	t.Run("should return zero values without commits", func(t *testing.T) {
		// Act
		totals := Summarize(models.Classification{Username: "octo"}, 5)

		// Assert
		assert.Zero(t, totals.MeanCommits)
		assert.Zero(t, totals.MedianCommits)
		assert.Empty(t, totals.Top)
	})
}

func runStats(t *testing.T, service *mockOfflineGenerator, args ...string) (string, error) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	settings := config.NewSettings(filepath.Join(t.TempDir(), "settings.json"))
	settings.Username = "octo"

	var out bytes.Buffer
	app := &cli.Command{
		Writer:   &out,
		Commands: []*cli.Command{NewStatsCommand(service).CreateCommand(translations, settings)},
	}
	err = app.Run(context.Background(), append([]string{"ghreadme", "stats"}, args...))
	return out.String(), err
}

func TestStatsCommand(t *testing.T) {
	t.Run("should print totals and the commit ranking", func(t *testing.T) {
		// Arrange
		service := &mockOfflineGenerator{}
		service.On("GenerateOffline", mock.Anything, "octo", services.GenerateOptions{}).
			Return(&services.Result{Username: "octo", Classification: sampleClassification()}, nil).Once()

		// Act
		out, err := runStats(t, service, "--top", "1")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "Contribution stats for octo")
		assert.Contains(t, out, "██████████")
		assert.Contains(t, out, "Median commits per repository: 4.0")
		assert.Contains(t, out, "Top 1 repositories by commits:")
		assert.Contains(t, out, " 1. octo/alpha (10)")
		assert.NotContains(t, out, "octo/beta")
	})

	t.Run("should report an empty snapshot", func(t *testing.T) {
		// Arrange
		service := &mockOfflineGenerator{}
		service.On("GenerateOffline", mock.Anything, "octo", mock.Anything).
			Return(&services.Result{Username: "octo", Classification: models.Classification{Username: "octo"}}, nil).Once()

		// Act
		out, err := runStats(t, service)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "No contributions recorded.")
	})

	t.Run("should return the service error", func(t *testing.T) {
		// Arrange
		service := &mockOfflineGenerator{}
		service.On("GenerateOffline", mock.Anything, "octo", mock.Anything).Return(nil, domainErrors.ErrNoResult).Once()

		// Act
		_, err := runStats(t, service)

		// Assert
		assert.ErrorIs(t, err, domainErrors.ErrNoResult)
	})
}
