package classifier

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghreadme/ghreadme/internal/models"
)

func record(name string, kind models.ContributionKind, count int) models.Contribution {
	return models.Contribution{
		Repository: models.Repository{
			NameWithOwner: name,
			URL:           "https://github.com/" + name,
		},
		Kind:  kind,
		Count: count,
	}
}

func names(summaries []models.RepoSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.NameWithOwner)
	}
	return out
}

func TestClassify(t *testing.T) {
	t.Run("should place repositories by contribution kind", func(t *testing.T) {
		records := []models.Contribution{
			record("octo/only-commits", models.KindCommit, 12),
			record("octo/with-pr", models.KindCommit, 3),
			record("octo/with-pr", models.KindPullRequest, 1),
			record("other/pr-only", models.KindPullRequest, 2),
			record("other/issues", models.KindIssue, 4),
			record("other/reviews", models.KindPullRequestReview, 1),
			record("octo/created", models.KindRepository, 1),
		}

		got := Classify("octo", records, Options{})

		assert.Equal(t, "octo", got.Username)
		assert.Equal(t, []string{"octo/only-commits"}, names(got.CommitOnly))
		assert.Equal(t, []string{"octo/with-pr", "other/pr-only"}, names(got.PullRequests))
		assert.Equal(t, []string{"octo/created", "other/issues", "other/reviews"}, names(got.Other))
		assert.Equal(t, 6, got.Total())
	})

	t.Run("should merge records of the same repository", func(t *testing.T) {
		records := []models.Contribution{
			record("octo/repo", models.KindCommit, 2),
			record("octo/repo", models.KindCommit, 5),
			record("octo/repo", models.KindIssue, 1),
			record("octo/repo", models.KindRepository, 1),
		}

		got := Classify("octo", records, Options{})

		require.Len(t, got.CommitOnly, 1)
		assert.Equal(t, models.RepoSummary{
			NameWithOwner: "octo/repo",
			Owner:         "octo",
			URL:           "https://github.com/octo/repo",
			Commits:       7,
			Issues:        1,
			Created:       true,
		}, got.CommitOnly[0])
	})

	t.Run("should drop private and fork repositories unless included", func(t *testing.T) {
		private := record("octo/secret", models.KindCommit, 1)
		private.Repository.IsPrivate = true
		fork := record("octo/fork", models.KindPullRequest, 1)
		fork.Repository.IsFork = true
		records := []models.Contribution{private, fork, record("octo/public", models.KindCommit, 1)}

		assert.Equal(t, 1, Classify("octo", records, Options{}).Total())
		assert.Equal(t, 2, Classify("octo", records, Options{IncludePrivate: true}).Total())
		assert.Equal(t, 2, Classify("octo", records, Options{IncludeForks: true}).Total())
		assert.Equal(t, 3, Classify("octo", records, Options{IncludePrivate: true, IncludeForks: true}).Total())
	})

	t.Run("should ignore records without repository name", func(t *testing.T) {
		got := Classify("octo", []models.Contribution{record("", models.KindCommit, 1)}, Options{})

		assert.Zero(t, got.Total())
	})

	t.Run("should be independent of record order", func(t *testing.T) {
		records := []models.Contribution{
			record("b/two", models.KindCommit, 1),
			record("a/one", models.KindPullRequest, 1),
			record("c/three", models.KindIssue, 1),
			record("a/one", models.KindCommit, 4),
			record("d/four", models.KindCommit, 2),
			record("b/two", models.KindRepository, 1),
		}
		want := Classify("octo", records, Options{})

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 20; i++ {
			shuffled := append([]models.Contribution(nil), records...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

			assert.Equal(t, want, Classify("octo", shuffled, Options{}))
		}
	})

	t.Run("should return only empty buckets without records", func(t *testing.T) {
		got := Classify("octo", nil, Options{})

		assert.Empty(t, got.CommitOnly)
		assert.Empty(t, got.PullRequests)
		assert.Empty(t, got.Other)
	})
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name    string
		summary models.RepoSummary
		want    Bucket
	}{
		{"pull request wins over commits", models.RepoSummary{Commits: 9, PullRequests: 1}, BucketPullRequests},
		{"commits without pull request", models.RepoSummary{Commits: 1}, BucketCommitOnly},
		{"issues only", models.RepoSummary{Issues: 2}, BucketOther},
		{"reviews only", models.RepoSummary{Reviews: 2}, BucketOther},
		{"created only", models.RepoSummary{Created: true}, BucketOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketOf(tt.summary))
		})
	}
}

func TestMerge_OwnerFallback(t *testing.T) {
	summaries := Merge([]models.Contribution{record("someone/thing", models.KindCommit, 1)}, Options{})

	require.Len(t, summaries, 1)
	assert.Equal(t, "someone", summaries[0].Owner)
}
