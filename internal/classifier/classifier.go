// Package classifier partitions contribution records into the README buckets.
package classifier

import (
	"sort"
	"strings"

	"github.com/ghreadme/ghreadme/internal/models"
)

// Bucket identifies one of the fixed README sections.
type Bucket int

const (
	BucketCommitOnly Bucket = iota
	BucketPullRequests
	BucketOther
)

// Options controls which repositories are kept.
type Options struct {
	IncludePrivate bool
	IncludeForks   bool
}

// Classify merges records per repository and places each repository in
// exactly one bucket. The result depends only on the set of records, not
// on their order.
func Classify(username string, records []models.Contribution, opts Options) models.Classification {
	summaries := Merge(records, opts)

	result := models.Classification{Username: username}
	for _, s := range summaries {
		switch BucketOf(s) {
		case BucketPullRequests:
			result.PullRequests = append(result.PullRequests, s)
		case BucketCommitOnly:
			result.CommitOnly = append(result.CommitOnly, s)
		default:
			result.Other = append(result.Other, s)
		}
	}

	return result
}

// BucketOf applies the placement rule to one merged repository.
func BucketOf(s models.RepoSummary) Bucket {
	switch {
	case s.PullRequests > 0:
		return BucketPullRequests
	case s.Commits > 0:
		return BucketCommitOnly
	default:
		return BucketOther
	}
}

// Merge folds records into one summary per repository, sorted by name then URL.
func Merge(records []models.Contribution, opts Options) []models.RepoSummary {
	byName := make(map[string]*models.RepoSummary)

	for _, r := range records {
		repo := r.Repository
		if repo.NameWithOwner == "" {
			continue
		}
		if repo.IsPrivate && !opts.IncludePrivate {
			continue
		}
		if repo.IsFork && !opts.IncludeForks {
			continue
		}

		s, ok := byName[repo.NameWithOwner]
		if !ok {
			s = &models.RepoSummary{
				NameWithOwner: repo.NameWithOwner,
				Owner:         ownerOf(repo),
				URL:           repo.URL,
			}
			byName[repo.NameWithOwner] = s
		} else if s.URL == "" || (repo.URL != "" && repo.URL < s.URL) {
			s.URL = repo.URL
		}

		switch r.Kind {
		case models.KindCommit:
			s.Commits += r.Count
		case models.KindPullRequest:
			s.PullRequests += r.Count
		case models.KindIssue:
			s.Issues += r.Count
		case models.KindPullRequestReview:
			s.Reviews += r.Count
		case models.KindRepository:
			s.Created = true
		}
	}

	summaries := make([]models.RepoSummary, 0, len(byName))
	for _, s := range byName {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].NameWithOwner != summaries[j].NameWithOwner {
			return summaries[i].NameWithOwner < summaries[j].NameWithOwner
		}
		return summaries[i].URL < summaries[j].URL
	})

	return summaries
}

func ownerOf(repo models.Repository) string {
	if repo.Owner != "" {
		return repo.Owner
	}
	owner, _, _ := strings.Cut(repo.NameWithOwner, "/")
	return owner
}
