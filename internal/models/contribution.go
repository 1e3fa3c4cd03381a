package models

import "time"

// ContributionKind names the GitHub contribution collection a record came from.
type ContributionKind string

const (
	KindCommit            ContributionKind = "commit"
	KindPullRequest       ContributionKind = "pull_request"
	KindIssue             ContributionKind = "issue"
	KindPullRequestReview ContributionKind = "pull_request_review"
	KindRepository        ContributionKind = "repository"
)

type (
	// Repository is the subset of a GitHub repository needed to list it in a README.
	Repository struct {
		NameWithOwner string `json:"name_with_owner"`
		Owner         string `json:"owner"`
		URL           string `json:"url"`
		IsPrivate     bool   `json:"is_private"`
		IsFork        bool   `json:"is_fork"`
	}

	// Contribution is one API response item: a repository and how the user contributed to it.
	Contribution struct {
		Repository Repository       `json:"repository"`
		Kind       ContributionKind `json:"kind"`
		Count      int              `json:"count"`
	}

	// RepoSummary aggregates every contribution made to a single repository.
	RepoSummary struct {
		NameWithOwner string `json:"name_with_owner"`
		Owner         string `json:"owner"`
		URL           string `json:"url"`
		Commits       int    `json:"commits"`
		PullRequests  int    `json:"pull_requests"`
		Issues        int    `json:"issues"`
		Reviews       int    `json:"reviews"`
		Created       bool   `json:"created"`
	}

	// Classification is the fixed partition of a user's contributed repositories.
	Classification struct {
		Username     string        `json:"username"`
		CommitOnly   []RepoSummary `json:"commit_only"`
		PullRequests []RepoSummary `json:"pull_requests"`
		Other        []RepoSummary `json:"other"`
		GeneratedAt  time.Time     `json:"generated_at"`
	}
)

// Total returns the number of repositories across all buckets.
func (c Classification) Total() int {
	return len(c.CommitOnly) + len(c.PullRequests) + len(c.Other)
}

// Repositories returns every classified repository, bucket by bucket.
func (c Classification) Repositories() []RepoSummary {
	all := make([]RepoSummary, 0, c.Total())
	all = append(all, c.CommitOnly...)
	all = append(all, c.PullRequests...)
	all = append(all, c.Other...)
	return all
}
