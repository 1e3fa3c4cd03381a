package github

import (
	"github.com/shurcooL/githubv4"

	"github.com/ghreadme/ghreadme/internal/models"
)

type repositoryNode struct {
	NameWithOwner string
	URL           string `graphql:"url"`
	IsPrivate     bool
	IsFork        bool
	Owner         struct {
		Login string
	}
}

func (r repositoryNode) toModel() models.Repository {
	return models.Repository{
		NameWithOwner: r.NameWithOwner,
		Owner:         r.Owner.Login,
		URL:           r.URL,
		IsPrivate:     r.IsPrivate,
		IsFork:        r.IsFork,
	}
}

// contributionGroup is one entry of a *ContributionsByRepository list.
type contributionGroup struct {
	Contributions struct {
		TotalCount int
	} `graphql:"contributions(first: 1)"`
	Repository repositoryNode
}

type createdRepositoryConnection struct {
	PageInfo struct {
		HasNextPage bool
		EndCursor   githubv4.String
	}
	Nodes []struct {
		Repository repositoryNode
	}
}

type baseCollection struct {
	CommitContributionsByRepository      []contributionGroup         `graphql:"commitContributionsByRepository(maxRepositories: 100)"`
	PullRequestContributionsByRepository []contributionGroup         `graphql:"pullRequestContributionsByRepository(maxRepositories: 100)"`
	RepositoryContributions              createdRepositoryConnection `graphql:"repositoryContributions(first: 100, after: $cursor)"`
}

func (c baseCollection) records() []models.Contribution {
	records := groupRecords(c.CommitContributionsByRepository, models.KindCommit)
	return append(records, groupRecords(c.PullRequestContributionsByRepository, models.KindPullRequest)...)
}

type recentCollection struct {
	baseCollection
	IssueContributionsByRepository             []contributionGroup `graphql:"issueContributionsByRepository(maxRepositories: 100)"`
	PullRequestReviewContributionsByRepository []contributionGroup `graphql:"pullRequestReviewContributionsByRepository(maxRepositories: 100)"`
}

// recentContributionsQuery covers a window that also lists issue and review contributions.
type recentContributionsQuery struct {
	User struct {
		ContributionsCollection recentCollection `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// yearContributionsQuery covers one past calendar year.
type yearContributionsQuery struct {
	User struct {
		ContributionsCollection baseCollection `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

func groupRecords(groups []contributionGroup, kind models.ContributionKind) []models.Contribution {
	records := make([]models.Contribution, 0, len(groups))
	for _, g := range groups {
		records = append(records, models.Contribution{
			Repository: g.Repository.toModel(),
			Kind:       kind,
			Count:      g.Contributions.TotalCount,
		})
	}
	return records
}
