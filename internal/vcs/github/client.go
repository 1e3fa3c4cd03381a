package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/logger"
	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/vcs"
)

var _ vcs.ContributionsClient = (*GitHubClient)(nil)

const (
	// maxRepositories is the most repositories GitHub returns per *ContributionsByRepository list.
	maxRepositories = 100
	// secondaryLimitSleep caps how long a request waits on a secondary rate limit
	// before the limit is reported to the user instead.
	secondaryLimitSleep = 10 * time.Second
)

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

// GraphQLClient is the part of githubv4.Client the contribution queries use.
type GraphQLClient interface {
	Query(ctx context.Context, q interface{}, variables map[string]interface{}) error
}

type GitHubClient struct {
	usersService UsersService
	graphql      GraphQLClient
	now          func() time.Time
}

// NewGitHubClient builds a client whose REST and GraphQL calls share one
// authenticated, rate-limit aware HTTP client.
func NewGitHubClient(token string) (*GitHubClient, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(secondaryLimitSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		},
	}

	return &GitHubClient{
		usersService: github.NewClient(httpClient).Users,
		graphql:      githubv4.NewClient(httpClient),
		now:          time.Now,
	}, nil
}

// NewClientFactory adapts NewGitHubClient to vcs.ClientFactory.
func NewClientFactory() vcs.ClientFactory {
	return func(token string) (vcs.ContributionsClient, error) {
		return NewGitHubClient(token)
	}
}

func NewGitHubClientWithServices(usersService UsersService, graphql GraphQLClient, now func() time.Time) *GitHubClient {
	if now == nil {
		now = time.Now
	}
	return &GitHubClient{
		usersService: usersService,
		graphql:      graphql,
		now:          now,
	}
}

func (ghc *GitHubClient) ValidateCredentials(ctx context.Context) (string, error) {
	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		return "", mapRESTError(err, resp, "validate credentials")
	}

	if user.GetLogin() == "" {
		return "", domainErrors.ErrGitHubTokenInvalid.
			WithContext("operation", "validate credentials")
	}

	return user.GetLogin(), nil
}

func (ghc *GitHubClient) GetUserCreationYear(ctx context.Context, username string) (int, error) {
	log := logger.FromContext(ctx)

	user, resp, err := ghc.usersService.Get(ctx, username)
	if err != nil {
		return 0, mapRESTError(err, resp, "get user")
	}

	createdAt := user.GetCreatedAt()
	if createdAt.IsZero() {
		log.Warn("github user has no creation date, using current year", "username", username)
		return ghc.now().Year(), nil
	}

	return createdAt.UTC().Year(), nil
}

// FetchContributions queries the rolling last-year window, which includes issue
// and review contributions, then one window per calendar year from since up to
// the previous year. Past-year windows stop just before the rolling window so
// no contribution is counted twice.
func (ghc *GitHubClient) FetchContributions(ctx context.Context, username string, since int) ([]models.Contribution, error) {
	log := logger.FromContext(ctx)
	now := ghc.now().UTC()

	recentFrom := now.AddDate(-1, 0, 0)
	windows := []window{{from: recentFrom, to: now, recent: true}}
	for year := since; year < now.Year(); year++ {
		w := yearWindow(year)
		if !w.from.Before(recentFrom) {
			continue
		}
		if w.to.After(recentFrom) {
			w.to = recentFrom.Add(-time.Second)
		}
		windows = append(windows, w)
	}

	var records []models.Contribution
	for _, w := range windows {
		log.Debug("fetching contributions window",
			"username", username,
			"from", w.from.Format(time.RFC3339),
			"to", w.to.Format(time.RFC3339))

		windowRecords, err := ghc.fetchWindow(ctx, username, w)
		if err != nil {
			return nil, err
		}
		records = append(records, windowRecords...)
	}

	log.Info("fetched github contributions",
		"username", username,
		"windows", len(windows),
		"count", len(records))

	return records, nil
}

type window struct {
	from   time.Time
	to     time.Time
	recent bool
}

func yearWindow(year int) window {
	return window{
		from: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		to:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
	}
}

func (ghc *GitHubClient) fetchWindow(ctx context.Context, username string, w window) ([]models.Contribution, error) {
	variables := map[string]interface{}{
		"login":  githubv4.String(username),
		"from":   githubv4.DateTime{Time: w.from},
		"to":     githubv4.DateTime{Time: w.to},
		"cursor": (*githubv4.String)(nil),
	}

	var records []models.Contribution
	for page := 1; ; page++ {
		var created createdRepositoryConnection

		if w.recent {
			var q recentContributionsQuery
			if err := ghc.graphql.Query(ctx, &q, variables); err != nil {
				return nil, mapGraphQLError(err, username)
			}
			cc := q.User.ContributionsCollection
			if page == 1 {
				records = append(records, cc.baseCollection.records()...)
				records = append(records, groupRecords(cc.IssueContributionsByRepository, models.KindIssue)...)
				records = append(records, groupRecords(cc.PullRequestReviewContributionsByRepository, models.KindPullRequestReview)...)
			}
			created = cc.RepositoryContributions
		} else {
			var q yearContributionsQuery
			if err := ghc.graphql.Query(ctx, &q, variables); err != nil {
				return nil, mapGraphQLError(err, username)
			}
			cc := q.User.ContributionsCollection
			if page == 1 {
				records = append(records, cc.records()...)
			}
			created = cc.RepositoryContributions
		}

		for _, node := range created.Nodes {
			records = append(records, models.Contribution{
				Repository: node.Repository.toModel(),
				Kind:       models.KindRepository,
				Count:      1,
			})
		}

		if !created.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(created.PageInfo.EndCursor)
		logger.FromContext(ctx).Debug("fetching next page of created repositories", "username", username, "page", page+1)
	}

	return records, nil
}

func mapRESTError(err error, resp *github.Response, operation string) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return domainErrors.ErrGitHubRateLimit.WithError(err).
			WithContext("operation", operation)
	}

	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err).
				WithContext("operation", operation)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After")).
				WithContext("operation", operation)
		case http.StatusNotFound:
			return domainErrors.ErrUserNotFound.WithError(err).
				WithContext("operation", operation)
		}
	}

	return domainErrors.ErrGitHubData.WithError(err).WithContext("operation", operation)
}

// mapGraphQLError classifies githubv4 errors, which only carry the status or
// the GraphQL error text in their message.
func mapGraphQLError(err error, username string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Could not resolve to a User"):
		return domainErrors.ErrUserNotFound.WithError(err).WithContext("username", username)
	case strings.Contains(msg, "401"), strings.Contains(msg, "Bad credentials"):
		return domainErrors.ErrGitHubTokenInvalid.WithError(err).WithContext("operation", "fetch contributions")
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "403"), strings.Contains(msg, "429"):
		return domainErrors.ErrGitHubRateLimit.WithError(err).WithContext("operation", "fetch contributions")
	default:
		return domainErrors.ErrGitHubData.WithError(err).WithContext("username", username)
	}
}
