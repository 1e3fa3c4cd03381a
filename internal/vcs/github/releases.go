package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v80/github"
)

const (
	releaseOwner = "ghreadme"
	releaseRepo  = "ghreadme"
)

type RepositoriesService interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// ReleaseSource reads the published releases of ghreadme itself.
type ReleaseSource struct {
	repositories RepositoriesService
}

// NewReleaseSource uses an unauthenticated client when httpClient is nil.
func NewReleaseSource(httpClient *http.Client) *ReleaseSource {
	return &ReleaseSource{repositories: github.NewClient(httpClient).Repositories}
}

func NewReleaseSourceWithService(repositories RepositoriesService) *ReleaseSource {
	return &ReleaseSource{repositories: repositories}
}

// LatestTag returns the tag of the latest published release, or "" when
// nothing has been released yet.
func (s *ReleaseSource) LatestTag(ctx context.Context) (string, error) {
	release, resp, err := s.repositories.GetLatestRelease(ctx, releaseOwner, releaseRepo)
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if err != nil {
		return "", mapRESTError(err, resp, "get latest release")
	}
	return release.GetTagName(), nil
}
