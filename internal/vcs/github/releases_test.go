package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
)

func TestReleaseSource_LatestTag(t *testing.T) {
	t.Run("should return the tag of the latest release", func(t *testing.T) {
		repos := new(MockRepositoriesService)
		repos.On("GetLatestRelease", mock.Anything, "ghreadme", "ghreadme").
			Return(&github.RepositoryRelease{TagName: github.Ptr("v1.2.0")}, response(http.StatusOK), nil).Once()

		tag, err := NewReleaseSourceWithService(repos).LatestTag(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "v1.2.0", tag)
		repos.AssertExpectations(t)
	})

	t.Run("should report no release on 404", func(t *testing.T) {
		repos := new(MockRepositoriesService)
		repos.On("GetLatestRelease", mock.Anything, "ghreadme", "ghreadme").
			Return(nil, response(http.StatusNotFound), errors.New("404 Not Found")).Once()

		tag, err := NewReleaseSourceWithService(repos).LatestTag(context.Background())

		require.NoError(t, err)
		assert.Empty(t, tag)
	})

	t.Run("should map rate limits", func(t *testing.T) {
		repos := new(MockRepositoriesService)
		repos.On("GetLatestRelease", mock.Anything, "ghreadme", "ghreadme").
			Return(nil, response(http.StatusForbidden), errors.New("403")).Once()

		_, err := NewReleaseSourceWithService(repos).LatestTag(context.Background())

		assert.ErrorIs(t, err, domainErrors.ErrGitHubRateLimit)
	})
}
