package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	var u *github.User
	if v := args.Get(0); v != nil {
		u = v.(*github.User)
	}
	var resp *github.Response
	if v := args.Get(1); v != nil {
		resp = v.(*github.Response)
	}
	return u, resp, args.Error(2)
}

// MockGraphQLClient records queries; tests fill the query struct with .Run.
type MockGraphQLClient struct {
	mock.Mock
}

func (m *MockGraphQLClient) Query(ctx context.Context, q interface{}, variables map[string]interface{}) error {
	args := m.Called(ctx, q, variables)
	return args.Error(0)
}

type MockRepositoriesService struct {
	mock.Mock
}

func (m *MockRepositoriesService) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	var r *github.RepositoryRelease
	if v := args.Get(0); v != nil {
		r = v.(*github.RepositoryRelease)
	}
	var resp *github.Response
	if v := args.Get(1); v != nil {
		resp = v.(*github.Response)
	}
	return r, resp, args.Error(2)
}
