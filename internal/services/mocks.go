package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/vcs"
)

type MockContributionsClient struct {
	mock.Mock
}

func (m *MockContributionsClient) ValidateCredentials(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockContributionsClient) GetUserCreationYear(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockContributionsClient) FetchContributions(ctx context.Context, username string, since int) ([]models.Contribution, error) {
	args := m.Called(ctx, username, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contribution), args.Error(1)
}

// Factory returns a vcs.ClientFactory that always hands out m.
func (m *MockContributionsClient) Factory() vcs.ClientFactory {
	return func(token string) (vcs.ContributionsClient, error) {
		return m, nil
	}
}
