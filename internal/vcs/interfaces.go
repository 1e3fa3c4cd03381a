package vcs

import (
	"context"

	"github.com/ghreadme/ghreadme/internal/models"
)

// ContributionsClient defines the calls needed to list a user's contributions on a code host.
type ContributionsClient interface {
	// ValidateCredentials checks the token and returns the login it belongs to.
	ValidateCredentials(ctx context.Context) (string, error)
	// GetUserCreationYear returns the year the account of username was created.
	GetUserCreationYear(ctx context.Context, username string) (int, error)
	// FetchContributions returns one record per repository and contribution kind,
	// covering every year since the account was created.
	FetchContributions(ctx context.Context, username string, since int) ([]models.Contribution, error)
}

// ClientFactory builds a client authenticated with token.
type ClientFactory func(token string) (ContributionsClient, error)
