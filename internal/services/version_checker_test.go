package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ghreadme/ghreadme/internal/cache"
)

type mockReleaseSource struct {
	mock.Mock
}

func (m *mockReleaseSource) LatestTag(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func TestIsUpdateAvailable(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		expected bool
	}{
		{"patch update available", "v1.0.0", "v1.0.1", true},
		{"minor update available", "v1.0.0", "v1.1.0", true},
		{"major update available", "v1.0.0", "v2.0.0", true},
		{"same version", "v1.0.0", "v1.0.0", false},
		{"current is newer", "v1.5.0", "v1.4.9", false},
		{"without v prefix in current", "1.0.0", "v1.0.1", true},
		{"without v prefix in both", "1.0.0", "1.0.1", true},
		{"double digit minor", "1.9.0", "1.10.0", true},
		{"prerelease to release", "v1.0.0-beta.1", "v1.0.0", true},
		{"nothing released", "0.1.0", "", false},
		{"invalid versions that differ", "dev", "v1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUpdateAvailable(tt.current, tt.latest))
		})
	}
}

func TestVersionChecker_Check(t *testing.T) {
	newCache := func(t *testing.T) *cache.Cache {
		c, err := cache.NewCache(filepath.Join(t.TempDir(), "releases"), time.Hour)
		require.NoError(t, err)
		return c
	}

	t.Run("should ask GitHub once and reuse the cached tag", func(t *testing.T) {
		source := new(mockReleaseSource)
		source.On("LatestTag", mock.Anything).Return("v0.2.0", nil).Once()
		checker := NewVersionChecker("0.1.0", source, newCache(t))

		first, err := checker.Check(context.Background())
		require.NoError(t, err)
		second, err := checker.Check(context.Background())
		require.NoError(t, err)

		assert.Equal(t, UpdateInfo{Current: "0.1.0", Latest: "v0.2.0", Available: true}, first)
		assert.Equal(t, first, second)
		source.AssertNumberOfCalls(t, "LatestTag", 1)
	})

	t.Run("should report an up to date version", func(t *testing.T) {
		source := new(mockReleaseSource)
		source.On("LatestTag", mock.Anything).Return("v0.1.0", nil).Once()

		info, err := NewVersionChecker("0.1.0", source, nil).Check(context.Background())

		require.NoError(t, err)
		assert.False(t, info.Available)
	})

	t.Run("should return lookup errors", func(t *testing.T) {
		source := new(mockReleaseSource)
		source.On("LatestTag", mock.Anything).Return("", errors.New("offline")).Once()

		info, err := NewVersionChecker("0.1.0", source, newCache(t)).Check(context.Background())

		assert.EqualError(t, err, "offline")
		assert.Equal(t, "0.1.0", info.Current)
		assert.False(t, info.Available)
	})
}
