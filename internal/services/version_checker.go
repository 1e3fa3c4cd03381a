package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/ghreadme/ghreadme/internal/logger"
)

const (
	// ReleaseCheckInterval is how long a known latest release is trusted.
	ReleaseCheckInterval = 24 * time.Hour
	releaseCheckTimeout  = 5 * time.Second
	latestReleaseKey     = "latest_release"
)

type releaseSource interface {
	LatestTag(ctx context.Context) (string, error)
}

// UpdateInfo compares the running version with the latest release.
type UpdateInfo struct {
	Current   string
	Latest    string
	Available bool
}

type VersionChecker struct {
	currentVersion string
	source         releaseSource
	cache          Cache
}

// NewVersionChecker builds a checker. A nil cache queries GitHub every time.
func NewVersionChecker(currentVersion string, source releaseSource, cache Cache) *VersionChecker {
	return &VersionChecker{
		currentVersion: currentVersion,
		source:         source,
		cache:          cache,
	}
}

// Check returns the latest known release, asking GitHub when the cached
// answer is missing or older than ReleaseCheckInterval.
func (v *VersionChecker) Check(ctx context.Context) (UpdateInfo, error) {
	log := logger.FromContext(ctx)

	if latest, ok := v.cachedTag(); ok {
		log.Debug("latest release read from cache", "tag", latest)
		return v.compare(latest), nil
	}

	ctx, cancel := context.WithTimeout(ctx, releaseCheckTimeout)
	defer cancel()

	latest, err := v.source.LatestTag(ctx)
	if err != nil {
		log.Warn("failed to check latest release", "error", err)
		return UpdateInfo{Current: v.currentVersion}, err
	}

	if v.cache != nil {
		if err := v.cache.Set(v.cache.GenerateHash(latestReleaseKey), latest); err != nil {
			log.Warn("failed to cache latest release", "error", err)
		}
	}

	return v.compare(latest), nil
}

func (v *VersionChecker) cachedTag() (string, bool) {
	if v.cache == nil {
		return "", false
	}
	raw, found, err := v.cache.Get(v.cache.GenerateHash(latestReleaseKey))
	if err != nil || !found {
		return "", false
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", false
	}
	return tag, true
}

func (v *VersionChecker) compare(latest string) UpdateInfo {
	return UpdateInfo{
		Current:   v.currentVersion,
		Latest:    latest,
		Available: IsUpdateAvailable(v.currentVersion, latest),
	}
}

// IsUpdateAvailable reports whether latest is a newer release than current.
// Versions that are not valid semver only count as updates when they differ.
func IsUpdateAvailable(current, latest string) bool {
	if latest == "" {
		return false
	}
	current = withV(current)
	latest = withV(latest)

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return current != latest
	}
	return semver.Compare(latest, current) > 0
}

func withV(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
