package update

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/services"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Check(ctx context.Context) (services.UpdateInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.UpdateInfo), args.Error(1)
}

func runUpdate(t *testing.T, checker *mockChecker) (string, error) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	settings := config.NewSettings(filepath.Join(t.TempDir(), "settings.json"))

	var out bytes.Buffer
	cmd := NewUpdateCommandFactory(checker).CreateCommand(translations, settings)
	app := &cli.Command{Writer: &out, Commands: []*cli.Command{cmd}}
	err = app.Run(context.Background(), []string{"ghreadme", "update"})
	return out.String(), err
}

func TestUpdateCommand(t *testing.T) {
	t.Run("should announce a newer release", func(t *testing.T) {
		// Arrange
		checker := new(mockChecker)
		checker.On("Check", mock.Anything).
			Return(services.UpdateInfo{Current: "0.1.0", Latest: "v0.2.0", Available: true}, nil).Once()

		// Act
		out, err := runUpdate(t, checker)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "A new version is available: 0.1.0 → v0.2.0")
		assert.Contains(t, out, installCommand)
	})

	t.Run("should say when the version is current", func(t *testing.T) {
		// Arrange
		checker := new(mockChecker)
		checker.On("Check", mock.Anything).
			Return(services.UpdateInfo{Current: "0.1.0", Latest: "v0.1.0"}, nil).Once()

		// Act
		out, err := runUpdate(t, checker)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "ghreadme 0.1.0 is up to date.")
		assert.NotContains(t, out, installCommand)
	})

	t.Run("should return lookup errors", func(t *testing.T) {
		// Arrange
		checker := new(mockChecker)
		checker.On("Check", mock.Anything).
			Return(services.UpdateInfo{Current: "0.1.0"}, domainErrors.ErrGitHubRateLimit).Once()

		// Act
		_, err := runUpdate(t, checker)

		// Assert
		assert.ErrorIs(t, err, domainErrors.ErrGitHubRateLimit)
	})
}
