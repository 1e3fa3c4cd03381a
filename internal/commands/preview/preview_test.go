package preview

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/services"
)

type mockOfflineGenerator struct {
	mock.Mock
}

func (m *mockOfflineGenerator) GenerateOffline(ctx context.Context, username string, opts services.GenerateOptions) (*services.Result, error) {
	args := m.Called(ctx, username, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Result), args.Error(1)
}

func runPreview(t *testing.T, settings *config.Settings, service *mockOfflineGenerator, args ...string) (string, error) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := NewPreviewCommandFactory(service).CreateCommand(translations, settings)
	app := &cli.Command{Writer: &out, Commands: []*cli.Command{cmd}}
	err = app.Run(context.Background(), append([]string{"ghreadme", "preview"}, args...))
	return out.String(), err
}

func TestPreviewCommand(t *testing.T) {
	t.Run("should render the cached README in the terminal", func(t *testing.T) {
		// Arrange
		settings := config.NewSettings(filepath.Join(t.TempDir(), "settings.json"))
		settings.Username = "octo"
		service := &mockOfflineGenerator{}
		service.On("GenerateOffline", mock.Anything, "octo", services.GenerateOptions{}).Return(&services.Result{
			Username: "octo",
			Markdown: "# My GitHub contributions : octo\n\n## Commits\n\n- [octo/alpha](https://github.com/octo/alpha)\n",
		}, nil).Once()

		// Act
		out, err := runPreview(t, settings, service, "--theme", "dark", "--width", "60")

		// Assert
		require.NoError(t, err)
		plain := ansi.Strip(out)
		assert.Contains(t, plain, "My GitHub contributions : octo")
		assert.Contains(t, plain, "octo/alpha (https://github.com/octo/alpha)")
		service.AssertExpectations(t)
	})

	t.Run("should use the username flag", func(t *testing.T) {
		// Arrange
		settings := config.NewSettings(filepath.Join(t.TempDir(), "settings.json"))
		settings.Username = "octo"
		service := &mockOfflineGenerator{}
		service.On("GenerateOffline", mock.Anything, "hubot", services.GenerateOptions{IncludeForks: true}).
			Return(&services.Result{Username: "hubot", Markdown: "# x : hubot\n"}, nil).Once()

		// Act
		_, err := runPreview(t, settings, service, "-u", "hubot", "--include-forks")

		// Assert
		require.NoError(t, err)
		service.AssertExpectations(t)
	})

	t.Run("should reject an unknown theme", func(t *testing.T) {
		// Arrange
		settings := config.NewSettings(filepath.Join(t.TempDir(), "settings.json"))
		service := &mockOfflineGenerator{}

		// Act
		_, err := runPreview(t, settings, service, "--theme", "sepia")

		// Assert
		assert.ErrorIs(t, err, domainErrors.ErrInvalidTheme)
		service.AssertNotCalled(t, "GenerateOffline", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should surface a missing snapshot", func(t *testing.T) {
		// Arrange
		settings := config.NewSettings(filepath.Join(t.TempDir(), "settings.json"))
		settings.Username = "octo"
		service := &mockOfflineGenerator{}
		service.On("GenerateOffline", mock.Anything, "octo", mock.Anything).Return(nil, domainErrors.ErrNoResult).Once()

		// Act
		out, err := runPreview(t, settings, service)

		// Assert
		assert.ErrorIs(t, err, domainErrors.ErrNoResult)
		assert.Empty(t, out)
	})
}
