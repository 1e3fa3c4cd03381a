package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func setupConfigTest(t *testing.T) (*config.Settings, *i18n.Translations) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return config.NewSettings(filepath.Join(t.TempDir(), "settings.json")), translations
}

func runConfig(settings *config.Settings, translations *i18n.Translations, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewConfigCommandFactory().CreateCommand(translations, settings)
	app := &cli.Command{Writer: &out, Commands: []*cli.Command{cmd}}
	err := app.Run(context.Background(), append([]string{"ghreadme", "config"}, args...))
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	t.Run("should display the current settings", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)
		settings.Username = "octo"
		settings.Token = "ghp_x"
		settings.Theme = config.ThemeDark
		settings.SetComment("octo", "octo/alpha", "first")

		// Act
		out, err := runConfig(settings, translations, "show")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, settings.PathFile)
		assert.Contains(t, out, "octo")
		assert.Contains(t, out, "Token stored: yes")
		assert.Contains(t, out, "Theme: dark")
		assert.Contains(t, out, "Language: English")
		assert.Contains(t, out, "Comments: 1")
		assert.NotContains(t, out, "ghp_x")
	})
}

func TestThemeCommands(t *testing.T) {
	t.Run("should set and persist the theme", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)

		// Act
		out, err := runConfig(settings, translations, "set-theme", "dark")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "Theme changed to dark.")
		loaded, err := config.LoadSettings(settings.PathFile)
		require.NoError(t, err)
		assert.Equal(t, config.ThemeDark, loaded.Theme)
	})

	t.Run("should reject an unknown theme", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)

		// Act
		_, err := runConfig(settings, translations, "set-theme", "sepia")

		// Assert
		assert.ErrorIs(t, err, domainErrors.ErrInvalidTheme)
		assert.Equal(t, config.ThemeLight, settings.Theme)
	})

	t.Run("should toggle the theme", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)

		// Act
		_, err := runConfig(settings, translations, "toggle-theme")
		require.NoError(t, err)
		_, err = runConfig(settings, translations, "toggle-theme")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, config.ThemeLight, settings.Theme)
	})
}

func TestSetLangCommand(t *testing.T) {
	t.Run("should switch the language and confirm in it", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)

		// Act
		out, err := runConfig(settings, translations, "set-lang", "es")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "es", settings.Language)
		assert.Equal(t, "es", translations.Language())
		assert.Contains(t, out, "Español")
	})

	t.Run("should reject an unsupported language", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)

		// Act
		_, err := runConfig(settings, translations, "set-lang", "de")

		// Assert
		assert.ErrorIs(t, err, domainErrors.ErrInvalidLanguage)
		assert.Equal(t, "en", translations.Language())
		assert.NoFileExists(t, settings.PathFile)
	})
}

func TestHistoryCommand(t *testing.T) {
	t.Run("should list remembered usernames newest first", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)
		settings.RecordUsername("first")
		settings.RecordUsername("second")

		// Act
		out, err := runConfig(settings, translations, "history")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "second\nfirst\n", out)
	})

	t.Run("should say when no username is remembered", func(t *testing.T) {
		// Arrange
		settings, translations := setupConfigTest(t)

		// Act
		out, err := runConfig(settings, translations, "history")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "No username remembered yet.")
	})
}
