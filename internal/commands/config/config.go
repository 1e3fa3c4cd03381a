package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/config"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/ui"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config.usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t, settings),
			c.newSetThemeCommand(t, settings),
			c.newToggleThemeCommand(t, settings),
			c.newSetLangCommand(t, settings),
			c.newHistoryCommand(t, settings),
		},
	}
}

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer

			tokenStored := t.GetMessage("config.no", 0, nil)
			if settings.Token != "" {
				tokenStored = t.GetMessage("config.yes", 0, nil)
			}

			ui.PrintSectionBanner(w, t.GetMessage("app_title", 0, nil))
			ui.PrintKeyValue(w, t.GetMessage("config.path", 0, nil), settings.PathFile)
			ui.PrintKeyValue(w, t.GetMessage("config.username", 0, nil), settings.Username)
			ui.PrintKeyValue(w, t.GetMessage("config.token_stored", 0, nil), tokenStored)
			ui.PrintKeyValue(w, t.GetMessage("theme_label", 0, nil), t.GetMessage("themes."+string(settings.Theme), 0, nil))
			ui.PrintKeyValue(w, t.GetMessage("language_label", 0, nil), i18n.LanguageName(settings.Language))
			ui.PrintKeyValue(w, t.GetMessage("config.comments_count", 0, nil), fmt.Sprint(len(settings.Comments(settings.Username))))
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newSetThemeCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:      "set-theme",
		Usage:     t.GetMessage("config.set_theme_usage", 0, nil),
		ArgsUsage: t.GetMessage("config.theme_args", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 1 {
				return errors.New(t.GetMessage("comments.missing_args", 0, nil))
			}
			if err := settings.SetTheme(cmd.Args().First()); err != nil {
				return err
			}
			return saveTheme(cmd, t, settings)
		},
	}
}

func (c *ConfigCommandFactory) newToggleThemeCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "toggle-theme",
		Usage: t.GetMessage("config.toggle_theme_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			settings.ToggleTheme()
			return saveTheme(cmd, t, settings)
		},
	}
}

func saveTheme(cmd *cli.Command, t *i18n.Translations, settings *config.Settings) error {
	if err := config.SaveSettings(settings); err != nil {
		return err
	}
	ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("status_messages.theme_changed", 0, map[string]interface{}{
		"Theme": t.GetMessage("themes."+string(settings.Theme), 0, nil),
	}))
	return nil
}

func (c *ConfigCommandFactory) newSetLangCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:      "set-lang",
		Usage:     t.GetMessage("config.set_lang_usage", 0, nil),
		ArgsUsage: t.GetMessage("config.lang_args", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 1 {
				return errors.New(t.GetMessage("comments.missing_args", 0, nil))
			}
			lang := cmd.Args().First()
			if err := settings.SetLanguage(lang); err != nil {
				return err
			}
			if err := config.SaveSettings(settings); err != nil {
				return err
			}
			if err := t.SetLanguage(lang); err != nil {
				return err
			}

			ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("status_messages.language_changed", 0, map[string]interface{}{
				"Language": i18n.LanguageName(lang),
			}))
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newHistoryCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: t.GetMessage("config.history_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			if len(settings.UsernameHistory) == 0 {
				ui.PrintInfo(w, t.GetMessage("config.no_history", 0, nil))
				return nil
			}
			for _, name := range settings.UsernameHistory {
				_, _ = fmt.Fprintln(w, name)
			}
			return nil
		},
	}
}
