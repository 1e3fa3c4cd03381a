package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/commands/completion_helper"
	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/readme"
	"github.com/ghreadme/ghreadme/internal/services"
)

const defaultWidth = 80

type offlineGenerator interface {
	GenerateOffline(ctx context.Context, username string, opts services.GenerateOptions) (*services.Result, error)
}

type PreviewCommandFactory struct {
	service offlineGenerator
}

func NewPreviewCommandFactory(service offlineGenerator) *PreviewCommandFactory {
	return &PreviewCommandFactory{service: service}
}

func (f *PreviewCommandFactory) CreateCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: t.GetMessage("preview.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("generate.username_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: t.GetMessage("preview.theme_flag", 0, nil),
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: t.GetMessage("preview.width_flag", 0, nil),
				Value: defaultWidth,
			},
			&cli.BoolFlag{
				Name:  "include-private",
				Usage: t.GetMessage("generate.include_private_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "include-forks",
				Usage: t.GetMessage("generate.include_forks_flag", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			theme := settings.Theme
			if value := cmd.String("theme"); value != "" {
				if !config.IsValidTheme(value) {
					return domainErrors.ErrInvalidTheme.WithContext("theme", value)
				}
				theme = config.Theme(value)
			}

			username := strings.TrimSpace(cmd.String("username"))
			if username == "" {
				username = settings.Username
			}

			result, err := f.service.GenerateOffline(ctx, username, services.GenerateOptions{
				IncludePrivate: cmd.Bool("include-private"),
				IncludeForks:   cmd.Bool("include-forks"),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.Root().Writer, readme.RenderTerminal(result.Markdown, theme, int(cmd.Int("width"))))
			return err
		},
	}
}
