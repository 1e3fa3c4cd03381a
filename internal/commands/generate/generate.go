package generate

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/commands/completion_helper"
	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/logger"
	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/readme"
	"github.com/ghreadme/ghreadme/internal/services"
	"github.com/ghreadme/ghreadme/internal/ui"
)

type readmeGenerator interface {
	Generate(ctx context.Context, cred models.Credential, opts services.GenerateOptions) (*services.Result, error)
	GenerateOffline(ctx context.Context, username string, opts services.GenerateOptions) (*services.Result, error)
}

type GenerateCommandFactory struct {
	service readmeGenerator
}

func NewGenerateCommandFactory(service readmeGenerator) *GenerateCommandFactory {
	return &GenerateCommandFactory{service: service}
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: t.GetMessage("generate.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("generate.username_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("login.token_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   t.GetMessage("generate.output_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:  "html",
				Usage: t.GetMessage("generate.html_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: t.GetMessage("generate.offline_flag", 0, nil),
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
			opts := services.GenerateOptions{
				IncludePrivate: cmd.Bool("include-private"),
				IncludeForks:   cmd.Bool("include-forks"),
			}

			username := strings.TrimSpace(cmd.String("username"))
			if username == "" {
				username = settings.Username
			}

			var (
				result *services.Result
				err    error
			)
			if cmd.Bool("offline") {
				result, err = f.service.GenerateOffline(ctx, username, opts)
				if err != nil {
					return err
				}
			} else {
				result, err = f.fetch(ctx, t, settings, username, cmd.String("token"), opts)
				if err != nil {
					return err
				}
			}

			return writeResult(ctx, cmd, t, settings, result)
		},
	}
}

// fetch runs an online generation and remembers the credential on success.
func (f *GenerateCommandFactory) fetch(ctx context.Context, t *i18n.Translations, settings *config.Settings, username, token string, opts services.GenerateOptions) (*services.Result, error) {
	cred := models.Credential{Username: username, Token: settings.ResolveToken(token)}

	var result *services.Result
	message := t.GetMessage("status_messages.generating", 0, map[string]interface{}{"Username": username})
	err := ui.WithSpinner(message, func() error {
		var err error
		result, err = f.service.Generate(ctx, cred, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	settings.RecordUsername(cred.Username)
	settings.Token = cred.Token
	if err := config.SaveSettings(settings); err != nil {
		logger.FromContext(ctx).Warn("failed to save settings", "error", err)
	}

	return result, nil
}

func writeResult(ctx context.Context, cmd *cli.Command, t *i18n.Translations, settings *config.Settings, result *services.Result) error {
	log := logger.FromContext(ctx)
	out := cmd.Root().Writer
	status := cmd.Root().ErrWriter

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, []byte(result.Markdown), 0o644); err != nil {
			return domainErrors.NewAppError(domainErrors.TypeInternal, "failed to write README", err).
				WithContext("path", path)
		}
		log.Debug("readme written", "path", path)
		ui.PrintSuccess(status, t.GetMessage("generate.written", 0, map[string]interface{}{"Path": path}))
	} else {
		if _, err := out.Write([]byte(result.Markdown)); err != nil {
			return err
		}
	}

	if path := cmd.String("html"); path != "" {
		title := t.GetMessage("categories.profile_git", 0, nil) + " : " + result.Username
		page, err := readme.RenderHTML(result.Markdown, settings.Theme, title, t.Language())
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
			return domainErrors.ErrRender.WithError(err).WithContext("path", path)
		}
		log.Debug("html preview written", "path", path, "theme", settings.Theme)
		ui.PrintSuccess(status, t.GetMessage("generate.written", 0, map[string]interface{}{"Path": path}))
	}

	ui.PrintClassificationSummary(status, result.Classification, t)
	return nil
}
