package login

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/commands/completion_helper"
	"github.com/ghreadme/ghreadme/internal/config"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/logger"
	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/ui"
)

type credentialValidator interface {
	Validate(ctx context.Context, cred models.Credential) (string, error)
}

type LoginCommandFactory struct {
	validator credentialValidator
}

func NewLoginCommandFactory(validator credentialValidator) *LoginCommandFactory {
	return &LoginCommandFactory{validator: validator}
}

func (f *LoginCommandFactory) CreateCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: t.GetMessage("login.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("login.username_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("login.token_flag", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cred := models.Credential{
				Username: strings.TrimSpace(cmd.String("username")),
				Token:    settings.ResolveToken(cmd.String("token")),
			}
			if cred.Username == "" {
				cred.Username = settings.Username
			}

			log := logger.FromContext(ctx)
			log.Debug("validating credentials", "username", cred.Username)

			var login string
			err := ui.WithSpinner(t.GetMessage("status_messages.validating", 0, nil), func() error {
				var err error
				login, err = f.validator.Validate(ctx, cred)
				return err
			})
			if err != nil {
				return err
			}

			settings.RecordUsername(cred.Username)
			settings.Token = cred.Token
			if err := config.SaveSettings(settings); err != nil {
				return err
			}
			log.Info("credentials stored", "login", login)

			ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("login.success", 0, map[string]interface{}{
				"Login": login,
			}))
			return nil
		},
	}
}
