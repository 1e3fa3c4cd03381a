package update

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/commands/completion_helper"
	"github.com/ghreadme/ghreadme/internal/config"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/services"
	"github.com/ghreadme/ghreadme/internal/ui"
)

const installCommand = "go install github.com/ghreadme/ghreadme/cmd/ghreadme@latest"

type versionChecker interface {
	Check(ctx context.Context) (services.UpdateInfo, error)
}

type UpdateCommandFactory struct {
	checker versionChecker
}

func NewUpdateCommandFactory(checker versionChecker) *UpdateCommandFactory {
	return &UpdateCommandFactory{checker: checker}
}

func (f *UpdateCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Settings) *cli.Command {
	return &cli.Command{
		Name:          "update",
		Usage:         t.GetMessage("update.usage", 0, nil),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var info services.UpdateInfo
			err := ui.WithSpinner(t.GetMessage("update.checking", 0, nil), func() error {
				var err error
				info, err = f.checker.Check(ctx)
				return err
			})
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if !info.Available {
				ui.PrintSuccess(w, t.GetMessage("update.up_to_date", 0, map[string]interface{}{
					"Version": info.Current,
				}))
				return nil
			}

			ui.PrintWarning(w, t.GetMessage("update.available", 0, map[string]interface{}{
				"Current": info.Current,
				"Latest":  info.Latest,
			}))
			ui.PrintInfo(w, t.GetMessage("update.command", 0, map[string]interface{}{
				"Command": installCommand,
			}))
			return nil
		},
	}
}
