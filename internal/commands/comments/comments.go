package comments

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/commands/completion_helper"
	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/regex"
	"github.com/ghreadme/ghreadme/internal/ui"
)

type CommentsCommandFactory struct{}

func NewCommentsCommandFactory() *CommentsCommandFactory {
	return &CommentsCommandFactory{}
}

func (f *CommentsCommandFactory) CreateCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: t.GetMessage("comments.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("comments.username_flag", 0, nil),
			},
		},
		Commands: []*cli.Command{
			f.newListCommand(t, settings),
			f.newSetCommand(t, settings),
			f.newDeleteCommand(t, settings),
		},
	}
}

func (f *CommentsCommandFactory) newListCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("comments.list_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			username, err := resolveUsername(cmd, settings)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			comments := settings.Comments(username)
			ui.PrintSectionBanner(w, t.GetMessage("comments_dialog.title", 0, map[string]interface{}{"Username": username}))
			if len(comments) == 0 {
				ui.PrintInfo(w, t.GetMessage("comments_dialog.no_comments", 0, nil))
				return nil
			}

			repos := make([]string, 0, len(comments))
			for repo := range comments {
				repos = append(repos, repo)
			}
			sort.Strings(repos)
			for _, repo := range repos {
				ui.PrintKeyValue(w, repo, comments[repo])
			}
			return nil
		},
	}
}

func (f *CommentsCommandFactory) newSetCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:          "set",
		Usage:         t.GetMessage("comments.set_usage", 0, nil),
		ArgsUsage:     t.GetMessage("comments.args_repo_text", 0, nil),
		ShellComplete: completion_helper.RepositoryComplete(settings),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				ui.PrintError(cmd.Root().ErrWriter, t.GetMessage("comments.missing_args", 0, nil))
				return errors.New("missing arguments")
			}
			username, err := resolveUsername(cmd, settings)
			if err != nil {
				return err
			}

			repo, err := normalizeRepo(cmd.Args().First())
			if err != nil {
				return err
			}
			text := strings.Join(cmd.Args().Tail(), " ")
			settings.SetComment(username, repo, text)
			if err := config.SaveSettings(settings); err != nil {
				return err
			}

			data := map[string]interface{}{"Repo": repo}
			if strings.TrimSpace(text) == "" {
				ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("status_messages.comment_deleted", 0, data))
			} else {
				ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("status_messages.comment_saved", 0, data))
			}
			return nil
		},
	}
}

func (f *CommentsCommandFactory) newDeleteCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:          "delete",
		Aliases:       []string{"rm"},
		Usage:         t.GetMessage("comments.delete_usage", 0, nil),
		ArgsUsage:     t.GetMessage("comments.args_repo", 0, nil),
		ShellComplete: completion_helper.RepositoryComplete(settings),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 1 {
				ui.PrintError(cmd.Root().ErrWriter, t.GetMessage("comments.missing_args", 0, nil))
				return errors.New("missing arguments")
			}
			username, err := resolveUsername(cmd, settings)
			if err != nil {
				return err
			}

			repo, err := normalizeRepo(cmd.Args().First())
			if err != nil {
				return err
			}
			data := map[string]interface{}{"Repo": repo}
			if !settings.DeleteComment(username, repo) {
				return errors.New(t.GetMessage("warnings.comment_not_found", 0, data))
			}
			if err := config.SaveSettings(settings); err != nil {
				return err
			}

			ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("status_messages.comment_deleted", 0, data))
			return nil
		},
	}
}

// normalizeRepo accepts owner/repo or a github.com URL and returns owner/repo.
func normalizeRepo(arg string) (string, error) {
	if m := regex.HTTPSRepo.FindStringSubmatch(arg); m != nil {
		arg = m[1] + "/" + m[2]
	}
	if !regex.IsRepositoryName(arg) {
		return "", domainErrors.ErrInvalidRepository.WithContext("repository", arg)
	}
	return arg, nil
}

// resolveUsername returns the --username of the comments command, or the
// current username of the settings.
func resolveUsername(cmd *cli.Command, settings *config.Settings) (string, error) {
	username := strings.TrimSpace(cmd.String("username"))
	if username == "" {
		username = settings.Username
	}
	if username == "" {
		return "", domainErrors.ErrUsernameMissing
	}
	return username, nil
}
