package completion_helper

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/config"
)

// DefaultFlagComplete prints all flags of the current command to facilitate shell completion.
// This is used to ensure flags are suggested even when the default urfave/cli completion might fail.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := cmd.Root().Writer
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}

// RepositoryComplete suggests the repositories that have a stored comment for
// the current username, followed by the command flags.
func RepositoryComplete(settings *config.Settings) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		repos := make([]string, 0)
		for repo := range settings.Comments(settings.Username) {
			repos = append(repos, repo)
		}
		sort.Strings(repos)

		w := cmd.Root().Writer
		for _, repo := range repos {
			_, _ = fmt.Fprintln(w, repo)
		}
		DefaultFlagComplete(ctx, cmd)
	}
}
