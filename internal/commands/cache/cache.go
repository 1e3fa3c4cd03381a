package cache

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/cache"
	"github.com/ghreadme/ghreadme/internal/config"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/logger"
	"github.com/ghreadme/ghreadme/internal/ui"
)

type CacheCommand struct{}

func NewCacheCommand() *CacheCommand {
	return &CacheCommand{}
}

func (c *CacheCommand) CreateCommand(t *i18n.Translations, settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: t.GetMessage("cache.usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "clean",
				Usage: t.GetMessage("cache.clean_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cacheService, err := cache.NewCache(cache.DefaultDir(settings.PathFile), cache.DefaultTTL)
					if err != nil {
						return fmt.Errorf(t.GetMessage("cache.error_init", 0, nil)+": %w", err)
					}

					if err := cacheService.Clean(); err != nil {
						return fmt.Errorf(t.GetMessage("cache.error_clean", 0, nil)+": %w", err)
					}
					logger.FromContext(ctx).Debug("cache cleaned", "dir", cacheService.Dir())

					ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("cache.cleaned", 0, nil))
					return nil
				},
			},
		},
	}
}
