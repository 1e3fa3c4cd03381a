package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/cache"
	"github.com/ghreadme/ghreadme/internal/cli/registry"
	cacheCmd "github.com/ghreadme/ghreadme/internal/commands/cache"
	"github.com/ghreadme/ghreadme/internal/commands/comments"
	configCmd "github.com/ghreadme/ghreadme/internal/commands/config"
	"github.com/ghreadme/ghreadme/internal/commands/generate"
	"github.com/ghreadme/ghreadme/internal/commands/login"
	"github.com/ghreadme/ghreadme/internal/commands/preview"
	"github.com/ghreadme/ghreadme/internal/commands/stats"
	"github.com/ghreadme/ghreadme/internal/commands/update"
	cfg "github.com/ghreadme/ghreadme/internal/config"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/logger"
	"github.com/ghreadme/ghreadme/internal/services"
	"github.com/ghreadme/ghreadme/internal/tui"
	"github.com/ghreadme/ghreadme/internal/ui"
	"github.com/ghreadme/ghreadme/internal/vcs/github"
	"github.com/ghreadme/ghreadme/internal/version"
)

const logFileName = "ghreadme.log"

func main() {
	app, translations, err := initializeApp(os.Args)
	if err != nil {
		ui.HandleAppError(os.Stderr, err, nil)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp(args []string) (*cli.Command, *i18n.Translations, error) {
	settingsPath := globalFlag(args, "settings")
	if settingsPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("could not get the user home directory: %w", err)
		}
		settingsPath = cfg.DefaultPath(homeDir)
	}

	settings, err := cfg.LoadSettings(settingsPath)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(settings.Language, globalFlag(args, "locales"))
	if err != nil {
		return nil, nil, err
	}

	opts := []services.ReadmeOption{
		services.WithClientFactory(github.NewClientFactory()),
		services.WithTranslator(translations),
		services.WithComments(settings),
	}
	if store, err := cache.NewCache(cache.DefaultDir(settings.PathFile), cache.DefaultTTL); err != nil {
		logger.Warn(context.Background(), "contribution cache disabled", "error", err)
	} else {
		opts = append(opts, services.WithContributionCache(store))
	}
	readmeService := services.NewReadmeService(opts...)

	var releaseCache *cache.Cache
	if store, err := cache.NewCache(filepath.Join(cache.DefaultDir(settings.PathFile), "releases"), services.ReleaseCheckInterval); err == nil {
		releaseCache = store
	}
	versionChecker := services.NewVersionChecker(version.Version, github.NewReleaseSource(nil), cacheOrNil(releaseCache))

	registerCommand := registry.NewRegistry(settings, translations)
	factories := map[string]registry.CommandFactory{
		"login":    login.NewLoginCommandFactory(readmeService),
		"generate": generate.NewGenerateCommandFactory(readmeService),
		"preview":  preview.NewPreviewCommandFactory(readmeService),
		"stats":    stats.NewStatsCommand(readmeService),
		"comments": comments.NewCommentsCommandFactory(),
		"config":   configCmd.NewConfigCommandFactory(),
		"cache":    cacheCmd.NewCacheCommand(),
		"update":   update.NewUpdateCommandFactory(versionChecker),
	}
	for name, factory := range factories {
		if err := registerCommand.Register(name, factory); err != nil {
			return nil, nil, err
		}
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd.Root())
		},
	})

	return &cli.Command{
		Name:    "ghreadme",
		Usage:   translations.GetMessage("app_usage", 0, nil),
		Version: version.FullVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "settings",
				Usage: translations.GetMessage("settings_flag", 0, nil),
				Value: settings.PathFile,
			},
			&cli.StringFlag{
				Name:  "locales",
				Usage: translations.GetMessage("locales_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("debug_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("verbose_flag", 0, nil),
			},
		},
		Commands:              commands,
		EnableShellCompletion: true,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			l := logger.Initialize(os.Stderr, cmd.Bool("debug"), cmd.Bool("verbose"))
			return logger.WithLogger(ctx, l), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runTUI(ctx, cmd, readmeService, settings, translations)
		},
	}, translations, nil
}

// runTUI starts the full-screen interface with logs redirected to a file.
func runTUI(ctx context.Context, cmd *cli.Command, service *services.ReadmeService, settings *cfg.Settings, translations *i18n.Translations) error {
	logPath := filepath.Join(filepath.Dir(settings.PathFile), logFileName)
	l, closer, err := logger.InitializeFile(logPath, cmd.Bool("debug"), cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	ctx = logger.WithLogger(ctx, l)

	if settings.Token == "" {
		settings.Token = os.Getenv("GITHUB_TOKEN")
	}

	return tui.Run(ctx, tui.Deps{
		Service:      service,
		Settings:     settings,
		Translations: translations,
	})
}

// globalFlag returns the value of --name from args ahead of the urfave parse.
func globalFlag(args []string, name string) string {
	long := "--" + name
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if value, ok := strings.CutPrefix(arg, long+"="); ok {
			return value
		}
		if arg == long && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// cacheOrNil keeps a nil *cache.Cache from becoming a non-nil interface.
func cacheOrNil(c *cache.Cache) services.Cache {
	if c == nil {
		return nil
	}
	return c
}
