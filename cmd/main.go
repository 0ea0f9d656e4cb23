package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/fatih/color"
	configcmd "github.com/thomas-vilte/github2range/internal/commands/config"
	"github.com/thomas-vilte/github2range/internal/commands/registry"
	"github.com/thomas-vilte/github2range/internal/commands/sync_events"
	"github.com/thomas-vilte/github2range/internal/config"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/thomas-vilte/github2range/internal/logger"
	"github.com/thomas-vilte/github2range/internal/ui"
	"github.com/thomas-vilte/github2range/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	translations, err := i18n.NewTranslations(config.LangEN)
	if err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	app, err := initializeApp(translations, sync_events.NewSyncCommandFactory())
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp(translations *i18n.Translations, syncFactory *sync_events.SyncCommandFactory) (*cli.Command, error) {
	// Filled in by the Before hook once flags are parsed.
	cfg := config.DefaultConfig()

	registerCommand := registry.NewRegistry(cfg, translations)

	if err := registerCommand.Register("sync", syncFactory); err != nil {
		return nil, err
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:        "github2range",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags:       globalFlags(translations),
		Commands:    registerCommand.CreateCommands(),
		Before:      beforeAction(cfg, translations),
		Action:      syncFactory.Action(translations, cfg),
	}, nil
}

func globalFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   t.GetMessage("flag_config", 0, nil),
		},
		&cli.FloatFlag{
			Name:  "max-age",
			Usage: t.GetMessage("flag_max_age", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: t.GetMessage("flag_dry_run", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: t.GetMessage("flag_debug", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   t.GetMessage("flag_verbose", 0, nil),
		},
		&cli.StringFlag{
			Name:  "lang",
			Usage: t.GetMessage("flag_lang", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: t.GetMessage("flag_no_color", 0, nil),
		},
	}
}

func beforeAction(cfg *config.Config, t *i18n.Translations) cli.BeforeFunc {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool("no-color") {
			color.NoColor = true
		}

		loaded, missing, err := loadConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		*cfg = *loaded

		if cmd.IsSet("max-age") {
			cfg.MaxAge = cmd.Float("max-age")
		}

		lang := cfg.Language
		if cmd.IsSet("lang") {
			lang = cmd.String("lang")
		}
		if err := t.SetLanguage(config.GetLocaleConfig(lang)); err != nil {
			return ctx, err
		}

		logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"), cfg.LevelColors())
		if missing {
			logger.Debug(ctx, "config file not found, using defaults and environment", "path", cfg.PathFile)
		}
		return ctx, nil
	}
}

// loadConfig reads the config at path. Without a path it uses the default
// TOML file, or ~/.github2rangerc when only that one exists. .env and
// GITHUB2RANGE_* overrides are applied last. A missing file yields the
// defaults so the whole config can come from the environment.
func loadConfig(path string) (*config.Config, bool, error) {
	if path == "" {
		resolved, err := defaultConfigPath()
		if err != nil {
			return nil, false, err
		}
		path = resolved
	}

	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, false, err
	}

	missing := false
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		missing = true
		cfg = config.DefaultConfig()
		cfg.PathFile = path
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, false, err
	}
	return cfg, missing, nil
}

func defaultConfigPath() (string, error) {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath, nil
	}

	rcPath, err := config.RCPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(rcPath); err == nil {
		return rcPath, nil
	}
	return defaultPath, nil
}
