package config

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/thomas-vilte/github2range/internal/config"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/thomas-vilte/github2range/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config_init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   t.GetMessage("config_init_force_flag", 0, nil),
			},
		},
		Action: c.initConfigAction(cfg, t),
	}
}

func (c *ConfigCommandFactory) initConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		path := cfg.PathFile
		if path == "" {
			defaultPath, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}

		_, err := os.Stat(path)
		switch {
		case err == nil && !command.Bool("force"):
			return errors.New(t.GetMessage("config_exists", 0, map[string]interface{}{"Path": path}))
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return err
		}

		created, err := config.CreateDefaultConfig(path)
		if err != nil {
			return err
		}
		*cfg = *created

		ui.NewPrinter(c.out).Done(t.GetMessage("config_created", 0, map[string]interface{}{"Path": path}))
		return nil
	}
}
