package config

import (
	"io"
	"os"

	"github.com/thomas-vilte/github2range/internal/config"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct {
	out io.Writer
}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{out: os.Stdout}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
			c.newInitCommand(t, cfg),
		},
	}
}
