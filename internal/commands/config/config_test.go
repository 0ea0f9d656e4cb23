package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/github2range/internal/config"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) (*config.Config, *cli.Command, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	cfg := config.DefaultConfig()
	cfg.PathFile = filepath.Join(t.TempDir(), "github2range", "config.toml")

	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	factory := &ConfigCommandFactory{out: out}
	app := &cli.Command{
		Name:     "github2range",
		Commands: []*cli.Command{factory.CreateCommand(translations, cfg)},
	}
	return cfg, app, out
}
