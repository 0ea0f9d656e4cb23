package config

import (
	"context"
	"fmt"
	"sort"

	"github.com/thomas-vilte/github2range/internal/config"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/thomas-vilte/github2range/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  t.GetMessage("config_show_usage", 0, nil),
		Action: c.showConfigAction(cfg, t),
	}
}

func (c *ConfigCommandFactory) showConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		p := ui.NewPrinter(c.out)

		token := t.GetMessage("config_value_missing", 0, nil)
		if cfg.GitHubAccessToken != "" {
			token = t.GetMessage("config_value_set", 0, nil)
		}
		webhook := cfg.RangeWebhook
		if webhook == "" {
			webhook = t.GetMessage("config_value_missing", 0, nil)
		}

		p.Field(t.GetMessage("config_show_path", 0, nil), cfg.PathFile)
		p.Field(t.GetMessage("config_show_host", 0, nil), cfg.GitHubHost)
		p.Field(t.GetMessage("config_show_token", 0, nil), token)
		p.Field(t.GetMessage("config_show_webhook", 0, nil), webhook)
		p.Field(t.GetMessage("config_show_max_age", 0, nil), fmt.Sprintf("%g", cfg.MaxAge))
		p.Field(t.GetMessage("config_show_users", 0, nil), fmt.Sprintf("%d", len(cfg.Users)))

		logins := make([]string, 0, len(cfg.Users))
		for login := range cfg.Users {
			logins = append(logins, login)
		}
		sort.Strings(logins)
		for _, login := range logins {
			p.Item(fmt.Sprintf("%s → %s", login, cfg.Users[login]))
		}
		return nil
	}
}
