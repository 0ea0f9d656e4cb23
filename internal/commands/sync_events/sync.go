package sync_events

import (
	"context"
	"io"
	"os"

	"github.com/thomas-vilte/github2range/internal/config"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/thomas-vilte/github2range/internal/services"
	"github.com/thomas-vilte/github2range/internal/ui"
	"github.com/thomas-vilte/github2range/internal/vcs"
	"github.com/thomas-vilte/github2range/internal/vcs/github"
	"github.com/thomas-vilte/github2range/internal/version"
	"github.com/thomas-vilte/github2range/internal/webhook"
	"github.com/urfave/cli/v3"
)

type (
	SourceFactory    func(cfg *config.Config) (vcs.EventSource, error)
	DelivererFactory func(cfg *config.Config) services.Deliverer
)

type SyncCommandFactory struct {
	newSource    SourceFactory
	newDeliverer DelivererFactory
	out          io.Writer
}

func NewSyncCommandFactory() *SyncCommandFactory {
	return &SyncCommandFactory{
		newSource:    defaultSource,
		newDeliverer: defaultDeliverer,
		out:          os.Stdout,
	}
}

// NewSyncCommandFactoryWith lets tests swap the GitHub and webhook clients.
func NewSyncCommandFactoryWith(newSource SourceFactory, newDeliverer DelivererFactory, out io.Writer) *SyncCommandFactory {
	return &SyncCommandFactory{
		newSource:    newSource,
		newDeliverer: newDeliverer,
		out:          out,
	}
}

func defaultSource(cfg *config.Config) (vcs.EventSource, error) {
	return github.NewGitHubClient(cfg.GitHubHost, cfg.GitHubAccessToken, version.UserAgent())
}

func defaultDeliverer(cfg *config.Config) services.Deliverer {
	return webhook.NewClient(cfg.RangeWebhook, webhook.WithUserAgent(version.UserAgent()))
}

func (f *SyncCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  t.GetMessage("sync_usage", 0, nil),
		Action: f.Action(t, cfg),
	}
}

// Action is shared with the root command, which syncs when no subcommand is given.
func (f *SyncCommandFactory) Action(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := config.Validate(cfg); err != nil {
			return err
		}

		source, err := f.newSource(cfg)
		if err != nil {
			return err
		}

		svc := services.NewSyncService(source, f.newDeliverer(cfg), ui.NewPrinter(f.out), t, services.SyncOptions{
			Users:  cfg.Users,
			MaxAge: cfg.MaxAgeDuration(),
			DryRun: cmd.Bool("dry-run"),
		})

		_, err = svc.Run(ctx)
		return err
	}
}
