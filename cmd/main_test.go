package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/github2range/internal/commands/sync_events"
	"github.com/thomas-vilte/github2range/internal/config"
	domainErrors "github.com/thomas-vilte/github2range/internal/errors"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/thomas-vilte/github2range/internal/models"
	"github.com/thomas-vilte/github2range/internal/services"
	"github.com/thomas-vilte/github2range/internal/vcs"
)

const testConfig = `
github_access_token = "ghp_file"
range_webhook = "https://in.range.co/hook"
max_age = 12
language = "en"

[users]
octocat = "octocat@example.com"
`

type appHarness struct {
	out       *bytes.Buffer
	source    *services.MockEventSource
	seen      *config.Config
	deliverer *services.MockDeliverer
	run       func(args ...string) error
}

func newHarness(t *testing.T) *appHarness {
	t.Helper()
	color.NoColor = true
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"GITHUB_HOST", "GITHUB_ACCESS_TOKEN", "RANGE_WEBHOOK", "MAX_AGE"} {
		t.Setenv("GITHUB2RANGE_"+key, "")
	}

	h := &appHarness{
		out:       &bytes.Buffer{},
		source:    &services.MockEventSource{},
		deliverer: &services.MockDeliverer{},
	}
	h.source.On("GetAuthenticatedUser", mock.Anything).Return("octocat", nil)
	h.source.On("ListOrganizations", mock.Anything).Return([]string{}, nil)

	translations, err := i18n.NewTranslations(config.LangEN)
	require.NoError(t, err)

	factory := sync_events.NewSyncCommandFactoryWith(
		func(cfg *config.Config) (vcs.EventSource, error) {
			h.seen = cfg
			return h.source, nil
		},
		func(*config.Config) services.Deliverer { return h.deliverer },
		h.out,
	)
	app, err := initializeApp(translations, factory)
	require.NoError(t, err)

	h.run = func(args ...string) error {
		return app.Run(context.Background(), append([]string{"github2range"}, args...))
	}
	return h
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestApp(t *testing.T) {
	t.Run("should sync by default with the config file", func(t *testing.T) {
		h := newHarness(t)
		path := writeConfig(t, "config.toml", testConfig)

		err := h.run("--config", path)

		require.NoError(t, err)
		require.NotNil(t, h.seen)
		assert.Equal(t, "ghp_file", h.seen.GitHubAccessToken)
		assert.Equal(t, 12*time.Hour, h.seen.MaxAgeDuration())
		assert.Contains(t, h.out.String(), "All done!")
	})

	t.Run("should apply flag and environment overrides", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("GITHUB2RANGE_GITHUB_ACCESS_TOKEN", "ghp_env")
		path := writeConfig(t, "config.toml", testConfig)

		err := h.run("--config", path, "--max-age", "48", "--lang", "es", "sync")

		require.NoError(t, err)
		assert.Equal(t, "ghp_env", h.seen.GitHubAccessToken)
		assert.Equal(t, 48*time.Hour, h.seen.MaxAgeDuration())
		assert.NotContains(t, h.out.String(), "All done!")
	})

	t.Run("should still require users when no config file exists", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("GITHUB2RANGE_GITHUB_ACCESS_TOKEN", "ghp_env")
		t.Setenv("GITHUB2RANGE_RANGE_WEBHOOK", "https://in.range.co/hook")

		err := h.run("--dry-run")

		assert.ErrorIs(t, err, domainErrors.ErrNoUsers)
	})

	t.Run("should fall back to the rc file in the home directory", func(t *testing.T) {
		h := newHarness(t)
		home := os.Getenv("HOME")
		require.NoError(t, os.WriteFile(filepath.Join(home, ".github2rangerc"), []byte(`{
  "githubAccessToken": "ghp_rc",
  "rangeWebhook": "https://in.range.co/hook",
  "users": {"octocat": "octocat@example.com"},
  "colors": {"debug": "gray", "error": ["bgRed", "white"]}
}`), 0600))

		err := h.run("--dry-run")

		require.NoError(t, err)
		assert.Equal(t, "ghp_rc", h.seen.GitHubAccessToken)
		assert.Equal(t, filepath.Join(home, ".github2rangerc"), h.seen.PathFile)
		assert.Equal(t, config.ColorSpec{"bgRed", "white"}, h.seen.Colors["error"])
	})

	t.Run("should prefer the toml file over the rc file", func(t *testing.T) {
		h := newHarness(t)
		home := os.Getenv("HOME")
		require.NoError(t, os.MkdirAll(filepath.Join(home, ".github2range"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".github2range", "config.toml"), []byte(testConfig), 0600))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".github2rangerc"), []byte(`{"githubAccessToken": "ghp_rc"}`), 0600))

		err := h.run()

		require.NoError(t, err)
		assert.Equal(t, "ghp_file", h.seen.GitHubAccessToken)
	})

	t.Run("should fail on a missing token", func(t *testing.T) {
		h := newHarness(t)
		path := writeConfig(t, "config.yaml", "range_webhook: https://in.range.co/hook\nusers:\n  octocat: octocat@example.com\n")

		err := h.run("-c", path)

		assert.ErrorIs(t, err, domainErrors.ErrTokenMissing)
		h.source.AssertNotCalled(t, "GetAuthenticatedUser", mock.Anything)
	})

	t.Run("should reject a malformed config file", func(t *testing.T) {
		h := newHarness(t)
		path := writeConfig(t, "config.json", "{not json")

		err := h.run("-c", path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error decoding config file")
	})

	t.Run("should skip unmapped and non actionable events in dry run", func(t *testing.T) {
		h := newHarness(t)
		path := writeConfig(t, "config.toml", testConfig)
		h.source.ExpectedCalls = nil
		h.source.On("GetAuthenticatedUser", mock.Anything).Return("octocat", nil)
		h.source.On("ListOrganizations", mock.Anything).Return([]string{"acme"}, nil)
		h.source.On("ListOrgEvents", mock.Anything, "octocat", "acme", 1, services.EventsPageSize).Return([]models.Event{
			{Kind: models.EventPullRequest, Actor: "hubot", CreatedAt: time.Now(), Payload: models.EventPayload{Action: "opened", PullRequest: &models.PullRequest{ID: 7}}},
		}, nil)
		h.source.On("ListOrgEvents", mock.Anything, "octocat", "acme", 2, services.EventsPageSize).Return([]models.Event{}, nil)

		err := h.run("-c", path, "--dry-run")

		require.NoError(t, err)
		assert.Contains(t, h.out.String(), "Saw events from 1 unmapped user: hubot")
		assert.Contains(t, h.out.String(), "Dry run, nothing was sent")
		h.deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
	})
}
