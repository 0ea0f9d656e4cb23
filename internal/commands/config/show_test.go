package config

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommand(t *testing.T) {
	t.Run("should hide the token and list the mapped users", func(t *testing.T) {
		// Arrange
		cfg, app, out := setupConfigTest(t)
		cfg.GitHubAccessToken = "ghp_secret"
		cfg.RangeWebhook = "https://in.range.co/hook"
		cfg.Users = map[string]string{"octocat": "octocat@example.com", "hubot": "hubot@example.com"}

		// Act
		err := app.Run(context.Background(), []string{"github2range", "config", "show"})

		// Assert
		require.NoError(t, err)
		output := out.String()
		assert.NotContains(t, output, "ghp_secret")
		assert.Contains(t, output, "GitHub token")
		assert.Contains(t, output, "set")
		assert.Contains(t, output, "https://in.range.co/hook")
		assert.Contains(t, output, "api.github.com")
		assert.Less(t, strings.Index(output, "hubot"), strings.Index(output, "octocat"))
	})

	t.Run("should mark missing values", func(t *testing.T) {
		// Arrange
		_, app, out := setupConfigTest(t)

		// Act
		err := app.Run(context.Background(), []string{"github2range", "config", "show"})

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out.String(), "not set")
		assert.Contains(t, out.String(), "24")
	})
}
