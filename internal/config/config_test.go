package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("reads tokens and environment", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "discord-secret")
		t.Setenv("GITHUB_TOKEN", "github-secret")
		t.Setenv("APP_ENV", "prod")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "discord-secret", cfg.DiscordToken)
		assert.Equal(t, "github-secret", cfg.GitHubToken)
		assert.Equal(t, "prod", cfg.Env)
	})

	t.Run("environment defaults to dev", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "discord-secret")
		t.Setenv("GITHUB_TOKEN", "github-secret")
		t.Setenv("APP_ENV", "")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.Env)
	})

	t.Run("missing tokens are errors", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "")
		t.Setenv("GITHUB_TOKEN", "github-secret")

		_, err := Load()
		assert.Error(t, err)

		t.Setenv("DISCORD_TOKEN", "discord-secret")
		t.Setenv("GITHUB_TOKEN", "")

		_, err = Load()
		assert.Error(t, err)
	})
}
