// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

var (
	errDiscordTokenEmpty = errors.New("DISCORD_TOKEN is empty")
	errGitHubTokenEmpty  = errors.New("GITHUB_TOKEN is empty")
)

// Config holds everything the process needs at startup.
type Config struct {
	Env          string
	DiscordToken string
	GitHubToken  string
}

// Load reads the configuration. A missing .env file is not an error; real
// deployments provide the environment directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Env:          getEnv("APP_ENV", "dev"),
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
	}
	if c.DiscordToken == "" {
		return nil, errDiscordTokenEmpty
	}
	if c.GitHubToken == "" {
		return nil, errGitHubTokenEmpty
	}
	return c, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
