package main

import (
	"log"
	"time"

	envstruct "code.cloudfoundry.org/go-envstruct"

	"github.com/claudeutils/claude-token-refresh/internal/anthropic"
)

type Config struct {
	TokenURL string `env:"CLAUDE_TOKEN_URL"`
	ClientID string `env:"CLAUDE_CLIENT_ID"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

func loadConfig() Config {
	cfg := Config{
		TokenURL:       anthropic.DefaultTokenURL,
		ClientID:       anthropic.DefaultClientID,
		RequestTimeout: 30 * time.Second,
	}

	if err := envstruct.Load(&cfg); err != nil {
		log.Fatalf("failed to load config from environment: %s", err)
	}

	return cfg
}
