package main

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/claudeutils/claude-token-refresh/internal/anthropic"
	"github.com/claudeutils/claude-token-refresh/internal/command"
)

func main() {
	cfg := loadConfig()

	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
	}
	refresher := anthropic.NewTokenRefresher(cfg.TokenURL, cfg.ClientID, httpClient)

	command.RefreshToken(os.Args[1:], refresher, homeDir(), newLogger(os.Stdout))
}

type logger struct {
	*log.Logger
}

func newLogger(w io.Writer) *logger {
	return &logger{
		Logger: log.New(w, "", 0),
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to resolve home directory: %s", err)
	}
	return home
}
