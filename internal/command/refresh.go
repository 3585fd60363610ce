package command

import (
	"os"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/claudeutils/claude-token-refresh/internal/anthropic"
	"github.com/claudeutils/claude-token-refresh/internal/credfile"
)

// Logger is used for progress output and fatal errors
type Logger interface {
	Printf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type TokenRefresher interface {
	Refresh(refreshToken string) (*anthropic.Grant, error)
}

type refreshFlags struct {
	Force bool   `long:"force" description:"Refresh even if the stored token has not expired"`
	Dir   string `long:"dir" description:"Base directory to search for credential files"`
}

// RefreshToken locates the credential file, refreshes the stored token pair
// if it has expired (or force is set), and persists the result with a backup
// of the prior file written first.
func RefreshToken(args []string, r TokenRefresher, homeDir string, log Logger) {
	var opts refreshFlags

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	args, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatalf("%s", err)
	}

	if len(args) != 0 {
		log.Fatalf("Invalid arguments, expected 0, got %d.", len(args))
	}

	baseDir := opts.Dir
	if baseDir == "" {
		baseDir, err = os.Getwd()
		if err != nil {
			log.Fatalf("%s", err)
		}
	}

	path, ok := credfile.Locate(baseDir, homeDir)
	if !ok {
		log.Fatalf(
			"No credential file found. Searched:\n  %s",
			strings.Join(credfile.SearchPaths(baseDir, homeDir), "\n  "),
		)
	}
	log.Printf("Found credential file: %s", path)

	store, err := credfile.Load(path)
	if err != nil {
		log.Fatalf("Failed to load credential file: %s", err)
	}

	oauth, ok := store.OAuth()
	if !ok {
		log.Fatalf("No OAuth configuration found in %s.", path)
	}

	now := time.Now()
	expiresAt := oauth.ExpiresAt()
	expired := expiresAt == 0 || now.UnixMilli() > expiresAt

	log.Printf("Current time:  %s", now.Format(time.RFC3339))
	if expiresAt > 0 {
		log.Printf("Token expires: %s", time.UnixMilli(expiresAt).Format(time.RFC3339))
	}

	log.Printf("Token expired:  %v", expired)

	if !expired && !opts.Force {
		log.Printf("Token is still valid. Use --force to refresh anyway.")
		return
	}

	refreshToken := oauth.RefreshToken()
	if refreshToken == "" {
		log.Fatalf("No refresh token found in OAuth configuration.")
	}

	log.Printf("Refreshing OAuth token...")
	grant, err := r.Refresh(refreshToken)
	if err != nil {
		log.Fatalf("%s", err)
	}

	now = time.Now()
	store.Apply(oauth.Key, grant, now)
	if err := store.Save(); err != nil {
		log.Fatalf("%s", err)
	}
	log.Printf("Backup created: %s", credfile.BackupPath(path))

	expiresIn := grant.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}
	log.Printf("Token refresh successful.")
	log.Printf("New token expires: %s", now.Add(time.Duration(expiresIn)*time.Second).Format(time.RFC3339))
	log.Printf("Credential file updated: %s", path)
}
