package credfile

import (
	"os"
	"path/filepath"
)

// SearchPaths returns the candidate credential file paths in priority order:
// the base directory first, then the user's home directory.
func SearchPaths(baseDir, homeDir string) []string {
	return []string{
		filepath.Join(baseDir, ".claude", ".credentials.json"),
		filepath.Join(baseDir, ".claude.json"),
		filepath.Join(homeDir, ".claude", ".credentials.json"),
		filepath.Join(homeDir, ".claude.json"),
	}
}

// Locate returns the first candidate path that exists as a regular file.
func Locate(baseDir, homeDir string) (string, bool) {
	for _, p := range SearchPaths(baseDir, homeDir) {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			return p, true
		}
	}

	return "", false
}
