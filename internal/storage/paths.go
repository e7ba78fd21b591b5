// Package storage persists solved problems so repeated runs skip the search.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessproblem"

// baseDirs lists, per OS, the environment variable naming the data root and
// the fallback below the home directory.
var baseDirs = map[string]struct {
	env      string
	fallback []string
}{
	"darwin":  {"", []string{"Library", "Application Support"}},
	"windows": {"APPDATA", []string{"AppData", "Roaming"}},
	"":        {"XDG_DATA_HOME", []string{".local", "share"}},
}

// GetDataDir returns the per-user data directory, creating it if needed.
func GetDataDir() (string, error) {
	dirs, ok := baseDirs[runtime.GOOS]
	if !ok {
		dirs = baseDirs[""]
	}

	base := ""
	if dirs.env != "" {
		base = os.Getenv(dirs.env)
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(append([]string{home}, dirs.fallback...)...)
	}

	dir := filepath.Join(base, appName)
	return dir, os.MkdirAll(dir, 0755)
}

// GetDatabaseDir returns the directory holding the solution database.
func GetDatabaseDir() (string, error) { return subDir("db") }

// GetDiagramDir returns the default directory for rendered diagrams.
func GetDiagramDir() (string, error) { return subDir("diagrams") }

func subDir(name string) (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(dataDir, name)
	return dir, os.MkdirAll(dir, 0755)
}
