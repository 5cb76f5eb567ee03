package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	appDirName     = "efb-connector"
	configFileName = "config.json"
)

// DefaultConfigPaths returns the config search order: the working directory
// first, then ~/.config/efb-connector. The home path is fixed on every
// platform and ignores XDG_CONFIG_HOME.
func DefaultConfigPaths() []string {
	paths := []string{configFileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDirName, configFileName))
	}
	return paths
}

func EnsureOutputDir(dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func GPXFileName(activityID int64) string {
	return "activity_" + strconv.FormatInt(activityID, 10) + ".gpx"
}

func GPXPath(dir string, activityID int64) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, GPXFileName(activityID))
}
