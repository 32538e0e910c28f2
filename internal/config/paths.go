package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/autosync/internal/constants"
	"github.com/mrz1836/autosync/internal/errors"
)

// HomeEnvVar overrides the autosync home directory.
const HomeEnvVar = "AUTOSYNC_HOME"

// HomeDir returns the autosync home directory: $AUTOSYNC_HOME when set,
// ~/.autosync otherwise.
//
// Returns an error if the home directory cannot be determined.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AutosyncHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get global config path")
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// LogFilePath returns the path of the rotating log file.
func LogFilePath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get log file path")
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}
