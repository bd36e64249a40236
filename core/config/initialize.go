package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into the directory and
// creates the state directories next to it. Existing files are left alone
// so re-running is safe.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), path, logger)
}

// InitializeFs is Initialize over an arbitrary filesystem, mostly for
// tests.
func InitializeFs(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)

	exists, err := afero.Exists(fsys, configPath)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Printf("Found existing %s, leaving it alone", ConfigurationName)
	} else {
		logger.Printf("Writing default %s", ConfigurationName)
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0644); err != nil {
			return nil, err
		}
	}

	logsDir := filepath.Join(path, SessionLogsDirName)
	logger.Printf("Creating %s", logsDir)
	if err := fsys.MkdirAll(logsDir, 0700); err != nil {
		return nil, err
	}

	return LoadFs(fsys, path)
}
