package project

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// AppConfig holds user defaults read from the TOML config file.
type AppConfig struct {
	Box    model.Params `toml:"box"`
	Solver SolverConfig `toml:"solver"`
	Export ExportConfig `toml:"export"`
}

// SolverConfig tunes the synthesis optimizer defaults.
type SolverConfig struct {
	EqualLengthWeight float64 `toml:"equal_length_weight"`
	Seed              int64   `toml:"seed"`
}

// ExportConfig configures the export collaborators.
type ExportConfig struct {
	// ShareBaseURL is prepended to the share string for the QR code on
	// the PDF template.
	ShareBaseURL string `toml:"share_base_url"`
}

// DefaultAppConfig returns the built-in defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Box: model.DefaultParams(),
		Solver: SolverConfig{
			EqualLengthWeight: 0,
			Seed:              42,
		},
		Export: ExportConfig{
			ShareBaseURL: "https://hugogrimmett.github.io/hinge-generator/?",
		},
	}
}

// DefaultConfigDir returns the directory for application configuration.
// On all platforms this is ~/.hingegen/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".hingegen")
}

// DefaultConfigPath returns the default path for the TOML config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// LoadAppConfig reads an AppConfig from the given path. A missing file
// yields the defaults with no error; a malformed file is an error.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return DefaultAppConfig(), err
	}
	return config, nil
}
