// Package config loads unitypackage settings from defaults, an optional
// YAML file, a .env file and UNITYPACKAGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "unitypackage"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "UNITYPACKAGE"
	// ConfigFileName is the config file looked up in Dir().
	ConfigFileName = "config.yaml"
)

// Config holds settings shared by the subcommands. Command-line flags
// override these values.
type Config struct {
	Out          string   `mapstructure:"out"`
	Tmp          string   `mapstructure:"tmp"`
	Flatten      bool     `mapstructure:"flatten"`
	Include      []string `mapstructure:"include"`
	AssetsFolder string   `mapstructure:"assets_folder"`
	Unpacker     string   `mapstructure:"unpacker"`
	LogLevel     string   `mapstructure:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Out:          "out",
		AssetsFolder: DefaultAssetsFolder(),
		Unpacker:     "native",
		LogLevel:     "info",
	}
}

// Dir returns the per-user configuration directory for unitypackage.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultAssetsFolder returns the Unity Asset Store download cache for the
// current platform, or "" when the home directory is unknown.
func DefaultAssetsFolder() string {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, "Unity", "Asset Store-5.x")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Unity", "Asset Store-5.x")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".local", "share", "unity3d", "Asset Store-5.x")
	}
}

// Load resolves the configuration. A non-empty path must name a readable
// config file; otherwise Dir()/config.yaml is used if it exists. A .env file
// in the working directory is loaded first when present.
func Load(path string) (Config, error) {
	// Missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	defaults := Default()
	v.SetDefault("out", defaults.Out)
	v.SetDefault("tmp", defaults.Tmp)
	v.SetDefault("flatten", defaults.Flatten)
	v.SetDefault("include", defaults.Include)
	v.SetDefault("assets_folder", defaults.AssetsFolder)
	v.SetDefault("unpacker", defaults.Unpacker)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else if dir, err := Dir(); err == nil {
		v.SetConfigFile(filepath.Join(dir, ConfigFileName))
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Config{}, fmt.Errorf("loading config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
