package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/foldergen-labs/foldergen/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyBase        = "base"
	KeyRoot        = "root"
	KeyCategories  = "categories"
	KeyPlaceholder = "placeholder"
	KeyCatalog     = "catalog"
	KeyLogLevel    = "log_level"
)

// Built-in defaults, matching the layout Unity projects expect.
const (
	DefaultBase        = "Assets"
	DefaultRoot        = "Client"
	DefaultCategories  = "all"
	DefaultPlaceholder = "RemoveMe.txt"
	DefaultLogLevel    = "info"
)

var defaults = map[string]string{
	KeyBase:        DefaultBase,
	KeyRoot:        DefaultRoot,
	KeyCategories:  DefaultCategories,
	KeyPlaceholder: DefaultPlaceholder,
	KeyCatalog:     "",
	KeyLogLevel:    DefaultLogLevel,
}

// Settings is a typed snapshot of the effective configuration.
type Settings struct {
	Base        string
	Root        string
	Categories  string
	Placeholder string
	Catalog     string
	LogLevel    string
}

// Dir returns the path to the config directory. FOLDERGEN_HOME overrides
// the default of ~/.foldergen. Without a home directory it falls back to the
// temp dir, never the working directory.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AllowEmptyEnv(true)
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Keys returns the known setting keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a recognised setting.
func IsKnownKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the effective settings.
func Current() Settings {
	return Settings{
		Base:        viper.GetString(KeyBase),
		Root:        viper.GetString(KeyRoot),
		Categories:  viper.GetString(KeyCategories),
		Placeholder: viper.GetString(KeyPlaceholder),
		Catalog:     viper.GetString(KeyCatalog),
		LogLevel:    viper.GetString(KeyLogLevel),
	}
}

// Set writes a config key-value pair and saves the config file. Only keys
// already in the file plus this one are written; defaults and environment
// overrides are never persisted.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()

	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Pick the new value up in the process-wide settings.
	Load()
	return nil
}
