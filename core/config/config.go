package config

import (
	"reflect"
	"strings"

	"campaign-sync/core/database"
	"campaign-sync/core/logger"
	"campaign-sync/core/remote"
	"campaign-sync/core/server"
	"campaign-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the world store database.
	Database database.Config `mapstructure:"database"`
	// Remote holds configuration for the campaign service client.
	Remote remote.Config `mapstructure:"remote"`
	// Storage holds configuration for the image mirror.
	Storage storage.Config `mapstructure:"storage"`
	// Sync holds engine-level sync options.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds engine-level options for mapping and plan execution.
type SyncConfig struct {
	// Preset is the mapping preset name (e.g. "generic", "dnd5e").
	Preset string `mapstructure:"preset" default:"generic"`
	// RecapFolder is the world store folder derived recap records go into.
	RecapFolder string `mapstructure:"recap_folder" default:"Session Recaps"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists; missing files are fine (production).
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. REMOTE_BASE_URL -> remote.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values
// in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
