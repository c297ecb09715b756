// Package config aggregates the partial configurations of every component
// into one application Config.
//
// Configuration is sourced from environment variables, optionally seeded by a
// .env file. Defaults come from `default` struct tags bound through
// reflection, so every key is registered with Viper before AutomaticEnv
// resolution. Nested keys map to underscore-separated environment variables
// (remote.base_url -> REMOTE_BASE_URL).
package config
