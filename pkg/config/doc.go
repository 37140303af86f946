// Package config handles configuration management for mvi.
// It layers the embedded defaults, the user's config file, an explicit
// --config file, MVI_* environment variables and command-line flags.
package config
