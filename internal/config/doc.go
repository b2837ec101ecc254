// Package config loads application configuration from environment
// variables and an optional YAML file. Environment variables use the
// HEALTH_ prefix and take precedence over the file.
package config
