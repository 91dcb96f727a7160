// Package config loads application configuration from an optional YAML
// file and CPI_-prefixed environment variables, with environment values
// taking precedence.
package config
