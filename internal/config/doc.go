// Package config loads, defaults and validates the service configuration.
// Values come from an optional YAML file and from LEXI_-prefixed environment
// variables, which take precedence.
package config
