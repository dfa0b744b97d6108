// Package config loads the service configuration from defaults, an optional
// YAML file and CHATHY_-prefixed environment variables, in that order.
package config
