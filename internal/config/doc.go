// Package config provides configuration structures and utilities for rmcatalog.
// Values are layered: defaults from NewConfig, then the .rmcatalog YAML file,
// then RMCATALOG_* environment variables, then explicitly set CLI flags.
package config
