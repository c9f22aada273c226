// Package config defines the application configuration structure and loads
// it from the environment. Configuration is grouped into server, database,
// auth and upload sections, each validated at startup so that a misconfigured
// deployment fails fast instead of at first request.
package config
