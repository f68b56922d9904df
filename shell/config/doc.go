// Package config loads runtime configuration from the environment and builds
// the database handles the store engine constructors accept.
package config
