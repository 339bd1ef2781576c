// Package config provides functionality for loading and managing application configuration.
//
// This package defines the settings structs for database engines, request-scoped
// session handling and logging, validates them, and makes them accessible to the
// rest of the library. Settings can be loaded from a YAML file or from environment
// variables. It centralizes configuration management for easier modification and
// extension.
package config
