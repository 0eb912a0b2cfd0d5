// Package config defines the settings structs for all binaries and the
// viper-based loaders that populate them from YAML files and environment
// variables. Every settings struct validates itself with go-playground/validator.
package config
