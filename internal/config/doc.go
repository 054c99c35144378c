// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the blasfind configuration file.
//
// Configuration is TOML, resolved from a platform-specific directory
// (or an explicit --config path), with defaults applied through Viper.
package config
