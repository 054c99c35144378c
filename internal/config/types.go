// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// OutputFlags prints the human-readable result card: library and
	// header paths, then the true capability flags one per line.
	OutputFlags OutputFormat = "flags"
	// OutputJSON prints the full discovery record as JSON.
	OutputJSON OutputFormat = "json"
	// OutputTOML prints the full discovery record as TOML.
	OutputTOML OutputFormat = "toml"

	// ToolchainAuto picks GNU-style arguments everywhere except windows.
	ToolchainAuto Toolchain = ""
	// ToolchainGNU emits -L/-l style linker arguments.
	ToolchainGNU Toolchain = "gnu"
	// ToolchainMSVC emits full library paths for the MSVC linker.
	ToolchainMSVC Toolchain = "msvc"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidToolchain is returned when a Toolchain value is not recognized.
	ErrInvalidToolchain = errors.New("invalid toolchain")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSearchPath is returned when a configured search path is whitespace-only.
	ErrInvalidSearchPath = errors.New("invalid search path")
)

type (
	// OutputFormat selects how discovery results are printed.
	OutputFormat string

	// InvalidOutputFormatError wraps ErrInvalidOutputFormat for errors.Is().
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// Toolchain selects the compiler/linker argument dialect.
	Toolchain string

	// InvalidToolchainError wraps ErrInvalidToolchain for errors.Is().
	InvalidToolchainError struct {
		Value Toolchain
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError wraps ErrInvalidColorScheme for errors.Is().
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// UIConfig holds terminal presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme"`
		Verbose     bool        `mapstructure:"verbose" toml:"verbose"`
	}

	// OutputConfig holds result rendering settings.
	OutputConfig struct {
		Format    OutputFormat `mapstructure:"format" toml:"format"`
		Toolchain Toolchain    `mapstructure:"toolchain" toml:"toolchain"`
	}

	// Config is the full blasfind configuration.
	Config struct {
		// SearchPaths are library directories searched before anything
		// the host environment contributes.
		SearchPaths []string `mapstructure:"search_paths" toml:"search_paths"`
		// IncludePaths are header directories consulted before the
		// system include dirs.
		IncludePaths []string `mapstructure:"include_paths" toml:"include_paths"`
		// PreferredLibrary pins a library file name to the top of the
		// ranking when set.
		PreferredLibrary string `mapstructure:"preferred_library" toml:"preferred_library"`
		// AllowUnidentified accepts a loose *blas* filename match whose
		// symbols cannot be inspected.
		AllowUnidentified bool `mapstructure:"allow_unidentified" toml:"allow_unidentified"`
		// SearchEphemeral expands overlay build trees found in
		// environment paths.
		SearchEphemeral bool `mapstructure:"search_ephemeral" toml:"search_ephemeral"`

		UI     UIConfig     `mapstructure:"ui" toml:"ui"`
		Output OutputConfig `mapstructure:"output" toml:"output"`
	}
)

func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: flags, json, toml)", string(e.Value))
}

func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

func (e *InvalidToolchainError) Error() string {
	return fmt.Sprintf("invalid toolchain %q (valid: gnu, msvc, or empty for auto)", string(e.Value))
}

func (e *InvalidToolchainError) Unwrap() error { return ErrInvalidToolchain }

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", string(e.Value))
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate checks the format against the closed set of values.
func (f OutputFormat) Validate() error {
	switch f {
	case OutputFlags, OutputJSON, OutputTOML:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// Validate checks the toolchain against the closed set of values.
func (tc Toolchain) Validate() error {
	switch tc {
	case ToolchainAuto, ToolchainGNU, ToolchainMSVC:
		return nil
	default:
		return &InvalidToolchainError{Value: tc}
	}
}

// Validate checks the color scheme against the closed set of values.
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: s}
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Output.Format.Validate(); err != nil {
		return err
	}
	if err := c.Output.Toolchain.Validate(); err != nil {
		return err
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		return err
	}
	for i, p := range c.SearchPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("search_paths[%d]: %w: empty or whitespace-only", i, ErrInvalidSearchPath)
		}
	}
	for i, p := range c.IncludePaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("include_paths[%d]: %w: empty or whitespace-only", i, ErrInvalidSearchPath)
		}
	}
	return nil
}

// DefaultConfig returns the built-in defaults. Ephemeral overlay trees
// are searched by default, matching the behavior during isolated builds.
func DefaultConfig() *Config {
	return &Config{
		SearchEphemeral: true,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Output: OutputConfig{
			Format:    OutputFlags,
			Toolchain: ToolchainAuto,
		},
	}
}
