// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestOutputFormat_Validate(t *testing.T) {
	for _, f := range []OutputFormat{OutputFlags, OutputJSON, OutputTOML} {
		if err := f.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", f, err)
		}
	}
	err := OutputFormat("yaml").Validate()
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Errorf("err = %v, want ErrInvalidOutputFormat", err)
	}
	var invalid *InvalidOutputFormatError
	if !errors.As(err, &invalid) || invalid.Value != "yaml" {
		t.Errorf("errors.As failed for %v", err)
	}
}

func TestToolchain_Validate(t *testing.T) {
	for _, tc := range []Toolchain{ToolchainAuto, ToolchainGNU, ToolchainMSVC} {
		if err := tc.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tc, err)
		}
	}
	if err := Toolchain("clang").Validate(); !errors.Is(err, ErrInvalidToolchain) {
		t.Errorf("err = %v, want ErrInvalidToolchain", err)
	}
}

func TestColorScheme_Validate(t *testing.T) {
	if err := ColorScheme("sepia").Validate(); !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("err = %v, want ErrInvalidColorScheme", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.SearchPaths = []string{"/ok", "   "}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidSearchPath) {
		t.Errorf("err = %v, want ErrInvalidSearchPath", err)
	}

	cfg = DefaultConfig()
	cfg.Output.Toolchain = "clang"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidToolchain) {
		t.Errorf("err = %v, want ErrInvalidToolchain", err)
	}
}
