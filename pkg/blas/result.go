// SPDX-License-Identifier: MPL-2.0

package blas

import "path/filepath"

// Discovery is the terminal record of a successful discovery run: a pure
// immutable value handed to build-integration tooling. Exactly one is
// produced per invocation and it has no further lifecycle.
type Discovery struct {
	// LibraryDir is the directory the library file was found in.
	LibraryDir string `json:"library_dir" toml:"library_dir"`
	// LibraryFile is the library file name (e.g. "libopenblas.so").
	LibraryFile string `json:"library_file" toml:"library_file"`
	// IncludeDir is the directory of the matching header, "" when none.
	IncludeDir string `json:"include_dir,omitempty" toml:"include_dir,omitempty"`
	// IncludeFile is the header file name, "" when none.
	IncludeFile string `json:"include_file,omitempty" toml:"include_file,omitempty"`

	// Vendor is the final vendor identity.
	Vendor Vendor `json:"-" toml:"-"`
	// Confidence records how the identity was established.
	Confidence Confidence `json:"-" toml:"-"`
	// Symbols is the symbol report the flags were derived from.
	Symbols SymbolReport `json:"-" toml:"-"`
	// HeaderKind records which header search tier matched.
	HeaderKind HeaderKind `json:"-" toml:"-"`

	// Flags is the derived capability flag set.
	Flags FlagSet `json:"flags" toml:"flags"`
}

// LibraryPath returns the full path of the discovered library file.
func (d Discovery) LibraryPath() string {
	return filepath.Join(d.LibraryDir, d.LibraryFile)
}

// HeaderPath returns the full path of the resolved header, or "" when the
// discovery is degraded (no header anywhere).
func (d Discovery) HeaderPath() string {
	if d.IncludeFile == "" {
		return ""
	}
	return filepath.Join(d.IncludeDir, d.IncludeFile)
}

// Degraded reports whether the discovery completed without a usable
// header. A warning-level outcome, not an error: callers may supply
// hand-written prototypes.
func (d Discovery) Degraded() bool {
	return d.Flags[NoCBLASHeader]
}
