// SPDX-License-Identifier: MPL-2.0

package buildargs

import (
	"errors"
	"path/filepath"
	"strings"

	"blasfind-cli/internal/issue"
	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/platform"
)

// Toolchain selects the linker argument dialect.
type Toolchain string

const (
	// GNU emits "-L dir" plus "-l:file" arguments, the form GCC and
	// Clang understand, which pins the exact file instead of letting the
	// linker pick a lexically close one.
	GNU Toolchain = "gnu"
	// MSVC emits the full library path; the Visual Studio linker takes
	// .lib files directly.
	MSVC Toolchain = "msvc"
)

// DefaultToolchain returns the customary toolchain of an OS family.
func DefaultToolchain(goos string) Toolchain {
	if goos == platform.Windows {
		return MSVC
	}
	return GNU
}

var (
	// ErrNoCBLAS reports a library without the CBLAS interface; code
	// written against the CBLAS API cannot link it.
	ErrNoCBLAS = errors.New("library exposes no CBLAS interface")
	// ErrImportLibMissing reports a windows DLL without the .lib import
	// library MSVC needs to link against it.
	ErrImportLibMissing = errors.New("import library (.lib) missing for DLL")
)

const headerWarning = "No CBLAS headers were found - function prototypes might be unreliable."

// Args is everything a build integration needs to compile and link
// against the discovered BLAS.
type Args struct {
	// IncludeDirs feed -I / /I.
	IncludeDirs []string
	// LinkArgs feed the linker, already in the toolchain's dialect.
	LinkArgs []string
	// Defines are the names of the true capability flags, to be passed
	// as preprocessor definitions without a value.
	Defines []string
	// Warnings are advisory messages for the person running the build.
	Warnings []string
}

// Derive computes build arguments from a discovery result.
//
// It rejects results that cannot back a CBLAS build: a library with no
// CBLAS symbols, and windows DLLs that lack the import library MSVC
// links against (the lone exception being OpenBLAS builds, whose MinGW
// DLLs are directly linkable).
func Derive(d *blas.Discovery, tc Toolchain) (Args, error) {
	if d.Flags[blas.NoCBLAS] {
		return Args{}, issue.NewErrorContext().
			WithOperation("derive build arguments").
			WithResource(d.LibraryPath()).
			WithSuggestion("Install a CBLAS-capable library, e.g. 'pip install mkl mkl-devel'").
			WithSuggestion("On Debian/Ubuntu: 'sudo apt install libopenblas-dev'").
			Wrap(ErrNoCBLAS).
			BuildError()
	}
	if strings.EqualFold(d.LibraryFile, "mkl_rt.dll") {
		return Args{}, issue.NewErrorContext().
			WithOperation("derive build arguments").
			WithResource(d.LibraryPath()).
			WithSuggestion("Install the MKL development files with 'pip install mkl-devel'").
			Wrap(ErrImportLibMissing).
			BuildError()
	}
	if isBareDLL(d.LibraryFile) && !strings.Contains(strings.ToLower(d.LibraryFile), "libopenblas") {
		return Args{}, issue.NewErrorContext().
			WithOperation("derive build arguments").
			WithResource(d.LibraryPath()).
			WithSuggestion("Install the package's development files to get the .lib import library").
			Wrap(ErrImportLibMissing).
			BuildError()
	}

	args := Args{Defines: d.Flags.Defines()}

	switch tc {
	case MSVC:
		args.LinkArgs = []string{d.LibraryPath()}
	default:
		args.LinkArgs = []string{"-L" + d.LibraryDir, "-l:" + d.LibraryFile}
	}

	if d.IncludeDir != "" {
		args.IncludeDirs = []string{d.IncludeDir}
	}
	if d.Flags[blas.InclBLAS] || d.Flags[blas.NoCBLASHeader] {
		args.Warnings = []string{headerWarning}
	}
	return args, nil
}

// ForDocs returns the argument set for documentation-only builds, which
// compile against the bundled no-op stub header instead of a real BLAS.
func ForDocs() Args {
	return Args{Defines: []string{"_FOR_RTD"}}
}

// CFlags renders compiler arguments: include dirs then defines.
func (a Args) CFlags() string {
	parts := make([]string, 0, len(a.IncludeDirs)+len(a.Defines))
	for _, dir := range a.IncludeDirs {
		parts = append(parts, "-I"+dir)
	}
	for _, def := range a.Defines {
		parts = append(parts, "-D"+def)
	}
	return strings.Join(parts, " ")
}

// LDFlags renders the linker arguments.
func (a Args) LDFlags() string {
	return strings.Join(a.LinkArgs, " ")
}

func isBareDLL(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".dll")
}
