// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"context"
	"strings"

	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/platform"
)

// SymbolReader extracts the exported symbol names of a shared library.
// Implementations report an error when they cannot handle the file or the
// host lacks the capability; the probe then falls through to the next
// reader.
type SymbolReader interface {
	Name() string
	Symbols(ctx context.Context, path string) ([]string, error)
}

// Result is the outcome of inspecting one candidate.
type Result struct {
	Report blas.SymbolReport
	// Recognized reports whether the symbol table contained anything
	// that identifies the file as a BLAS implementation. Loose filename
	// matches are only trusted when this is true.
	Recognized bool
	// Reader names the reader that produced the report, empty when none
	// succeeded.
	Reader string
}

// Probe runs symbol inspection with an ordered list of readers.
type Probe struct {
	readers []SymbolReader
}

// New builds the probe for a host OS. On windows no reader is configured:
// DLL export tables are not inspected and every report is conservative.
func New(goos string) *Probe {
	if goos == platform.Windows {
		return &Probe{}
	}
	return &Probe{readers: []SymbolReader{
		elfReader{},
		newToolReader("nm", []string{"-D", "--defined-only"}, parseNM),
		newToolReader("readelf", []string{"-s", "--wide"}, parseReadelf),
	}}
}

// NewWithReaders is the injection point for tests.
func NewWithReaders(readers ...SymbolReader) *Probe {
	return &Probe{readers: readers}
}

// Inspect tries each reader in order and classifies the first symbol list
// obtained. When every reader fails, the returned report is marked
// uninspected, which downstream code treats as "CBLAS assumed present".
func (p *Probe) Inspect(ctx context.Context, path string) Result {
	for _, reader := range p.readers {
		symbols, err := reader.Symbols(ctx, path)
		if err != nil {
			continue
		}
		res := classify(symbols)
		res.Reader = reader.Name()
		return res
	}
	return Result{}
}

// FORTRAN-style routine roots used for underscore detection. A library
// exporting one of these with a trailing underscore was built with the
// usual FORTRAN name mangling.
var fortranRoots = []string{"ddot", "sgemm", "dgemm", "daxpy", "dnrm2"}

// classify derives the symbol report from a list of exported names.
// Vendor fingerprints take precedence over anything filename matching
// guessed: an "openblas" substring or the mkl_dcsrgemv sparse kernel
// identifies the vendor outright.
func classify(symbols []string) Result {
	report := blas.SymbolReport{Inspected: true}
	recognized := false

	for _, sym := range symbols {
		lower := strings.ToLower(sym)
		switch {
		case strings.Contains(lower, "openblas"):
			report.Fingerprint = blas.VendorOpenBLAS
			// OpenBLAS always carries the underscore aliases.
			report.HasTrailingUnderscore = true
			recognized = true
		case strings.Contains(lower, "mkl_dcsrgemv"):
			if report.Fingerprint == blas.VendorUnknown {
				report.Fingerprint = blas.VendorMKL
			}
			recognized = true
		}
		if strings.HasPrefix(sym, "cblas_") {
			report.HasCBLAS = true
			recognized = true
		}
		for _, root := range fortranRoots {
			if sym == root+"_" {
				report.HasTrailingUnderscore = true
				recognized = true
			}
			if lower == root {
				recognized = true
			}
		}
	}

	return Result{Report: report, Recognized: recognized}
}
