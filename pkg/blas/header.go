// SPDX-License-Identifier: MPL-2.0

package blas

import "path/filepath"

// HeaderKind classifies which tier of the header search produced a match.
type HeaderKind int

const (
	// HeaderNone means no header was found anywhere; the caller must
	// supply its own prototypes.
	HeaderNone HeaderKind = iota
	// HeaderVendorCanonical is the vendor's primary header (mkl.h,
	// cblas-openblas.h, gsl_cblas.h).
	HeaderVendorCanonical
	// HeaderVendorAlternate is a vendor's secondary cblas-only header
	// (mkl_cblas.h instead of the mkl.h umbrella).
	HeaderVendorAlternate
	// HeaderGenericCblas is the vendor-agnostic cblas.h.
	HeaderGenericCblas
	// HeaderGenericBlas is the vendor-agnostic blas.h, which carries no
	// cblas_ prototypes.
	HeaderGenericBlas
)

// String returns a human-readable kind label.
func (k HeaderKind) String() string {
	switch k {
	case HeaderVendorCanonical:
		return "vendor canonical"
	case HeaderVendorAlternate:
		return "vendor cblas-only"
	case HeaderGenericCblas:
		return "generic cblas.h"
	case HeaderGenericBlas:
		return "generic blas.h"
	default:
		return "none"
	}
}

// HeaderMatch pairs a resolved include file with its search tier.
// The zero value means no header was found.
type HeaderMatch struct {
	// Dir is the include directory containing the header.
	Dir string
	// File is the header file name (e.g. "cblas.h").
	File string
	// Kind records which search tier matched.
	Kind HeaderKind
}

// Found reports whether a header was resolved.
func (m HeaderMatch) Found() bool {
	return m.Kind != HeaderNone
}

// Path returns the full header path, or "" when no header was found.
func (m HeaderMatch) Path() string {
	if !m.Found() {
		return ""
	}
	return filepath.Join(m.Dir, m.File)
}
