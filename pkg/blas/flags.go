// SPDX-License-Identifier: MPL-2.0

package blas

// Flag names a single boolean capability fact about a discovered
// library/header pair. The vocabulary is closed: downstream build tooling
// turns each true flag into a preprocessor define of the same name.
type Flag string

const (
	// HasMKL marks an Intel MKL library.
	HasMKL Flag = "HAS_MKL"
	// HasOpenBLAS marks an OpenBLAS library.
	HasOpenBLAS Flag = "HAS_OPENBLAS"
	// HasATLAS marks an ATLAS library.
	HasATLAS Flag = "HAS_ATLAS"
	// HasGSL marks a GNU Scientific Library CBLAS.
	HasGSL Flag = "HAS_GSL"
	// UnknownBLAS marks a library whose vendor could not be identified.
	UnknownBLAS Flag = "UNKNOWN_BLAS"

	// HasUnderscores marks FORTRAN-style symbols with a trailing
	// underscore (dgemm_).
	HasUnderscores Flag = "HAS_UNDERSCORES"
	// NoCBLAS marks the absence of the cblas_ API.
	NoCBLAS Flag = "NO_CBLAS"
	// HasCBLAS marks the presence of the cblas_ API.
	HasCBLAS Flag = "HAS_CBLAS"

	// NoCBLASHeader marks that no matching header was found at all.
	NoCBLASHeader Flag = "NO_CBLAS_HEADER"
	// MKLOwnInclCBLAS marks that MKL's cblas-only header (mkl_cblas.h)
	// was used instead of the mkl.h umbrella.
	MKLOwnInclCBLAS Flag = "MKL_OWN_INCL_CBLAS"
	// OpenBLASOwnIncl marks that OpenBLAS's own header
	// (cblas-openblas.h) was used.
	OpenBLASOwnIncl Flag = "OPENBLAS_OWN_INCL"
	// GSLOwnInclCBLAS marks that GSL's own header (gsl_cblas.h) was used.
	GSLOwnInclCBLAS Flag = "GSL_OWN_INCL_CBLAS"
	// InclCBLAS marks the vendor-agnostic cblas.h.
	InclCBLAS Flag = "INCL_CBLAS"
	// InclBLAS marks the vendor-agnostic blas.h (no cblas_ prototypes).
	InclBLAS Flag = "INCL_BLAS"
)

// allFlags is the canonical enumeration order, used wherever a FlagSet is
// rendered so output stays deterministic.
var allFlags = []Flag{
	HasMKL, HasOpenBLAS, HasATLAS, HasGSL, UnknownBLAS,
	HasUnderscores, NoCBLAS,
	NoCBLASHeader, MKLOwnInclCBLAS, OpenBLASOwnIncl, GSLOwnInclCBLAS,
	InclCBLAS, InclBLAS,
}

// vendorFlags are the mutually exclusive identity flags; exactly one of
// them is true in any derived FlagSet.
var vendorFlags = []Flag{HasMKL, HasOpenBLAS, HasATLAS, HasGSL, UnknownBLAS}

// FlagSet maps every flag of the closed vocabulary to its value. Order
// independent; use Enabled for a deterministic rendering.
type FlagSet map[Flag]bool

// NewFlagSet returns a FlagSet with every flag present and false.
func NewFlagSet() FlagSet {
	fs := make(FlagSet, len(allFlags))
	for _, f := range allFlags {
		fs[f] = false
	}
	return fs
}

// Enabled returns the true flags in canonical order.
func (fs FlagSet) Enabled() []Flag {
	var out []Flag
	for _, f := range allFlags {
		if fs[f] {
			out = append(out, f)
		}
	}
	return out
}

// Defines returns the true flags as preprocessor define names, in
// canonical order.
func (fs FlagSet) Defines() []string {
	enabled := fs.Enabled()
	out := make([]string, len(enabled))
	for i, f := range enabled {
		out[i] = string(f)
	}
	return out
}

// Vendor returns the single true vendor identity flag.
func (fs FlagSet) Vendor() Flag {
	for _, f := range vendorFlags {
		if fs[f] {
			return f
		}
	}
	return UnknownBLAS
}
