// SPDX-License-Identifier: MPL-2.0

package blas

// SymbolReport captures what a symbol-table inspection learned about a
// library. Produced once per candidate and never mutated afterwards.
type SymbolReport struct {
	// Inspected is false when no symbol-reading capability was available
	// on the host (or the binary format was unreadable). An uninspected
	// report is treated downstream as if the CBLAS API were present, so
	// that a missing tool never manufactures a NO_CBLAS flag.
	Inspected bool

	// HasCBLAS is true when any exported symbol carries the cblas_ prefix.
	HasCBLAS bool

	// HasTrailingUnderscore is true when FORTRAN-style entry points are
	// exported with a trailing underscore (ddot_, sgemm_). Independent of
	// HasCBLAS: a library may offer only underscore symbols and no CBLAS
	// wrapper at all.
	HasTrailingUnderscore bool

	// Fingerprint is a vendor identity recovered from vendor-specific
	// symbol names, VendorUnknown when none matched. A fingerprint may
	// override a vendor guess that came from a generic file name.
	Fingerprint Vendor
}

// CBLASAssumed reports whether callers should treat the CBLAS API as
// present: either it was seen, or inspection was impossible and the
// conservative assumption applies.
func (r SymbolReport) CBLASAssumed() bool {
	return !r.Inspected || r.HasCBLAS
}
