// SPDX-License-Identifier: MPL-2.0

package blas

// DeriveFlags combines vendor identity, symbol inspection and header
// resolution into the final capability flag set. Pure and total: no I/O,
// defined for every input combination, and deterministic, which keeps the
// classification testable without any filesystem or binary present.
//
// Exactly one vendor flag comes out true. NO_CBLAS is the negation of the
// (possibly assumed) CBLAS presence: an uninspected report never produces
// NO_CBLAS, on the grounds that wrongly advertising a missing API breaks
// builds while wrongly assuming it merely defers the failure to link time.
func DeriveFlags(vendor Vendor, symbols SymbolReport, header HeaderMatch) FlagSet {
	fs := NewFlagSet()

	fs[vendor.Flag()] = true

	fs[HasUnderscores] = symbols.HasTrailingUnderscore
	fs[NoCBLAS] = !symbols.CBLASAssumed()

	switch header.Kind {
	case HeaderVendorCanonical:
		switch vendor {
		case VendorOpenBLAS:
			fs[OpenBLASOwnIncl] = true
		case VendorGSL:
			fs[GSLOwnInclCBLAS] = true
		}
		// MKL's mkl.h umbrella needs no extra flag.
	case HeaderVendorAlternate:
		if vendor == VendorMKL {
			fs[MKLOwnInclCBLAS] = true
		}
	case HeaderGenericCblas:
		fs[InclCBLAS] = true
	case HeaderGenericBlas:
		fs[InclBLAS] = true
	case HeaderNone:
		fs[NoCBLASHeader] = true
	}

	return fs
}
