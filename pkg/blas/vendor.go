// SPDX-License-Identifier: MPL-2.0

package blas

// Vendor identifies which BLAS implementation supplies a library.
// The enumeration is closed; a library from anyone else is VendorUnknown.
type Vendor int

const (
	// VendorUnknown means the implementation could not be identified.
	VendorUnknown Vendor = iota
	// VendorMKL is Intel's Math Kernel Library (oneMKL).
	VendorMKL
	// VendorOpenBLAS is the OpenBLAS project.
	VendorOpenBLAS
	// VendorATLAS is Automatically Tuned Linear Algebra Software.
	VendorATLAS
	// VendorGSL is the GNU Scientific Library's CBLAS.
	VendorGSL
)

// Vendors lists every identity in ranking order: when two libraries are
// found with the same linkage, the earlier vendor wins (MKL is assumed
// fastest, the GSL reference implementation slowest).
var Vendors = []Vendor{VendorMKL, VendorOpenBLAS, VendorATLAS, VendorGSL}

// String returns a human-readable vendor name.
func (v Vendor) String() string {
	switch v {
	case VendorMKL:
		return "MKL"
	case VendorOpenBLAS:
		return "OpenBLAS"
	case VendorATLAS:
		return "ATLAS"
	case VendorGSL:
		return "GSL"
	default:
		return "unknown"
	}
}

// Flag returns the capability flag asserting this vendor identity.
func (v Vendor) Flag() Flag {
	switch v {
	case VendorMKL:
		return HasMKL
	case VendorOpenBLAS:
		return HasOpenBLAS
	case VendorATLAS:
		return HasATLAS
	case VendorGSL:
		return HasGSL
	default:
		return UnknownBLAS
	}
}

// Confidence records how a candidate's vendor identity was established.
type Confidence int

const (
	// Unconfirmed means neither the file name nor the symbol table
	// identified the vendor.
	Unconfirmed Confidence = iota
	// FilenameConfirmed means a vendor-specific file name pattern matched.
	FilenameConfirmed
	// SymbolConfirmed means the symbol table carried a vendor fingerprint
	// or standard BLAS entry points.
	SymbolConfirmed
)

// String returns a human-readable confidence label.
func (c Confidence) String() string {
	switch c {
	case FilenameConfirmed:
		return "filename"
	case SymbolConfirmed:
		return "symbols"
	default:
		return "unconfirmed"
	}
}
