// SPDX-License-Identifier: MPL-2.0

package match

import (
	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/platform"
)

// Specificity ranks, lower is better. Vendor-specific names always beat
// generic ones, and within a group the preferred linkage (dynamic on ELF
// and Mach-O, the .lib import library on Windows) beats the fallback
// linkage. The vendor offset inside a band follows blas.Vendors order.
const (
	rankVendorPreferred = 10
	rankVendorFallback  = 20
	rankGenericCblas    = 30
	rankGenericBlas     = 31
	rankLoosePreferred  = 40
	rankLooseFallback   = 41
)

// libraryRoots maps each vendor to the library root names it ships under.
// Versioned roots ("mkl_rt.2") are expanded per-OS by platform.FileName:
// ELF systems put the version after the extension (libmkl_rt.so.2), the
// others keep it in the name (mkl_rt.2.dll).
var libraryRoots = map[blas.Vendor][]string{
	blas.VendorMKL:      {"mkl_rt", "mkl_rt.2", "mkl_rt.1"},
	blas.VendorOpenBLAS: {"openblas", "openblas64", "openblas64_"},
	blas.VendorATLAS:    {"atlas", "tatlas", "satlas"},
	blas.VendorGSL:      {"gslcblas"},
}

// staticRoots restricts which roots are also searched as static archives;
// the 64-bit OpenBLAS variants only ship dynamically.
var staticRoots = map[blas.Vendor][]string{
	blas.VendorMKL:      {"mkl_rt", "mkl_rt.2", "mkl_rt.1"},
	blas.VendorOpenBLAS: {"openblas"},
	blas.VendorATLAS:    {"atlas", "tatlas", "satlas"},
	blas.VendorGSL:      {"gslcblas"},
}

// mingwImportRoots are vendors whose MinGW builds ship lib-prefixed
// import libraries (libopenblas.dll.a) alongside MSVC artifacts.
var mingwImportRoots = map[blas.Vendor][]string{
	blas.VendorOpenBLAS: {"openblas"},
	blas.VendorATLAS:    {"atlas"},
	blas.VendorGSL:      {"gslcblas"},
}

type rule struct {
	vendor     blas.Vendor
	rank       int
	confidence blas.Confidence
}

// buildExactTable assembles the exact file-name lookup for one OS family.
// Keys are folded with foldName so lookup semantics match the platform's
// filename case sensitivity.
func buildExactTable(goos string) map[string]rule {
	conv := platform.Conventions(goos)
	table := make(map[string]rule)

	add := func(name string, r rule) {
		key := foldName(goos, name)
		if _, exists := table[key]; !exists {
			table[key] = r
		}
	}

	// Vendor-specific names: preferred linkage band first.
	for i, vendor := range blas.Vendors {
		for _, root := range libraryRoots[vendor] {
			for _, ext := range preferredExts(conv, goos) {
				add(conv.FileName(goos, root, ext), rule{vendor, rankVendorPreferred + i, blas.FilenameConfirmed})
			}
		}
		if goos == platform.Windows {
			for _, root := range mingwImportRoots[vendor] {
				for _, ext := range conv.ImportExts {
					add("lib"+root+ext, rule{vendor, rankVendorPreferred + i, blas.FilenameConfirmed})
				}
			}
		}
		for _, root := range staticRoots[vendor] {
			for _, ext := range fallbackExts(conv, goos) {
				add(conv.FileName(goos, root, ext), rule{vendor, rankVendorFallback + i, blas.FilenameConfirmed})
			}
		}
	}

	// Generic names: any linkable extension, cblas before blas. Plain
	// "blas" also appears upper-cased on some case-sensitive systems.
	for _, ext := range conv.AllExts() {
		add(conv.Prefix+"cblas"+ext, rule{blas.VendorUnknown, rankGenericCblas, blas.Unconfirmed})
	}
	for _, ext := range conv.AllExts() {
		add(conv.Prefix+"blas"+ext, rule{blas.VendorUnknown, rankGenericBlas, blas.Unconfirmed})
		add(conv.Prefix+"BLAS"+ext, rule{blas.VendorUnknown, rankGenericBlas, blas.Unconfirmed})
	}

	return table
}

// preferredExts returns the first-tier extensions: on Windows only the
// MSVC import library links cleanly, elsewhere the dynamic objects.
func preferredExts(conv platform.LibraryConventions, goos string) []string {
	if goos == platform.Windows {
		return conv.DynamicExts[:1]
	}
	return conv.DynamicExts
}

// fallbackExts returns the second-tier extensions: the bare .dll on
// Windows, static archives elsewhere.
func fallbackExts(conv platform.LibraryConventions, goos string) []string {
	if goos == platform.Windows {
		return append(append([]string{}, conv.DynamicExts[1:]...), conv.StaticExts...)
	}
	return conv.StaticExts
}
