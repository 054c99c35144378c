// SPDX-License-Identifier: MPL-2.0

package headers

import (
	"os"
	"path/filepath"
	"strings"

	"blasfind-cli/internal/catalog"
	"blasfind-cli/pkg/blas"
)

// nameTier pairs a header filename with the kind recorded when it wins.
type nameTier struct {
	file string
	kind blas.HeaderKind
}

// Vendor-canonical header names, tried before the generic fallbacks.
// MKL's umbrella mkl.h outranks its cblas-only header; the distinction
// surfaces later as the MKL_OWN_INCL_CBLAS flag.
var vendorTiers = map[blas.Vendor][]nameTier{
	blas.VendorMKL: {
		{file: "mkl.h", kind: blas.HeaderVendorCanonical},
		{file: "mkl_cblas.h", kind: blas.HeaderVendorAlternate},
	},
	blas.VendorOpenBLAS: {
		{file: "cblas-openblas.h", kind: blas.HeaderVendorCanonical},
	},
	blas.VendorGSL: {
		{file: "gsl_cblas.h", kind: blas.HeaderVendorCanonical},
	},
}

var genericTiers = []nameTier{
	{file: "cblas.h", kind: blas.HeaderGenericCblas},
	{file: "blas.h", kind: blas.HeaderGenericBlas},
}

// Keywords a vendor's own header is expected to contain. Vendor-specific
// filenames are verified against these; generic filenames only need to
// look like a BLAS prototype listing.
var vendorKeywords = map[blas.Vendor][]string{
	blas.VendorMKL:      {"MKL"},
	blas.VendorOpenBLAS: {"openblas"},
	blas.VendorATLAS:    {"atlas", "ATLAS"},
	blas.VendorGSL:      {"GSL_CBLAS"},
}

var genericKeywords = []string{"cblas", "CBLAS", "ddot", "DDOT", "blas", "BLAS"}

// Resolver locates headers for one discovery run.
type Resolver struct {
	// ReadFile defaults to os.ReadFile; injectable for tests that do
	// not want to touch the disk.
	ReadFile func(path string) ([]byte, error)
}

func New() *Resolver {
	return &Resolver{ReadFile: os.ReadFile}
}

// Resolve searches for the best header for vendor, given the directory
// the library was found in and the include catalog. Name priority beats
// path priority: mkl.h anywhere wins over mkl_cblas.h in the best
// directory. cblasAssumed relaxes the keyword check for an unidentified
// vendor, mirroring the symbol report. A miss returns a zero HeaderMatch
// with HeaderNone, never an error.
func (r *Resolver) Resolve(vendor blas.Vendor, libDir string, includes catalog.IncludeCatalog, cblasAssumed bool) blas.HeaderMatch {
	dirs := searchDirs(vendor, libDir, includes)

	tiers := append(append([]nameTier{}, vendorTiers[vendor]...), genericTiers...)
	for _, tier := range tiers {
		keywords := r.keywordsFor(vendor, tier, cblasAssumed)
		for _, dir := range dirs {
			path := filepath.Join(dir, tier.file)
			content, err := r.ReadFile(path)
			if err != nil || !containsAny(string(content), keywords) {
				continue
			}
			return blas.HeaderMatch{Dir: dir, File: tier.file, Kind: tier.kind}
		}
	}
	return blas.HeaderMatch{Kind: blas.HeaderNone}
}

func (r *Resolver) keywordsFor(vendor blas.Vendor, tier nameTier, cblasAssumed bool) []string {
	if tier.kind == blas.HeaderVendorCanonical || tier.kind == blas.HeaderVendorAlternate {
		return vendorKeywords[vendor]
	}
	if vendor == blas.VendorUnknown && !cblasAssumed {
		// Without a CBLAS wrapper the header must mention the FORTRAN
		// interface; accepting on "cblas" alone would mispair them.
		return []string{"ddot", "DDOT"}
	}
	return genericKeywords
}

// searchDirs assembles the ordered include-search list: the library's own
// directory, its lib-to-include transforms, the vendor's known include
// dirs, then the system ones. Deduplicated, order preserved.
func searchDirs(vendor blas.Vendor, libDir string, includes catalog.IncludeCatalog) []string {
	dirs := []string{libDir}
	dirs = append(dirs, libToInclude(libDir)...)
	dirs = append(dirs, includes.PerVendor[vendor]...)
	dirs = append(dirs, includes.System...)

	out := make([]string, 0, len(dirs))
	seen := map[string]bool{}
	for _, dir := range dirs {
		if dir != "" && !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	return out
}

// libToInclude derives sibling include directories from a lib directory:
// /opt/x/lib -> /opt/x/include, /usr/lib/openblas -> /usr/include/openblas,
// and the conda-on-windows Library\bin -> Library\include hop.
func libToInclude(libDir string) []string {
	var out []string
	sep := string(filepath.Separator)

	dir, base := filepath.Split(filepath.Clean(libDir))
	switch base {
	case "lib", "lib64", "Lib":
		out = append(out, filepath.Join(dir, "include"))
	}

	for _, libComp := range []string{"lib", "lib64", "Lib"} {
		marker := sep + libComp + sep
		if idx := strings.LastIndex(libDir, marker); idx >= 0 {
			out = append(out,
				libDir[:idx]+sep+"include"+sep+libDir[idx+len(marker):],
				filepath.Join(libDir[:idx], "include"))
		}
	}

	if idx := strings.LastIndex(libDir, sep+"Library"+sep); idx >= 0 {
		root := libDir[:idx]
		out = append(out,
			filepath.Join(root, "Library", "include"),
			filepath.Join(root, "include"))
	}
	return out
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}
