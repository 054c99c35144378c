// SPDX-License-Identifier: MPL-2.0

package headers

import (
	"os"
	"path/filepath"
	"testing"

	"blasfind-cli/internal/catalog"
	"blasfind-cli/pkg/blas"
)

func writeHeader(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_SiblingIncludeGenericCblas(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "lib")
	incDir := filepath.Join(root, "include")
	writeHeader(t, incDir, "cblas.h", "double cblas_ddot(const int N, ...);\n")
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}

	got := New().Resolve(blas.VendorOpenBLAS, libDir, catalog.IncludeCatalog{}, true)
	want := blas.HeaderMatch{Dir: incDir, File: "cblas.h", Kind: blas.HeaderGenericCblas}
	if got != want {
		t.Errorf("Resolve = %+v, want %+v", got, want)
	}
}

func TestResolve_VendorCanonicalWinsOverGeneric(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "lib")
	incDir := filepath.Join(root, "include")
	writeHeader(t, incDir, "cblas.h", "double cblas_ddot();\n")
	writeHeader(t, incDir, "mkl.h", "#include \"mkl_cblas.h\" /* Intel MKL umbrella */ MKL\n")
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}

	got := New().Resolve(blas.VendorMKL, libDir, catalog.IncludeCatalog{}, true)
	if got.File != "mkl.h" || got.Kind != blas.HeaderVendorCanonical {
		t.Errorf("Resolve = %+v, want mkl.h canonical", got)
	}
}

func TestResolve_NamePriorityBeatsPathPriority(t *testing.T) {
	// mkl.h sits in a later directory than mkl_cblas.h; the umbrella
	// name still wins.
	early := t.TempDir()
	late := t.TempDir()
	writeHeader(t, early, "mkl_cblas.h", "MKL cblas declarations\n")
	writeHeader(t, late, "mkl.h", "MKL umbrella\n")

	includes := catalog.IncludeCatalog{
		PerVendor: map[blas.Vendor][]string{blas.VendorMKL: {early, late}},
	}
	got := New().Resolve(blas.VendorMKL, t.TempDir(), includes, true)
	if got.File != "mkl.h" || got.Dir != late {
		t.Errorf("Resolve = %+v, want mkl.h from the later dir", got)
	}
}

func TestResolve_MKLAlternateHeader(t *testing.T) {
	inc := t.TempDir()
	writeHeader(t, inc, "mkl_cblas.h", "MKL cblas-only header\n")

	includes := catalog.IncludeCatalog{
		PerVendor: map[blas.Vendor][]string{blas.VendorMKL: {inc}},
	}
	got := New().Resolve(blas.VendorMKL, t.TempDir(), includes, true)
	if got.Kind != blas.HeaderVendorAlternate {
		t.Errorf("kind = %s, want vendor-alternate", got.Kind)
	}
}

func TestResolve_KeywordRejectsImpostor(t *testing.T) {
	inc := t.TempDir()
	// Right name, unrelated content: must not match, and with nothing
	// else present the result is HeaderNone.
	writeHeader(t, inc, "gsl_cblas.h", "totally unrelated file\n")

	includes := catalog.IncludeCatalog{
		PerVendor: map[blas.Vendor][]string{blas.VendorGSL: {inc}},
	}
	got := New().Resolve(blas.VendorGSL, t.TempDir(), includes, true)
	if got.Found() || got.Kind != blas.HeaderNone {
		t.Errorf("Resolve = %+v, want none", got)
	}
}

func TestResolve_UnknownVendorWithoutCBLASNeedsFortranKeyword(t *testing.T) {
	inc := t.TempDir()
	writeHeader(t, inc, "blas.h", "void ddot_(const int *n, ...);\n")
	writeHeader(t, inc, "cblas.h", "double cblas_ddot();\n")

	includes := catalog.IncludeCatalog{System: []string{inc}}

	// CBLAS absent: cblas.h contains "ddot" so it still wins the name
	// tier, which is fine; but a cblas.h with no FORTRAN mention loses.
	got := New().Resolve(blas.VendorUnknown, t.TempDir(), includes, false)
	if got.File != "cblas.h" {
		t.Errorf("file = %s, want cblas.h", got.File)
	}

	writeHeader(t, inc, "cblas.h", "enum CBLAS_ORDER {CblasRowMajor=101};\n")
	got = New().Resolve(blas.VendorUnknown, t.TempDir(), includes, false)
	if got.File != "blas.h" || got.Kind != blas.HeaderGenericBlas {
		t.Errorf("Resolve = %+v, want blas.h generic", got)
	}
}

func TestResolve_NoHeaderAnywhere(t *testing.T) {
	got := New().Resolve(blas.VendorOpenBLAS, t.TempDir(), catalog.IncludeCatalog{}, true)
	if got.Found() {
		t.Errorf("Resolve = %+v, want not found", got)
	}
	if got.Path() != "" {
		t.Errorf("Path() = %q, want empty", got.Path())
	}
}

func TestLibToInclude(t *testing.T) {
	sep := string(filepath.Separator)
	join := func(parts ...string) string { return filepath.Join(parts...) }

	tests := []struct {
		libDir string
		want   []string
	}{
		{
			libDir: join(sep, "opt", "x", "lib"),
			want:   []string{join(sep, "opt", "x", "include")},
		},
		{
			libDir: join(sep, "usr", "lib", "openblas"),
			want: []string{
				sep + join("usr", "include", "openblas"),
				join(sep, "usr", "include"),
			},
		},
		{
			libDir: join(sep, "usr", "lib64"),
			want:   []string{join(sep, "usr", "include")},
		},
	}
	for _, tt := range tests {
		got := libToInclude(tt.libDir)
		for _, want := range tt.want {
			found := false
			for _, g := range got {
				if g == want {
					found = true
				}
			}
			if !found {
				t.Errorf("libToInclude(%q) = %v, missing %q", tt.libDir, got, want)
			}
		}
	}
}

func TestSearchDirs_LibraryDirFirstAndDeduped(t *testing.T) {
	sep := string(filepath.Separator)
	libDir := filepath.Join(sep, "opt", "blas", "lib")
	inc := filepath.Join(sep, "opt", "blas", "include")
	includes := catalog.IncludeCatalog{
		System:    []string{inc, filepath.Join(sep, "usr", "include")},
		PerVendor: map[blas.Vendor][]string{blas.VendorGSL: {inc}},
	}

	dirs := searchDirs(blas.VendorGSL, libDir, includes)
	if dirs[0] != libDir {
		t.Errorf("dirs[0] = %s, want the library dir", dirs[0])
	}
	count := 0
	for _, d := range dirs {
		if d == inc {
			count++
		}
	}
	if count != 1 {
		t.Errorf("%s appears %d times in %v", inc, count, dirs)
	}
}
