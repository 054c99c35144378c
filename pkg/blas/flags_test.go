// SPDX-License-Identifier: MPL-2.0

package blas

import (
	"reflect"
	"testing"
)

func TestNewFlagSet_AllPresentAllFalse(t *testing.T) {
	fs := NewFlagSet()

	if len(fs) != len(allFlags) {
		t.Fatalf("NewFlagSet() has %d entries, want %d", len(fs), len(allFlags))
	}
	for _, f := range allFlags {
		v, ok := fs[f]
		if !ok {
			t.Errorf("flag %s missing", f)
		}
		if v {
			t.Errorf("flag %s true in zero set", f)
		}
	}
}

func TestFlagSet_EnabledCanonicalOrder(t *testing.T) {
	fs := NewFlagSet()
	fs[InclCBLAS] = true
	fs[HasOpenBLAS] = true
	fs[HasUnderscores] = true

	want := []Flag{HasOpenBLAS, HasUnderscores, InclCBLAS}
	if got := fs.Enabled(); !reflect.DeepEqual(got, want) {
		t.Errorf("Enabled() = %v, want %v", got, want)
	}
}

func TestFlagSet_Defines(t *testing.T) {
	fs := NewFlagSet()
	fs[HasMKL] = true
	fs[MKLOwnInclCBLAS] = true

	want := []string{"HAS_MKL", "MKL_OWN_INCL_CBLAS"}
	if got := fs.Defines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Defines() = %v, want %v", got, want)
	}
}

func TestFlagSet_Vendor(t *testing.T) {
	fs := NewFlagSet()
	fs[HasGSL] = true
	if got := fs.Vendor(); got != HasGSL {
		t.Errorf("Vendor() = %s, want %s", got, HasGSL)
	}

	empty := NewFlagSet()
	if got := empty.Vendor(); got != UnknownBLAS {
		t.Errorf("Vendor() on empty set = %s, want %s", got, UnknownBLAS)
	}
}

func TestDiscovery_Paths(t *testing.T) {
	d := Discovery{
		LibraryDir:  "/usr/lib",
		LibraryFile: "libopenblas.so",
		IncludeDir:  "/usr/include",
		IncludeFile: "cblas.h",
	}

	if got := d.LibraryPath(); got != "/usr/lib/libopenblas.so" {
		t.Errorf("LibraryPath() = %s", got)
	}
	if got := d.HeaderPath(); got != "/usr/include/cblas.h" {
		t.Errorf("HeaderPath() = %s", got)
	}

	degraded := Discovery{LibraryDir: "/usr/lib", LibraryFile: "libblas.so", Flags: NewFlagSet()}
	degraded.Flags[NoCBLASHeader] = true
	if got := degraded.HeaderPath(); got != "" {
		t.Errorf("HeaderPath() without header = %q, want empty", got)
	}
	if !degraded.Degraded() {
		t.Error("Degraded() = false for headerless discovery")
	}
}
