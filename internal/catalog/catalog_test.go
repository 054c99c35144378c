// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/platform"
)

type fixture struct {
	env      map[string]string
	existing map[string]bool
	listings map[string][]string
}

func (f fixture) options(goos string) Options {
	return Options{
		GOOS:      goos,
		Env:       func(key string) string { return f.env[key] },
		DirExists: func(path string) bool { return f.existing[path] },
		ListDir:   func(path string) []string { return f.listings[path] },
	}
}

func indexOf(dirs []string, dir string) int {
	for i, d := range dirs {
		if d == dir {
			return i
		}
	}
	return -1
}

func TestBuild_OverridesComeFirst(t *testing.T) {
	f := fixture{
		env:      map[string]string{"PATH": "/env/bin"},
		existing: map[string]bool{"/custom/blas": true, "/env/bin": true, "/usr/lib": true},
	}
	opts := f.options(platform.Linux)
	opts.Overrides = []string{"/custom/blas"}

	c := Build(opts)
	want := []string{"/custom/blas", "/env/bin", "/usr/lib"}
	if !reflect.DeepEqual(c.LibraryDirs, want) {
		t.Errorf("LibraryDirs = %v, want %v", c.LibraryDirs, want)
	}
}

func TestBuild_CondaPrefixBeforeSystem(t *testing.T) {
	f := fixture{
		env: map[string]string{"CONDA_PREFIX": "/opt/conda"},
		existing: map[string]bool{
			"/opt/conda/lib": true,
			"/usr/lib":       true,
		},
	}
	c := Build(f.options(platform.Linux))

	conda, system := indexOf(c.LibraryDirs, "/opt/conda/lib"), indexOf(c.LibraryDirs, "/usr/lib")
	if conda < 0 || system < 0 || conda > system {
		t.Errorf("conda lib at %d, /usr/lib at %d; want conda first in %v", conda, system, c.LibraryDirs)
	}
	if got := c.Includes.System; indexOf(got, "/opt/conda/include") != 0 {
		t.Errorf("system includes = %v, want /opt/conda/include first", got)
	}
}

func TestBuild_DedupKeepsFirstOccurrence(t *testing.T) {
	f := fixture{
		env:      map[string]string{"PATH": "/usr/lib:/usr/lib"},
		existing: map[string]bool{"/usr/lib": true},
	}
	c := Build(f.options(platform.Linux))

	count := 0
	for _, dir := range c.LibraryDirs {
		if dir == "/usr/lib" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("/usr/lib appears %d times in %v", count, c.LibraryDirs)
	}
	// PATH entries outrank generic system dirs, so the early occurrence
	// is the one kept.
	if c.LibraryDirs[0] != "/usr/lib" {
		t.Errorf("LibraryDirs[0] = %s, want /usr/lib", c.LibraryDirs[0])
	}
}

func TestBuild_MissingDirsDropped(t *testing.T) {
	f := fixture{existing: map[string]bool{}}
	c := Build(f.options(platform.Linux))
	if len(c.LibraryDirs) != 0 {
		t.Errorf("LibraryDirs = %v, want empty on a host with no dirs", c.LibraryDirs)
	}
}

func TestBuild_VendorSubdirExpansion(t *testing.T) {
	f := fixture{
		existing: map[string]bool{
			"/usr/lib64":                 true,
			"/usr/lib64/openblas-openmp": true,
			"/usr/lib64/atlas":           true,
		},
	}
	c := Build(f.options(platform.Linux))

	parent := indexOf(c.LibraryDirs, "/usr/lib64")
	nested := indexOf(c.LibraryDirs, "/usr/lib64/openblas-openmp")
	if parent < 0 || nested != parent+1 {
		t.Errorf("nested dir not right after parent: %v", c.LibraryDirs)
	}
}

func TestBuild_EphemeralOverlayGated(t *testing.T) {
	overlay := "/tmp/pip-build-env-abc/overlay"
	f := fixture{
		env: map[string]string{"PATH": overlay + "/bin"},
		existing: map[string]bool{
			overlay + "/bin":          true,
			overlay + "/lib":          true,
			overlay + "/lib/openblas": true,
		},
	}

	c := Build(f.options(platform.Linux))
	if indexOf(c.LibraryDirs, overlay+"/lib") >= 0 {
		t.Fatalf("overlay expanded without SearchEphemeral: %v", c.LibraryDirs)
	}

	opts := f.options(platform.Linux)
	opts.SearchEphemeral = true
	c = Build(opts)
	if indexOf(c.LibraryDirs, overlay+"/lib") < 0 {
		t.Errorf("overlay lib missing: %v", c.LibraryDirs)
	}
	if indexOf(c.LibraryDirs, overlay+"/lib/openblas") < 0 {
		t.Errorf("overlay vendor subdir missing: %v", c.LibraryDirs)
	}
	if indexOf(c.Includes.PerVendor[blas.VendorOpenBLAS], overlay+"/lib/openblas/include") < 0 {
		t.Errorf("overlay openblas include missing: %v", c.Includes.PerVendor[blas.VendorOpenBLAS])
	}
}

func TestOverlayRoot(t *testing.T) {
	tests := []struct {
		path string
		root string
		ok   bool
	}{
		{"/tmp/pip-build-env-x/overlay/bin", "/tmp/pip-build-env-x/overlay", true},
		{"/tmp/pip-build-env-x/Overlay/lib", "/tmp/pip-build-env-x/Overlay", true},
		{"/tmp/pip-build-env-x/overlay", "/tmp/pip-build-env-x/overlay", true},
		{"/tmp/overlayed/bin", "", false},
		{"/usr/lib", "", false},
	}
	for _, tt := range tests {
		root, ok := overlayRoot(tt.path)
		if root != tt.root || ok != tt.ok {
			t.Errorf("overlayRoot(%q) = (%q, %v), want (%q, %v)", tt.path, root, ok, tt.root, tt.ok)
		}
	}
}

func TestBuild_WindowsCondaLibraryBin(t *testing.T) {
	// Paths are joined with the host separator so the expectations are
	// built the same way.
	condaBin := filepath.Join(`C:\conda`, "Library", "bin")
	condaLib := filepath.Join(`C:\conda`, "Library", "lib")
	system32 := filepath.Join(`C:\Windows`, "System32")
	f := fixture{
		env: map[string]string{
			"CONDA_PREFIX": `C:\conda`,
			"SystemRoot":   `C:\Windows`,
		},
		existing: map[string]bool{condaBin: true, condaLib: true, system32: true},
	}
	c := Build(f.options(platform.Windows))

	bin := indexOf(c.LibraryDirs, condaBin)
	sys32 := indexOf(c.LibraryDirs, system32)
	if bin != 0 {
		t.Errorf("Library bin at %d, want 0: %v", bin, c.LibraryDirs)
	}
	if sys32 < bin {
		t.Errorf("System32 at %d, want after conda dirs: %v", sys32, c.LibraryDirs)
	}
}

func TestBuild_IntelSWTools(t *testing.T) {
	pf := `C:\Program Files (x86)`
	base := filepath.Join(pf, "IntelSWTools", "compilers_and_libraries_2020", "windows")
	redist := filepath.Join(base, "redist", "intel64", "mkl")
	libDir := filepath.Join(base, "mkl", "lib", "intel64")
	f := fixture{
		env: map[string]string{"ProgramFiles(x86)": pf},
		listings: map[string][]string{
			filepath.Join(pf, "IntelSWTools"): {"compilers_and_libraries_2020", "documentation"},
		},
		existing: map[string]bool{redist: true, libDir: true},
	}
	c := Build(f.options(platform.Windows))

	if indexOf(c.LibraryDirs, redist) < 0 {
		t.Errorf("redist mkl dir missing: %v", c.LibraryDirs)
	}
	if indexOf(c.Includes.PerVendor[blas.VendorMKL], filepath.Join(base, "mkl", "include")) < 0 {
		t.Errorf("mkl include missing: %v", c.Includes.PerVendor[blas.VendorMKL])
	}
}

func TestBuild_HomebrewKegs(t *testing.T) {
	f := fixture{
		listings: map[string][]string{
			"/opt/homebrew/Cellar/openblas": {"0.3.26"},
		},
		existing: map[string]bool{
			"/opt/homebrew/opt/openblas/lib":           true,
			"/opt/homebrew/Cellar/openblas/0.3.26/lib": true,
		},
	}
	c := Build(f.options(platform.Darwin))

	if indexOf(c.LibraryDirs, "/opt/homebrew/opt/openblas/lib") < 0 {
		t.Errorf("homebrew opt keg missing: %v", c.LibraryDirs)
	}
	if indexOf(c.LibraryDirs, "/opt/homebrew/Cellar/openblas/0.3.26/lib") < 0 {
		t.Errorf("homebrew cellar keg missing: %v", c.LibraryDirs)
	}
	if indexOf(c.Includes.PerVendor[blas.VendorOpenBLAS], "/opt/homebrew/opt/openblas/include") < 0 {
		t.Errorf("homebrew openblas include missing")
	}
}

func TestBuild_IncludeCatalogMKLOrder(t *testing.T) {
	f := fixture{existing: map[string]bool{}}
	c := Build(f.options(platform.Linux))

	mkl := c.Includes.PerVendor[blas.VendorMKL]
	if len(mkl) == 0 || !strings.HasPrefix(mkl[0], "/opt/intel") {
		t.Errorf("MKL includes = %v, want /opt/intel roots first", mkl)
	}
}
