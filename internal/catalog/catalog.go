// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/platform"
)

// Options controls catalog assembly. The zero value targets the current
// host with no overrides.
type Options struct {
	// Overrides are caller-supplied directories searched before anything
	// else, in the order given.
	Overrides []string
	// GOOS selects the OS family's path conventions; defaults to
	// runtime.GOOS via the caller.
	GOOS string
	// SearchEphemeral expands overlay build trees (pip's PEP 518 build
	// isolation) found in environment paths.
	SearchEphemeral bool
	// Env reads an environment variable; defaults to os.Getenv. Tests
	// inject a map-backed reader here.
	Env func(string) string
	// DirExists reports whether a path is an existing directory;
	// defaults to a stat call.
	DirExists func(string) bool
	// ListDir lists a directory's entry names, empty on error; defaults
	// to os.ReadDir. Used for versioned install roots (Homebrew Cellar,
	// IntelSWTools) whose directory names embed a release number.
	ListDir func(string) []string
}

// Catalog is the assembled search state: library directories in priority
// order plus the include directories the header resolver will consult.
type Catalog struct {
	// LibraryDirs is ordered, deduplicated, and existing-only.
	LibraryDirs []string
	Includes    IncludeCatalog
}

// IncludeCatalog holds include directories grouped by the vendor whose
// headers they are expected to carry. System dirs apply to every vendor.
type IncludeCatalog struct {
	System    []string
	PerVendor map[blas.Vendor][]string
}

// Vendor-flavored subdirectories that distros nest under a generic lib
// dir (Fedora's /usr/lib64/openblas-openmp and friends).
var vendorSubdirs = []string{
	"openblas", "openblas-openmp", "openblas-pthread", "openblas-serial",
	"atlas", "gsl",
}

// Build assembles the catalog. It never fails: unreadable or absent
// directories are dropped, and missing environment variables contribute
// nothing.
func Build(opts Options) *Catalog {
	b := newBuilder(opts)

	b.addLibs(opts.Overrides...)
	b.envRoots()
	if opts.SearchEphemeral {
		b.ephemeralTrees()
	}
	b.vendorRoots()
	b.systemRoots()
	b.expandVendorSubdirs()

	return b.finish()
}

type builder struct {
	opts Options
	goos string

	libs      []string
	system    []string
	perVendor map[blas.Vendor][]string
}

func newBuilder(opts Options) *builder {
	if opts.Env == nil {
		opts.Env = os.Getenv
	}
	if opts.DirExists == nil {
		opts.DirExists = func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && info.IsDir()
		}
	}
	if opts.ListDir == nil {
		opts.ListDir = func(path string) []string {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil
			}
			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				names = append(names, entry.Name())
			}
			return names
		}
	}
	return &builder{
		opts:      opts,
		goos:      opts.GOOS,
		perVendor: make(map[blas.Vendor][]string),
	}
}

func (b *builder) addLibs(dirs ...string) {
	b.libs = append(b.libs, dirs...)
}

func (b *builder) addIncludes(vendor blas.Vendor, dirs ...string) {
	if vendor == blas.VendorUnknown {
		b.system = append(b.system, dirs...)
		return
	}
	b.perVendor[vendor] = append(b.perVendor[vendor], dirs...)
}

// envRoots collects install prefixes the active environment advertises:
// conda and virtualenv prefixes, then every PATH and PYTHONPATH entry.
// A conda env on windows keeps native libraries under Library\bin.
func (b *builder) envRoots() {
	for _, key := range []string{"CONDA_PREFIX", "VIRTUAL_ENV"} {
		prefix := b.opts.Env(key)
		if prefix == "" {
			continue
		}
		if b.goos == platform.Windows {
			for _, sub := range [][]string{
				{"Library", "bin"},
				{"Library", "lib"},
				{"Library", "mingw-w64", "bin"},
				{"Library", "mingw-w64", "lib"},
				{"Library", "bin", "gsl"},
				{"Library", "lib", "gsl"},
			} {
				b.addLibs(filepath.Join(append([]string{prefix}, sub...)...))
			}
			b.addIncludes(blas.VendorUnknown,
				filepath.Join(prefix, "Library", "include"),
				filepath.Join(prefix, "Library", "mingw-w64", "include"))
			b.addIncludes(blas.VendorGSL,
				filepath.Join(prefix, "Library", "include", "gsl"))
		} else {
			b.addLibs(
				filepath.Join(prefix, "lib"),
				filepath.Join(prefix, "lib", "gsl"))
			b.addIncludes(blas.VendorUnknown, filepath.Join(prefix, "include"))
			b.addIncludes(blas.VendorGSL, filepath.Join(prefix, "include", "gsl"))
		}
	}

	sep := ":"
	if b.goos == platform.Windows {
		sep = ";"
	}
	for _, key := range []string{"PATH", "PYTHONPATH"} {
		for _, entry := range strings.Split(b.opts.Env(key), sep) {
			if entry != "" {
				b.addLibs(entry)
			}
		}
	}
}

// ephemeralTrees expands overlay roots that pip's isolated build
// environments place on PATH and PYTHONPATH, so that a BLAS wheel
// installed into the overlay is discovered during the same build.
func (b *builder) ephemeralTrees() {
	seen := map[string]bool{}
	for _, dir := range b.libs {
		root, ok := overlayRoot(dir)
		if !ok || seen[root] {
			continue
		}
		seen[root] = true

		libNames := []string{"lib"}
		if b.goos == platform.Windows {
			libNames = append(libNames, "Lib")
		}
		for _, lib := range libNames {
			base := filepath.Join(root, lib)
			b.addLibs(base)
			for _, sub := range []string{
				"gsl", "openblas", "openblas-openmp", "openblas-pthread",
				"openblas-serial", "gslcblas", "cblas", "blas", "mkl", "atlas", "libatlas",
			} {
				b.addLibs(filepath.Join(base, sub), filepath.Join(base, sub, "lib"))
			}
			b.addLibs(filepath.Join(base, "mkl", "lib", "intel"))
			b.addIncludes(blas.VendorGSL, filepath.Join(base, "gsl", "include"))
			b.addIncludes(blas.VendorMKL, filepath.Join(base, "mkl", "include"))
			b.addIncludes(blas.VendorATLAS,
				filepath.Join(base, "atlas", "include"),
				filepath.Join(base, "libatlas", "include"))
			for _, sub := range []string{"openblas", "openblas-openmp", "openblas-pthread", "openblas-serial"} {
				b.addIncludes(blas.VendorOpenBLAS, filepath.Join(base, sub, "include"))
			}
		}

		inc := filepath.Join(root, "include")
		b.addIncludes(blas.VendorUnknown, inc,
			filepath.Join(inc, "cblas"), filepath.Join(inc, "blas"))
		b.addIncludes(blas.VendorGSL,
			filepath.Join(inc, "gsl"), filepath.Join(inc, "gslcblas"))
		b.addIncludes(blas.VendorMKL,
			filepath.Join(inc, "mkl"), filepath.Join(inc, "mkl", "include"))
		b.addIncludes(blas.VendorATLAS,
			filepath.Join(inc, "atlas"), filepath.Join(inc, "libatlas"))
		for _, sub := range []string{"openblas", "openblas-openmp", "openblas-pthread", "openblas-serial"} {
			b.addIncludes(blas.VendorOpenBLAS,
				filepath.Join(inc, sub), filepath.Join(inc, sub, "include"))
		}
	}
}

// overlayRoot truncates a path at its "overlay" component, the marker of a
// PEP 518 isolated build tree.
func overlayRoot(path string) (string, bool) {
	lower := strings.ToLower(path)
	idx := strings.Index(lower, "overlay")
	if idx < 0 {
		return "", false
	}
	end := idx + len("overlay")
	if end < len(path) && !os.IsPathSeparator(path[end]) {
		return "", false
	}
	return path[:end], true
}

// vendorRoots adds well-known per-vendor install locations.
func (b *builder) vendorRoots() {
	switch b.goos {
	case platform.Windows:
		b.intelSWTools()
		if root := b.opts.Env("SystemRoot"); root != "" {
			b.addLibs(filepath.Join(root, "System32"))
		}
	default:
		for _, prefix := range []string{"/opt/intel", "/usr/local/intel"} {
			b.addLibs(
				prefix+"/lib",
				prefix+"/lib/intel64",
				prefix+"/mkl/lib",
				prefix+"/mkl/lib/intel64",
				prefix+"/oneapi/mkl/latest/lib",
				prefix+"/oneapi/mkl/latest/lib64")
			b.addIncludes(blas.VendorMKL,
				prefix+"/include",
				prefix+"/mkl/include",
				prefix+"/mkl/include/intel64",
				prefix+"/oneapi/mkl/latest/include")
		}
		b.addLibs(
			"/usr/lib64/atlas", "/usr/lib/atlas",
			"/usr/local/lib64/atlas", "/usr/local/lib/atlas",
			"/usr/lib64/gsl", "/usr/lib/gsl",
			"/usr/local/lib64/gsl", "/usr/local/lib/gsl")
		b.addIncludes(blas.VendorATLAS,
			"/usr/lib/atlas", "/usr/lib64/atlas",
			"/usr/lib/atlas/include", "/usr/lib64/atlas/include")
		b.addIncludes(blas.VendorGSL,
			"/usr/include/gsl", "/usr/local/include/gsl", "/opt/local/include/gsl")
		b.addIncludes(blas.VendorOpenBLAS,
			"/usr/include/openblas", "/usr/local/include/openblas")
		if b.goos == platform.Darwin {
			b.homebrewKegs()
		}
	}
}

// intelSWTools walks the legacy Intel tools layout under Program Files,
// whose compilers_and_libraries_<release> directories are versioned.
func (b *builder) intelSWTools() {
	programFiles := b.opts.Env("ProgramFiles(x86)")
	if programFiles == "" {
		programFiles = b.opts.Env("ProgramFiles")
	}
	if programFiles == "" {
		return
	}
	root := filepath.Join(programFiles, "IntelSWTools")
	for _, name := range b.opts.ListDir(root) {
		if !strings.Contains(name, "compilers_and_libraries") {
			continue
		}
		base := filepath.Join(root, name, "windows")
		b.addLibs(
			filepath.Join(base, "redist", "intel64", "mkl"),
			filepath.Join(base, "mkl", "lib", "intel64"))
		b.addIncludes(blas.VendorMKL, filepath.Join(base, "mkl", "include"))
	}
}

// homebrewKegs adds Apple Silicon Homebrew keg locations, both the opt
// symlink and the versioned Cellar directories behind it.
func (b *builder) homebrewKegs() {
	kegVendor := map[string]blas.Vendor{
		"openblas": blas.VendorOpenBLAS,
		"atlas":    blas.VendorATLAS,
		"gsl":      blas.VendorGSL,
		"blas":     blas.VendorUnknown,
	}
	for _, keg := range []string{"openblas", "atlas", "gsl", "blas"} {
		opt := filepath.Join("/opt/homebrew/opt", keg)
		b.addLibs(filepath.Join(opt, "lib"))
		b.addIncludes(kegVendor[keg], filepath.Join(opt, "include"))

		cellar := filepath.Join("/opt/homebrew/Cellar", keg)
		for _, version := range b.opts.ListDir(cellar) {
			b.addLibs(filepath.Join(cellar, version, "lib"))
			b.addIncludes(kegVendor[keg], filepath.Join(cellar, version, "include"))
		}
	}
}

// systemRoots adds the generic library and include directories of the OS
// family, after everything environment- or vendor-specific.
func (b *builder) systemRoots() {
	if b.goos == platform.Windows {
		return
	}
	b.addLibs(
		"/usr/lib/x86_64-linux-gnu",
		"/usr/lib",
		"/usr/local/lib",
		"/lib64",
		"/lib",
		"/usr/lib64",
		"/usr/local/lib64",
		"/opt/local/lib64",
		"/opt/local/lib")
	b.addIncludes(blas.VendorUnknown,
		"/usr/include/x86_64-linux-gnu",
		"/usr/include",
		"/usr/local/include",
		"/opt/local/include")
}

// expandVendorSubdirs appends existing vendor-flavored subdirectories of
// every collected dir, so a Fedora-style /usr/lib64/openblas-openmp is
// scanned right after its parent.
func (b *builder) expandVendorSubdirs() {
	expanded := make([]string, 0, len(b.libs))
	for _, dir := range b.libs {
		expanded = append(expanded, dir)
		for _, sub := range vendorSubdirs {
			nested := filepath.Join(dir, sub)
			if b.opts.DirExists(nested) {
				expanded = append(expanded, nested)
			}
		}
	}
	b.libs = expanded
}

// finish filters library dirs to existing ones and deduplicates every
// list, keeping first-occurrence order throughout.
func (b *builder) finish() *Catalog {
	libs := make([]string, 0, len(b.libs))
	seen := map[string]bool{}
	for _, dir := range b.libs {
		if seen[dir] || !b.opts.DirExists(dir) {
			continue
		}
		seen[dir] = true
		libs = append(libs, dir)
	}

	perVendor := make(map[blas.Vendor][]string, len(b.perVendor))
	for vendor, dirs := range b.perVendor {
		perVendor[vendor] = dedup(dirs)
	}
	return &Catalog{
		LibraryDirs: libs,
		Includes: IncludeCatalog{
			System:    dedup(b.system),
			PerVendor: perVendor,
		},
	}
}

func dedup(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := map[string]bool{}
	for _, path := range paths {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}
	return out
}
