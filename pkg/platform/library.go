// SPDX-License-Identifier: MPL-2.0

package platform

// LibraryConventions describes how a given OS family names linkable library
// files. Extension slices are ordered by linking preference: on Windows the
// MSVC import library (.lib) comes before the bare .dll, since linking
// directly against a .dll fails for most toolchains.
type LibraryConventions struct {
	// Prefix is prepended to the library root name ("lib" everywhere
	// except Windows).
	Prefix string
	// DynamicExts are extensions of dynamic-link artifacts, most
	// preferred first.
	DynamicExts []string
	// StaticExts are extensions of static archives.
	StaticExts []string
	// ImportExts are MinGW-style import-library extensions (Windows only).
	ImportExts []string
}

// Conventions returns the library naming conventions for a runtime.GOOS
// value. Unrecognized values fall back to the Linux/ELF conventions.
func Conventions(goos string) LibraryConventions {
	switch goos {
	case Windows:
		return LibraryConventions{
			Prefix:      "",
			DynamicExts: []string{".lib", ".dll"},
			StaticExts:  []string{".a"},
			ImportExts:  []string{".dll.a"},
		}
	case Darwin:
		return LibraryConventions{
			Prefix:      "lib",
			DynamicExts: []string{".dylib"},
			StaticExts:  []string{".a"},
		}
	default:
		return LibraryConventions{
			Prefix:      "lib",
			DynamicExts: []string{".so"},
			StaticExts:  []string{".a"},
		}
	}
}

// AllExts returns every linkable extension, dynamic first.
func (c LibraryConventions) AllExts() []string {
	out := make([]string, 0, len(c.DynamicExts)+len(c.ImportExts)+len(c.StaticExts))
	out = append(out, c.DynamicExts...)
	out = append(out, c.ImportExts...)
	out = append(out, c.StaticExts...)
	return out
}

// FileName assembles a concrete file name from a library root and an
// extension, handling the versioned-root quirk: on ELF systems a root like
// "mkl_rt.2" becomes "libmkl_rt.so.2" (version after the extension), while
// Windows and macOS keep the version inside the name ("mkl_rt.2.dll").
func (c LibraryConventions) FileName(goos, root, ext string) string {
	if goos != Windows && goos != Darwin {
		if base, ver, ok := splitVersionedRoot(root); ok {
			return c.Prefix + base + ext + "." + ver
		}
	}
	return c.Prefix + root + ext
}

// CaseInsensitive reports whether filename matching should fold case for
// the given OS family.
func CaseInsensitive(goos string) bool {
	return goos == Windows || goos == Darwin
}

// splitVersionedRoot splits "mkl_rt.2" into ("mkl_rt", "2", true).
// Roots without a single trailing numeric component are returned unchanged.
func splitVersionedRoot(root string) (base, version string, ok bool) {
	for i := len(root) - 1; i > 0; i-- {
		if root[i] == '.' {
			base, version = root[:i], root[i+1:]
			if version == "" || base == "" {
				return root, "", false
			}
			for _, r := range version {
				if r < '0' || r > '9' {
					return root, "", false
				}
			}
			return base, version, true
		}
	}
	return root, "", false
}
