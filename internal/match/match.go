// SPDX-License-Identifier: MPL-2.0

package match

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/platform"
)

// Candidate is a library file that matched the rule table, tagged with the
// filename-derived vendor guess and its specificity rank. Candidates are
// created here and refined (not mutated in place) by the symbol probe.
type Candidate struct {
	// Dir is the directory the file was found in.
	Dir string
	// File is the matched file name.
	File string
	// DirIndex is the position of Dir in the path catalog; it breaks
	// ties between candidates of equal specificity.
	DirIndex int
	// Vendor is the filename-derived vendor guess.
	Vendor blas.Vendor
	// Confidence is FilenameConfirmed for vendor-specific patterns,
	// Unconfirmed for generic and loose ones.
	Confidence blas.Confidence
	// Rank is the specificity rank, lower is more specific.
	Rank int
	// Loose marks a file accepted only because its name contains "blas";
	// such a candidate must be vouched for by the symbol probe (or an
	// explicit allow-unidentified policy) before it is trusted.
	Loose bool
}

// Path returns the candidate's full file path.
func (c Candidate) Path() string {
	return filepath.Join(c.Dir, c.File)
}

// Matcher matches directory listings against the ranked rule table for one
// OS family.
type Matcher struct {
	goos  string
	conv  platform.LibraryConventions
	exact map[string]rule
}

// New creates a Matcher for the given runtime.GOOS value.
func New(goos string) *Matcher {
	return &Matcher{
		goos:  goos,
		conv:  platform.Conventions(goos),
		exact: buildExactTable(goos),
	}
}

// MatchDir lists dir and returns all matching regular files. A missing or
// unreadable directory yields no candidates, never an error.
func (m *Matcher) MatchDir(dir string, dirIndex int) []Candidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Symlinks to shared objects are the norm; only ones that
		// resolve to directories are excluded.
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || info.IsDir() {
				continue
			}
		}
		names = append(names, entry.Name())
	}

	return m.Match(dir, dirIndex, names)
}

// Match classifies an explicit listing of file names found in dir.
// Exact table names win; remaining files whose name contains "blas" with a
// linkable extension are kept as loose, unconfirmed candidates.
func (m *Matcher) Match(dir string, dirIndex int, names []string) []Candidate {
	var out []Candidate
	for _, name := range names {
		if r, ok := m.exact[foldName(m.goos, name)]; ok {
			out = append(out, Candidate{
				Dir:        dir,
				File:       name,
				DirIndex:   dirIndex,
				Vendor:     r.vendor,
				Confidence: r.confidence,
				Rank:       r.rank,
			})
			continue
		}
		if rank, ok := m.looseRank(name); ok {
			out = append(out, Candidate{
				Dir:        dir,
				File:       name,
				DirIndex:   dirIndex,
				Vendor:     blas.VendorUnknown,
				Confidence: blas.Unconfirmed,
				Rank:       rank,
				Loose:      true,
			})
		}
	}
	return out
}

// looseRank reports whether a name qualifies as a loose match: it contains
// "blas" and ends with a linkable extension, optionally followed by a
// dotted version tail (libopenblas.so.0).
func (m *Matcher) looseRank(name string) (int, bool) {
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "blas") {
		return 0, false
	}
	for _, ext := range m.conv.DynamicExts {
		if hasVersionedSuffix(lower, ext) {
			return rankLoosePreferred, true
		}
	}
	for _, ext := range m.conv.ImportExts {
		if strings.HasSuffix(lower, ext) {
			return rankLoosePreferred, true
		}
	}
	for _, ext := range m.conv.StaticExts {
		if strings.HasSuffix(lower, ext) {
			return rankLooseFallback, true
		}
	}
	return 0, false
}

// hasVersionedSuffix reports whether name ends in ext or ext followed by a
// dotted numeric tail ("libopenblas.so", "libopenblas.so.0.3").
func hasVersionedSuffix(name, ext string) bool {
	idx := strings.LastIndex(name, ext)
	if idx < 0 {
		return false
	}
	tail := name[idx+len(ext):]
	if tail == "" {
		return true
	}
	if tail[0] != '.' {
		return false
	}
	for _, r := range tail[1:] {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// Sort orders candidates by specificity rank, then catalog position, then
// file name: the deterministic order the engine tries them in.
func Sort(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Rank != cands[j].Rank {
			return cands[i].Rank < cands[j].Rank
		}
		if cands[i].DirIndex != cands[j].DirIndex {
			return cands[i].DirIndex < cands[j].DirIndex
		}
		return cands[i].File < cands[j].File
	})
}

// foldName normalizes a file name for table lookup; case folds only where
// the platform's filesystems are case-insensitive.
func foldName(goos, name string) string {
	if platform.CaseInsensitive(goos) {
		return strings.ToLower(name)
	}
	return name
}
