// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"blasfind-cli/internal/catalog"
	"blasfind-cli/internal/headers"
	"blasfind-cli/internal/match"
	"blasfind-cli/internal/probe"
	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/platform"
)

// ErrNotFound reports that no search path contained a usable BLAS
// library. Callers treat it as a normal branch, not a failure of the
// tool itself.
var ErrNotFound = errors.New("no BLAS library found in any search path")

// Options configures one discovery run. The zero value targets the
// current host with defaults.
type Options struct {
	// SearchPaths are caller-supplied library directories searched
	// before anything the catalog contributes.
	SearchPaths []string
	// IncludePaths are extra header directories consulted before the
	// catalog's system include dirs.
	IncludePaths []string
	// Preferred pins a library file name to the top of the ranking, for
	// hosts where a sibling toolchain already chose a BLAS.
	Preferred string
	// AllowUnidentified accepts a loose *blas* filename match even when
	// its symbols cannot be inspected.
	AllowUnidentified bool
	// SearchEphemeral expands overlay build trees found in environment
	// paths.
	SearchEphemeral bool

	// GOOS defaults to runtime.GOOS.
	GOOS string
	// Logger defaults to a discarding logger.
	Logger *log.Logger

	// Catalog, Probe and Resolver are injection points for tests; nil
	// selects the production implementation.
	Catalog  *catalog.Catalog
	Probe    *probe.Probe
	Resolver *headers.Resolver
}

func (o *Options) fill() {
	if o.GOOS == "" {
		o.GOOS = runtime.GOOS
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Catalog == nil {
		o.Catalog = catalog.Build(catalog.Options{
			Overrides:       o.SearchPaths,
			GOOS:            o.GOOS,
			SearchEphemeral: o.SearchEphemeral,
		})
	}
	if o.Probe == nil {
		o.Probe = probe.New(o.GOOS)
	}
	if o.Resolver == nil {
		o.Resolver = headers.New()
	}
}

// Discover runs the pipeline and returns the result record, or
// ErrNotFound when no candidate in any directory is a usable BLAS.
//
// The first accepted candidate is authoritative: a missing header
// degrades the result instead of triggering a retry with the next
// candidate. Only rejected loose matches fall through.
func Discover(ctx context.Context, opts Options) (*blas.Discovery, error) {
	opts.fill()
	logger := opts.Logger

	matcher := match.New(opts.GOOS)
	var candidates []match.Candidate
	for i, dir := range opts.Catalog.LibraryDirs {
		candidates = append(candidates, matcher.MatchDir(dir, i)...)
	}
	match.Sort(candidates)
	if opts.Preferred != "" {
		candidates = pinPreferred(candidates, opts.Preferred, opts.GOOS)
	}
	logger.Debug("matched candidates",
		"dirs", len(opts.Catalog.LibraryDirs), "candidates", len(candidates))

	for _, cand := range candidates {
		res := opts.Probe.Inspect(ctx, cand.Path())
		logger.Debug("probed candidate", "path", cand.Path(),
			"reader", res.Reader, "inspected", res.Report.Inspected,
			"recognized", res.Recognized)

		if cand.Loose && !acceptLoose(res, opts.AllowUnidentified) {
			logger.Debug("rejected loose candidate", "path", cand.Path())
			continue
		}
		return finish(opts, cand, res), nil
	}
	return nil, ErrNotFound
}

// acceptLoose decides whether a filename-only *blas* match is trusted:
// its symbols vouched for it, or inspection was impossible and the caller
// opted in.
func acceptLoose(res probe.Result, allowUnidentified bool) bool {
	if res.Report.Inspected {
		return res.Recognized
	}
	return allowUnidentified
}

func finish(opts Options, cand match.Candidate, res probe.Result) *blas.Discovery {
	vendor, confidence := cand.Vendor, cand.Confidence
	if fp := res.Report.Fingerprint; fp != blas.VendorUnknown {
		if vendor == blas.VendorUnknown {
			// A symbol fingerprint upgrades a generic filename guess.
			vendor, confidence = fp, blas.SymbolConfirmed
		} else if fp == vendor {
			confidence = blas.SymbolConfirmed
		}
	}

	includes := opts.Catalog.Includes
	if len(opts.IncludePaths) > 0 {
		includes.System = append(append([]string{}, opts.IncludePaths...), includes.System...)
	}
	header := opts.Resolver.Resolve(vendor, cand.Dir, includes, res.Report.CBLASAssumed())

	d := &blas.Discovery{
		LibraryDir:  cand.Dir,
		LibraryFile: cand.File,
		IncludeDir:  header.Dir,
		IncludeFile: header.File,
		Vendor:      vendor,
		Confidence:  confidence,
		Symbols:     res.Report,
		HeaderKind:  header.Kind,
		Flags:       blas.DeriveFlags(vendor, res.Report, header),
	}

	opts.Logger.Debug("resolved header", "kind", header.Kind, "path", header.Path())
	if d.Degraded() {
		opts.Logger.Warn("no matching header found, result is degraded",
			"library", d.LibraryPath())
	}
	return d
}

// pinPreferred stable-moves candidates whose file name equals the hint to
// the front, keeping their relative order.
func pinPreferred(cands []match.Candidate, preferred, goos string) []match.Candidate {
	fold := func(name string) string {
		if platform.CaseInsensitive(goos) {
			return strings.ToLower(name)
		}
		return name
	}
	want := fold(preferred)

	out := make([]match.Candidate, 0, len(cands))
	var rest []match.Candidate
	for _, cand := range cands {
		if fold(cand.File) == want {
			out = append(out, cand)
		} else {
			rest = append(rest, cand)
		}
	}
	return append(out, rest...)
}
