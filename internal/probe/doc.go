// SPDX-License-Identifier: MPL-2.0

// Package probe inspects a candidate library's exported symbol table to
// confirm it is a BLAS, detect the CBLAS wrapper, FORTRAN underscore
// suffixing, and residual vendor fingerprints. Inspection is best-effort:
// a host with no usable reader degrades to an uninspected report instead
// of failing discovery.
package probe
