// SPDX-License-Identifier: MPL-2.0

// Package headers locates the C header matching a discovered BLAS
// library: vendor-canonical names first, then the generic cblas.h and
// blas.h fallbacks, each verified by a content keyword check so that a
// stray unrelated file with the right name is not trusted.
package headers
