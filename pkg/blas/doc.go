// SPDX-License-Identifier: MPL-2.0

// Package blas defines the shared value types of the discovery engine:
// vendor identity, symbol reports, header matches, capability flags and the
// final Discovery record. Everything here is a plain immutable value with no
// I/O, so classification logic stays testable without a filesystem or a
// binary present.
package blas
