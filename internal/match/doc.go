// SPDX-License-Identifier: MPL-2.0

// Package match classifies directory entries against a ranked table of
// known BLAS library file name patterns. The rule data (names, vendors,
// specificity ranks) is kept separate from the matching algorithm so a new
// vendor is a table entry, not a control-flow change.
package match
