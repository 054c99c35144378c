// SPDX-License-Identifier: MPL-2.0

// Package engine runs the discovery pipeline: catalog assembly, filename
// matching, symbol probing, header resolution and flag derivation, in
// that fixed order, producing one immutable result per invocation.
package engine
