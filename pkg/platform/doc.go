// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes OS-family constants and the shared-library
// naming conventions (prefix, dynamic and static extensions) that differ
// between Linux, macOS and Windows.
package platform
