// SPDX-License-Identifier: MPL-2.0

// Package buildargs turns a discovery result into compiler and linker
// arguments: include directories, link flags in the dialect of the
// active toolchain, and one preprocessor define per true capability flag.
package buildargs
