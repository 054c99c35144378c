// SPDX-License-Identifier: MPL-2.0

// Package catalog assembles the ordered list of directories to search for
// BLAS libraries, plus the include-directory lists the header resolver
// consults. Assembly is pure data work; the only filesystem access is
// existence checks and the listing of versioned install roots.
package catalog
