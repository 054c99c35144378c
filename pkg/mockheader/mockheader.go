// SPDX-License-Identifier: MPL-2.0

// Package mockheader ships the no-op CBLAS stub header used for
// documentation-only builds, where code must compile against the CBLAS
// API without linking any real implementation.
package mockheader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name the stub header is written under.
const FileName = "blasmock.h"

//go:embed blasmock.h
var source []byte

// Source returns the stub header contents. The enum values and complex
// number representation are kept bit-for-bit compatible with the real
// CBLAS API.
func Source() []byte {
	out := make([]byte, len(source))
	copy(out, source)
	return out
}

// Write places the stub header into dir, creating it if needed, and
// returns the written path.
func Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create header directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, source, 0o644); err != nil {
		return "", fmt.Errorf("failed to write stub header: %w", err)
	}
	return path, nil
}
