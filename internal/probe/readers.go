// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"context"
	"debug/elf"
	"os/exec"
	"strings"
)

// elfReader reads symbol tables in-process with debug/elf. It handles the
// common case (ELF shared objects) without spawning anything; Mach-O
// binaries and static archives fail open and fall through to the external
// tools.
type elfReader struct{}

func (elfReader) Name() string { return "elf" }

func (elfReader) Symbols(_ context.Context, path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	dyn, dynErr := f.DynamicSymbols()
	for _, sym := range dyn {
		names = append(names, stripVersion(sym.Name))
	}
	// Stripped libraries keep only the dynamic table; a missing .symtab
	// is not an error as long as the dynamic one was readable.
	syms, symErr := f.Symbols()
	for _, sym := range syms {
		names = append(names, stripVersion(sym.Name))
	}
	if dynErr != nil && symErr != nil {
		return nil, dynErr
	}
	return names, nil
}

// toolReader shells out to a binutils-style symbol dumper.
type toolReader struct {
	tool  string
	args  []string
	parse func(output string) []string
}

func newToolReader(tool string, args []string, parse func(string) []string) toolReader {
	return toolReader{tool: tool, args: args, parse: parse}
}

func (r toolReader) Name() string { return r.tool }

func (r toolReader) Symbols(ctx context.Context, path string) ([]string, error) {
	bin, err := exec.LookPath(r.tool)
	if err != nil {
		return nil, err
	}
	out, err := exec.CommandContext(ctx, bin, append(append([]string{}, r.args...), path)...).Output()
	if err != nil {
		return nil, err
	}
	return r.parse(string(out)), nil
}

// parseNM extracts names from `nm -D --defined-only` output, whose lines
// are "<value> <type> <name>" or "<type> <name>" for weak symbols.
func parseNM(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		names = append(names, stripVersion(fields[len(fields)-1]))
	}
	return names
}

// parseReadelf extracts names from `readelf -s --wide` symbol table rows:
// "num: value size type bind vis ndx name". Only rows whose first column
// is a numeric symbol index count; this drops section titles and the
// column-header row ("Num: Value ... Ndx Name"), which has the same
// field count as a symbol row.
func parseReadelf(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 8 || !isSymbolIndex(fields[0]) {
			continue
		}
		name := stripVersion(fields[len(fields)-1])
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// isSymbolIndex reports whether a readelf first column is a "123:" style
// symbol index.
func isSymbolIndex(field string) bool {
	if !strings.HasSuffix(field, ":") || len(field) < 2 {
		return false
	}
	for _, c := range field[:len(field)-1] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// stripVersion removes the "@@GLIBC_2.2.5" style version suffix.
func stripVersion(name string) string {
	if idx := strings.IndexByte(name, '@'); idx >= 0 {
		return name[:idx]
	}
	return name
}
