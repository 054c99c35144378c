// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"blasfind-cli/internal/config"
	"blasfind-cli/internal/engine"
	"blasfind-cli/pkg/blas"
	"blasfind-cli/pkg/buildargs"
)

func TestResolveToolchain(t *testing.T) {
	resetCommandState(t)

	tests := []struct {
		name       string
		flagValue  string
		configured config.Toolchain
		want       buildargs.Toolchain
		wantErr    error
	}{
		{name: "flag wins over config", flagValue: "msvc", configured: config.ToolchainGNU, want: buildargs.MSVC},
		{name: "config fallback", flagValue: "", configured: config.ToolchainGNU, want: buildargs.GNU},
		{name: "auto picks host default", flagValue: "", configured: config.ToolchainAuto, want: buildargs.DefaultToolchain(runtime.GOOS)},
		{name: "invalid flag rejected", flagValue: "clang", wantErr: config.ErrInvalidToolchain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Output.Toolchain = tt.configured

			got, err := resolveToolchain(tt.flagValue)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveToolchain(%q) error = %v, want %v", tt.flagValue, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveToolchain(%q) error = %v", tt.flagValue, err)
			}
			if got != tt.want {
				t.Errorf("resolveToolchain(%q) = %q, want %q", tt.flagValue, got, tt.want)
			}
		})
	}
}

func TestRunFlags_GNUOutput(t *testing.T) {
	resetCommandState(t)
	cfg.Output.Toolchain = config.ToolchainGNU
	discoverFn = func(ctx context.Context, opts engine.Options) (*blas.Discovery, error) {
		return sampleDiscovery(), nil
	}

	var buf bytes.Buffer
	flagsCmd.SetOut(&buf)
	flagsCmd.SetContext(context.Background())
	t.Cleanup(func() {
		flagsCmd.SetOut(nil)
		flagsToolchain = ""
		flagsForDocs = false
	})

	if err := runFlags(flagsCmd, nil); err != nil {
		t.Fatalf("runFlags() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected cflags and ldflags lines, got %q", buf.String())
	}
	for _, want := range []string{"-I/usr/include", "-DHAS_OPENBLAS", "-DHAS_CBLAS", "-DINCL_CBLAS"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("cflags line missing %q: %q", want, lines[0])
		}
	}
	for _, want := range []string{"-L/usr/lib", "-l:libopenblas.so"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("ldflags line missing %q: %q", want, lines[1])
		}
	}
}

func TestRunFlags_CFlagsOnly(t *testing.T) {
	resetCommandState(t)
	cfg.Output.Toolchain = config.ToolchainGNU
	discoverFn = func(ctx context.Context, opts engine.Options) (*blas.Discovery, error) {
		return sampleDiscovery(), nil
	}
	flagsOnlyCFlags = true

	var buf bytes.Buffer
	flagsCmd.SetOut(&buf)
	flagsCmd.SetContext(context.Background())
	t.Cleanup(func() { flagsCmd.SetOut(nil) })

	if err := runFlags(flagsCmd, nil); err != nil {
		t.Fatalf("runFlags() error = %v", err)
	}

	out := strings.TrimRight(buf.String(), "\n")
	if strings.Contains(out, "-L") || strings.Contains(out, "\n") {
		t.Errorf("--cflags should print a single compiler line, got %q", out)
	}
	if !strings.Contains(out, "-DHAS_OPENBLAS") {
		t.Errorf("--cflags output missing defines: %q", out)
	}
}

func TestRunFlags_MSVCShorthand(t *testing.T) {
	resetCommandState(t)
	discoverFn = func(ctx context.Context, opts engine.Options) (*blas.Discovery, error) {
		return sampleDiscovery(), nil
	}
	flagsMSVC = true
	flagsOnlyLibs = true

	var buf bytes.Buffer
	flagsCmd.SetOut(&buf)
	flagsCmd.SetContext(context.Background())
	t.Cleanup(func() { flagsCmd.SetOut(nil) })

	if err := runFlags(flagsCmd, nil); err != nil {
		t.Fatalf("runFlags() error = %v", err)
	}

	want := filepath.Join("/usr/lib", "libopenblas.so")
	if strings.TrimSpace(buf.String()) != want {
		t.Errorf("--msvc --libs = %q, want full library path %q", strings.TrimSpace(buf.String()), want)
	}
}

func TestRunFlags_Docs(t *testing.T) {
	resetCommandState(t)
	discoverFn = func(ctx context.Context, opts engine.Options) (*blas.Discovery, error) {
		t.Fatal("discovery should not run in docs mode")
		return nil, nil
	}
	flagsForDocs = true

	var buf bytes.Buffer
	flagsCmd.SetOut(&buf)
	flagsCmd.SetContext(context.Background())
	t.Cleanup(func() {
		flagsCmd.SetOut(nil)
		flagsForDocs = false
	})

	if err := runFlags(flagsCmd, nil); err != nil {
		t.Fatalf("runFlags() error = %v", err)
	}
	if !strings.Contains(buf.String(), "-D_FOR_RTD") {
		t.Errorf("docs output missing _FOR_RTD define: %q", buf.String())
	}
}

func TestRunFlags_NoCBLASExitsOne(t *testing.T) {
	resetCommandState(t)
	cfg.Output.Toolchain = config.ToolchainGNU
	discoverFn = func(ctx context.Context, opts engine.Options) (*blas.Discovery, error) {
		d := sampleDiscovery()
		d.Flags[blas.HasCBLAS] = false
		d.Flags[blas.NoCBLAS] = true
		return d, nil
	}

	flagsCmd.SetContext(context.Background())
	err := runFlags(flagsCmd, nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runFlags() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if !errors.Is(err, buildargs.ErrNoCBLAS) {
		t.Errorf("error should wrap buildargs.ErrNoCBLAS, got %v", err)
	}
}

func TestRunFlags_NotFoundExitsOne(t *testing.T) {
	resetCommandState(t)
	discoverFn = func(ctx context.Context, opts engine.Options) (*blas.Discovery, error) {
		return nil, engine.ErrNotFound
	}

	flagsCmd.SetContext(context.Background())
	err := runFlags(flagsCmd, nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runFlags() error = %v, want *ExitError", err)
	}
	if !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("error should wrap engine.ErrNotFound, got %v", err)
	}
}
