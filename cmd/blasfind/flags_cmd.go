// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"blasfind-cli/internal/config"
	"blasfind-cli/internal/engine"
	"blasfind-cli/internal/issue"
	"blasfind-cli/pkg/buildargs"

	"github.com/spf13/cobra"
)

var (
	flagsToolchain  string
	flagsForDocs    bool
	flagsOnlyCFlags bool
	flagsOnlyLibs   bool
	flagsMSVC       bool

	flagsCmd = &cobra.Command{
		Use:   "flags",
		Short: "Print compiler and linker arguments for the discovered BLAS",
		Long: `Print compiler and linker arguments for the discovered BLAS.

Runs the same discovery as 'blasfind locate', then turns the result
into arguments a build system can splice into its compile and link
lines: include directories, link arguments in the selected toolchain's
dialect, and one preprocessor define per capability flag.

With --docs no discovery runs at all; the output defines _FOR_RTD so
sources can fall back to the bundled no-op CBLAS header.`,
		Example: `  blasfind flags
  blasfind flags --toolchain msvc
  CFLAGS="$(blasfind flags | sed -n 1p)"`,
		Args: cobra.NoArgs,
		RunE: runFlags,
	}
)

func init() {
	addSearchFlags(flagsCmd)
	flagsCmd.Flags().StringVar(&flagsToolchain, "toolchain", "", "argument dialect: gnu or msvc (default from config, else per host)")
	flagsCmd.Flags().BoolVar(&flagsMSVC, "msvc", false, "shorthand for --toolchain msvc")
	flagsCmd.Flags().BoolVar(&flagsOnlyCFlags, "cflags", false, "print only the compiler arguments")
	flagsCmd.Flags().BoolVar(&flagsOnlyLibs, "libs", false, "print only the linker arguments")
	flagsCmd.Flags().BoolVar(&flagsForDocs, "docs", false, "emit documentation-build arguments without discovery")
}

func runFlags(cmd *cobra.Command, args []string) error {
	if flagsForDocs {
		renderArgs(cmd.OutOrStdout(), buildargs.ForDocs())
		return nil
	}

	toolchain := flagsToolchain
	if flagsMSVC && toolchain == "" {
		toolchain = string(config.ToolchainMSVC)
	}
	tc, err := resolveToolchain(toolchain)
	if err != nil {
		return err
	}

	d, err := discoverFn(cmd.Context(), locateOptions())
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			rendered, _ := issue.Get(issue.BlasNotFoundId).Render(styleScheme())
			fmt.Fprint(os.Stderr, rendered)
			return &ExitError{Code: 1, Err: err}
		}
		return err
	}

	derived, err := buildargs.Derive(d, tc)
	if err != nil {
		switch {
		case errors.Is(err, buildargs.ErrNoCBLAS):
			rendered, _ := issue.Get(issue.NoCblasApiId).Render(styleScheme())
			fmt.Fprint(os.Stderr, rendered)
		case errors.Is(err, buildargs.ErrImportLibMissing):
			rendered, _ := issue.Get(issue.ImportLibMissingId).Render(styleScheme())
			fmt.Fprint(os.Stderr, rendered)
		}
		return &ExitError{Code: 1, Err: err}
	}

	for _, w := range derived.Warnings {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+w)
	}

	renderArgs(cmd.OutOrStdout(), derived)
	return nil
}

// resolveToolchain picks the argument dialect: the flag wins, then the
// configured value, then the host default.
func resolveToolchain(flagValue string) (buildargs.Toolchain, error) {
	value := config.Toolchain(flagValue)
	if value == config.ToolchainAuto {
		value = cfg.Output.Toolchain
	}
	if err := value.Validate(); err != nil {
		return "", err
	}
	if value == config.ToolchainAuto {
		return buildargs.DefaultToolchain(runtime.GOOS), nil
	}
	return buildargs.Toolchain(value), nil
}

// renderArgs prints one shell-spliceable line per argument group. With
// --cflags or --libs only the requested group is printed.
func renderArgs(w io.Writer, a buildargs.Args) {
	onlyCFlags := flagsOnlyCFlags && !flagsOnlyLibs
	onlyLibs := flagsOnlyLibs && !flagsOnlyCFlags

	if !onlyLibs {
		fmt.Fprintln(w, a.CFlags())
	}
	if !onlyCFlags {
		fmt.Fprintln(w, a.LDFlags())
	}
}
