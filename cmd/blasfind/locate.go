// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"blasfind-cli/internal/config"
	"blasfind-cli/internal/engine"
	"blasfind-cli/internal/issue"
	"blasfind-cli/pkg/blas"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// discoverFn is swappable so command tests can substitute a canned engine.
var discoverFn = engine.Discover

var (
	locatePaths        []string
	locateIncludePaths []string
	locatePrefer       string
	locateAllowUnident bool
	locateFormat       string

	locateCmd = &cobra.Command{
		Use:   "locate",
		Short: "Find the installed BLAS library and its CBLAS header",
		Long: `Find the installed BLAS library and its CBLAS header.

The search walks caller-supplied paths first, then active conda or
virtualenv environments, then vendor install roots (Intel oneAPI,
Homebrew, ATLAS/GSL distro dirs), then the generic system library
directories. The first recognizable BLAS wins.

Exit status is 1 when no BLAS library can be found.`,
		Example: `  blasfind locate
  blasfind locate --path /opt/custom/lib --prefer libopenblas.so
  blasfind locate --format json`,
		Args: cobra.NoArgs,
		RunE: runLocate,
	}
)

func init() {
	addSearchFlags(locateCmd)
	locateCmd.Flags().StringVar(&locateFormat, "format", "", "output format: flags, json or toml (default from config)")
}

// addSearchFlags registers the discovery search flags shared by the
// commands that run the engine (locate, flags).
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&locatePaths, "path", nil, "extra library directory to search first (repeatable)")
	cmd.Flags().StringArrayVar(&locateIncludePaths, "include-path", nil, "extra header directory to consult first (repeatable)")
	cmd.Flags().StringVar(&locatePrefer, "prefer", "", "library file name to pin to the top of the ranking")
	cmd.Flags().BoolVar(&locateAllowUnident, "allow-unidentified", false, "accept a *blas* file whose symbols cannot be inspected")
}

func runLocate(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(locateFormat)
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

	if d.Degraded() {
		rendered, _ := issue.Get(issue.HeaderNotFoundId).Render(styleScheme())
		fmt.Fprint(os.Stderr, rendered)
	}

	return renderDiscovery(cmd.OutOrStdout(), d, format)
}

// locateOptions merges the loaded configuration with the locate flags.
// Flag values win; repeatable path flags are searched before configured ones.
func locateOptions() engine.Options {
	prefer := locatePrefer
	if prefer == "" {
		prefer = cfg.PreferredLibrary
	}

	opts := engine.Options{
		SearchPaths:       append(append([]string{}, locatePaths...), cfg.SearchPaths...),
		IncludePaths:      append(append([]string{}, locateIncludePaths...), cfg.IncludePaths...),
		Preferred:         prefer,
		AllowUnidentified: locateAllowUnident || cfg.AllowUnidentified,
		SearchEphemeral:   cfg.SearchEphemeral,
	}

	if verbose {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: false,
			Prefix:          "blasfind",
		})
	}

	return opts
}

// outputFormat resolves the effective output format from the flag and the
// configuration, validating against the closed set of values.
func outputFormat(flagValue string) (config.OutputFormat, error) {
	format := cfg.Output.Format
	if flagValue != "" {
		format = config.OutputFormat(flagValue)
	}
	if err := format.Validate(); err != nil {
		return "", err
	}
	return format, nil
}

func renderDiscovery(w io.Writer, d *blas.Discovery, format config.OutputFormat) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case config.OutputTOML:
		out, err := toml.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode discovery result: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		renderDiscoveryText(w, d)
		return nil
	}
}

// renderDiscoveryText prints the human-readable result card.
func renderDiscoveryText(w io.Writer, d *blas.Discovery) {
	fmt.Fprintln(w, TitleStyle.Render("BLAS discovery"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", SubtitleStyle.Render("Library"), PathStyle.Render(d.LibraryPath()))
	if headerPath := d.HeaderPath(); headerPath != "" {
		fmt.Fprintf(w, "%s:  %s\n", SubtitleStyle.Render("Header"), PathStyle.Render(headerPath))
	} else {
		fmt.Fprintf(w, "%s:  %s\n", SubtitleStyle.Render("Header"), WarningStyle.Render("(none found)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", SubtitleStyle.Render("Flags"))
	for _, f := range d.Flags.Enabled() {
		fmt.Fprintf(w, "  %s %s\n", SuccessStyle.Render("✓"), string(f))
	}
}
