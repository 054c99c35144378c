// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"blasfind-cli/pkg/mockheader"

	"github.com/spf13/cobra"
)

var (
	headerOutDir string

	headerCmd = &cobra.Command{
		Use:   "header",
		Short: "Write the bundled no-op CBLAS header",
		Long: `Write the bundled no-op CBLAS header.

The header defines every CBLAS entry point as a no-op, so sources that
include it compile on machines with no BLAS installed at all. Combine
with 'blasfind flags --docs', which defines _FOR_RTD: that is the guard
documentation builds use to pick this header over the real one.`,
		Example: `  blasfind header --out build/include
  blasfind header`,
		Args: cobra.NoArgs,
		RunE: runHeader,
	}
)

func init() {
	headerCmd.Flags().StringVar(&headerOutDir, "out", ".", "directory to write the header into")
}

func runHeader(cmd *cobra.Command, args []string) error {
	path, err := mockheader.Write(headerOutDir)
	if err != nil {
		return fmt.Errorf("failed to write stub header: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", SuccessStyle.Render("✓"), PathStyle.Render(path))
	return nil
}
