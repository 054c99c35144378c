// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blasfind-cli/internal/config"
	"blasfind-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `blasfind config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage blasfind configuration",
		Long: `Manage blasfind configuration.

Configuration is stored in:
  - Linux: ~/.config/blasfind/config.toml
  - macOS: ~/Library/Application Support/blasfind/config.toml
  - Windows: %APPDATA%\blasfind\config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			tomlContent, err := config.GenerateTOML(loaded)
			if err != nil {
				return err
			}
			fmt.Print(tomlContent)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context) error {
	loaded, path, err := config.LoadWithPath(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render(styleScheme())
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := PathStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	if path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	// Show values
	fmt.Printf("%s: %s\n", keyStyle.Render("preferred_library"), valueStyle.Render(orNone(loaded.PreferredLibrary)))
	fmt.Printf("%s: %s\n", keyStyle.Render("allow_unidentified"), valueStyle.Render(fmt.Sprintf("%v", loaded.AllowUnidentified)))
	fmt.Printf("%s: %s\n", keyStyle.Render("search_ephemeral"), valueStyle.Render(fmt.Sprintf("%v", loaded.SearchEphemeral)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("search_paths"))
	printPathList(loaded.SearchPaths)

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("include_paths"))
	printPathList(loaded.IncludePaths)

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(loaded.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", loaded.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("output"))
	fmt.Printf("  format: %s\n", valueStyle.Render(string(loaded.Output.Format)))
	fmt.Printf("  toolchain: %s\n", valueStyle.Render(orAuto(string(loaded.Output.Toolchain))))

	return nil
}

func printPathList(paths []string) {
	if len(paths) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
		return
	}
	for _, p := range paths {
		fmt.Printf("  - %s\n", SuccessStyle.Render(p))
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func orAuto(s string) string {
	if s == "" {
		return "auto"
	}
	return s
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func setConfigValue(ctx context.Context, key, value string) error {
	loaded, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	switch key {
	case "preferred_library":
		loaded.PreferredLibrary = value

	case "allow_unidentified":
		loaded.AllowUnidentified = value == "true" || value == "1"

	case "search_ephemeral":
		loaded.SearchEphemeral = value == "true" || value == "1"

	case "search_paths":
		loaded.SearchPaths = splitPathList(value)

	case "include_paths":
		loaded.IncludePaths = splitPathList(value)

	case "ui.verbose":
		loaded.UI.Verbose = value == "true" || value == "1"

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if err := scheme.Validate(); err != nil {
			return err
		}
		loaded.UI.ColorScheme = scheme

	case "output.format":
		format := config.OutputFormat(value)
		if err := format.Validate(); err != nil {
			return err
		}
		loaded.Output.Format = format

	case "output.toolchain":
		tc := config.Toolchain(value)
		if err := tc.Validate(); err != nil {
			return err
		}
		loaded.Output.Toolchain = tc

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: preferred_library, allow_unidentified, search_ephemeral, search_paths, include_paths, ui.verbose, ui.color_scheme, output.format, output.toolchain", key)
	}

	if err := config.Save(loaded); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// splitPathList parses a comma-separated list, dropping empty entries.
func splitPathList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
