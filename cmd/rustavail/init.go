package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/rustavail.yaml
var configTemplate embed.FS

// defaultConfigFileName is the file the init command writes.
const defaultConfigFileName = "rustavail.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default configuration file",
		Long: `Init writes a fully commented default configuration file.

The generated file documents every option: channel selection, the report
window, cache backends, the HTML template and output pattern, tier
grouping, and the file tree destination.

Examples:
  # Create rustavail.yaml in the current directory
  rustavail init

  # Create the config file at a specific path
  rustavail init -o conf/rustavail.yaml

  # Overwrite an existing file
  rustavail init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", defaultConfigFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/rustavail.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit it to set at least:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - html.template_path (your page template)")
	fmt.Fprintln(cmd.OutOrStdout(), "  - html.output_pattern (where pages go)")
	fmt.Fprintln(cmd.OutOrStdout(), "  - file_tree_output (where the file tree goes)")

	return nil
}
