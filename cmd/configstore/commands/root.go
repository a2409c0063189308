/*
Package commands implements the CLI command structure for Configstore.
It provides the root command and all subcommands for reading, writing,
and exporting INI settings files, with proper flag handling.
*/
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omushpapa/configstore/internal/config"
	"github.com/omushpapa/configstore/internal/version"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Config *config.Config

	file          string
	section       string
	caseSensitive bool
	output        string
	outputFile    string
	noColor       bool
	verbosity     int
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "configstore [command] [flags]",
		Short: "INI settings file manager",
		Long: `Configstore reads and writes INI settings files with typed values,
value interpolation, fuzzy search, and JSON and environment import/export.

Settings are grouped into sections; operations default to the "main"
section unless --section is given.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		SilenceUsage: true,
	}

	// Add persistent flags that apply to all commands
	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "",
		"path to the INI settings file")
	rootCmd.PersistentFlags().StringVarP(&opts.section, "section", "s", "",
		"section to operate on")
	rootCmd.PersistentFlags().BoolVar(&opts.caseSensitive, "case-sensitive", false,
		"preserve option name case")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "",
		"output format: table|json|yaml")
	rootCmd.PersistentFlags().StringVar(&opts.outputFile, "output-file", "",
		"write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v",
		"verbose output (can be used multiple times)")

	// Add commands
	rootCmd.AddCommand(
		newGetCommand(opts),
		newSetCommand(opts),
		newUnsetCommand(opts),
		newItemsCommand(opts),
		newSearchCommand(opts),
		newShowCommand(opts),
		newExportCommand(opts),
		newLoadCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// initializeCommand performs common initialization for all commands
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Command line flags override environment configuration
	if cmd.Flags().Changed("file") {
		cfg.File = opts.file
	}
	if cmd.Flags().Changed("section") {
		cfg.Section = opts.section
	}
	if cmd.Flags().Changed("case-sensitive") {
		cfg.CaseSensitive = opts.caseSensitive
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = opts.output
	}
	if cmd.Flags().Changed("output-file") {
		cfg.OutputFile = opts.outputFile
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	if opts.verbosity > 0 {
		cfg.Verbose = opts.verbosity
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	opts.Config = &cfg
	return nil
}
