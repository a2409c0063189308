/*
Package config provides configuration management for the Configstore application.
It handles both environment variables and validation of all configuration parameters.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Environment Variables:

	CONFIGSTORE_FILE            Path to the INI settings file
	CONFIGSTORE_SECTION         Default section for key operations
	CONFIGSTORE_CASE_SENSITIVE  Preserve option name case (true/false)
	CONFIGSTORE_OUTPUT          Output format: table|json|yaml
	CONFIGSTORE_OUTPUT_FILE     Output file path
	CONFIGSTORE_NO_COLOR        Disable colored output
	CONFIGSTORE_VERBOSE         Verbosity level (number of 'v's)

Default Values:

	File:     "settings.ini"
	Section:  "main"
	Output:   "table"
*/
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// File is the path to the INI settings file
	File string

	// Section is the default section used when a key operation does
	// not name one
	Section string

	// CaseSensitive preserves option name case instead of lower-casing
	CaseSensitive bool

	// Output specifies the output format (table, json, or yaml)
	Output string

	// OutputFile is the path to write the output (empty for stdout)
	OutputFile string

	// NoColor disables colored output
	NoColor bool

	// Verbose sets the verbosity level
	Verbose int
}

// validOutputFormats contains the list of supported output formats
var validOutputFormats = map[string]bool{
	"table": true,
	"json":  true,
	"yaml":  true,
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("file", DefaultFile)
	v.SetDefault("section", DefaultSection)
	v.SetDefault("case_sensitive", false)
	v.SetDefault("output", "table")
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", 0)

	// Configure environment variables
	v.SetEnvPrefix("CONFIGSTORE")
	v.AutomaticEnv()

	// Map environment variables to config fields
	v.BindEnv("file")
	v.BindEnv("section")
	v.BindEnv("case_sensitive")
	v.BindEnv("output")
	v.BindEnv("output_file")
	v.BindEnv("no_color")
	v.BindEnv("verbose")

	// Process verbosity level from string of 'v's
	if verboseStr := v.GetString("verbose"); verboseStr != "" {
		v.Set("verbose", strings.Count(verboseStr, "v"))
	}

	cfg := Config{
		File:          v.GetString("file"),
		Section:       v.GetString("section"),
		CaseSensitive: v.GetBool("case_sensitive"),
		Output:        v.GetString("output"),
		OutputFile:    v.GetString("output_file"),
		NoColor:       v.GetBool("no_color"),
		Verbose:       v.GetInt("verbose"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("settings file must not be empty")
	}

	if c.Section == "" {
		return fmt.Errorf("section must not be empty")
	}
	if strings.EqualFold(c.Section, ReservedSection) {
		return fmt.Errorf("section name %q is reserved", c.Section)
	}

	if !validOutputFormats[c.Output] {
		return fmt.Errorf("invalid output format: must be one of [table json yaml]")
	}

	if c.Verbose < 0 {
		return fmt.Errorf("verbosity must be non-negative")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{File: %s, Section: %s, CaseSensitive: %v, Output: %s, "+
			"OutputFile: %s, NoColor: %v, Verbose: %d}",
		c.File, c.Section, c.CaseSensitive, c.Output,
		c.OutputFile, c.NoColor, c.Verbose,
	)
}
