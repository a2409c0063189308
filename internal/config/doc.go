// Package config provides configuration management for the Configstore
// application. It handles environment variables and validation of all
// configuration parameters.
//
// # Configuration Loading
//
// To load the configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
// The following environment variables are supported:
//
//	CONFIGSTORE_FILE            Path to the INI settings file (default: settings.ini)
//	CONFIGSTORE_SECTION         Default section for key operations (default: main)
//	CONFIGSTORE_CASE_SENSITIVE  Preserve option name case (true/false)
//	CONFIGSTORE_OUTPUT          Output format: table|json|yaml
//	CONFIGSTORE_OUTPUT_FILE     Output file path (empty for stdout)
//	CONFIGSTORE_NO_COLOR        Disable colored output (true/false)
//	CONFIGSTORE_VERBOSE         Verbosity level (number of 'v's)
//
// # Example Usage
//
// Setting environment variables:
//
//	os.Setenv("CONFIGSTORE_FILE", "app.ini")
//	os.Setenv("CONFIGSTORE_SECTION", "database")
//	os.Setenv("CONFIGSTORE_VERBOSE", "vv")
//
//	cfg, err := config.Load()
//	// ...
//
// # Configuration Validation
//
// The package performs validation on all configuration values:
//   - File and Section must not be empty
//   - Section must not be the reserved INI default section, in any case
//   - Output format must be one of: table, json, yaml
//
// # Thread Safety
//
// The configuration is immutable after loading and is safe for concurrent
// access across multiple goroutines.
package config
