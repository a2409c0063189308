package config

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	// OutputFormatTable represents the aligned key/value table format
	OutputFormatTable OutputFormat = "table"

	// OutputFormatJSON represents the JSON output format
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatYAML represents the YAML output format
	OutputFormatYAML OutputFormat = "yaml"
)

// Constants for configuration defaults
const (
	// DefaultFile is the settings file used when none is configured
	DefaultFile = "settings.ini"

	// DefaultSection is the section used when a key operation does not
	// name one
	DefaultSection = "main"

	// ReservedSection is the INI default-section name that stores must
	// never expose, in any letter case
	ReservedSection = "default"
)
