package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	// Helper function to clean environment variables after each test
	cleanup := func() {
		envVars := []string{
			"CONFIGSTORE_FILE",
			"CONFIGSTORE_SECTION",
			"CONFIGSTORE_CASE_SENSITIVE",
			"CONFIGSTORE_OUTPUT",
			"CONFIGSTORE_OUTPUT_FILE",
			"CONFIGSTORE_NO_COLOR",
			"CONFIGSTORE_VERBOSE",
		}
		for _, env := range envVars {
			os.Unsetenv(env)
		}
	}

	tests := []struct {
		name     string
		envVars  map[string]string
		expected Config
		wantErr  bool
		errMsg   string
	}{
		{
			name: "default configuration",
			expected: Config{
				File:    "settings.ini",
				Section: "main",
				Output:  "table",
			},
		},
		{
			name: "configuration from environment variables",
			envVars: map[string]string{
				"CONFIGSTORE_FILE":           "app.ini",
				"CONFIGSTORE_SECTION":        "database",
				"CONFIGSTORE_CASE_SENSITIVE": "true",
				"CONFIGSTORE_OUTPUT":         "json",
				"CONFIGSTORE_OUTPUT_FILE":    "output.json",
				"CONFIGSTORE_NO_COLOR":       "true",
				"CONFIGSTORE_VERBOSE":        "vv",
			},
			expected: Config{
				File:          "app.ini",
				Section:       "database",
				CaseSensitive: true,
				Output:        "json",
				OutputFile:    "output.json",
				NoColor:       true,
				Verbose:       2,
			},
		},
		{
			name: "empty settings file",
			envVars: map[string]string{
				"CONFIGSTORE_FILE": "",
			},
			// viper treats the empty value as unset, so the default applies
			expected: Config{
				File:    "settings.ini",
				Section: "main",
				Output:  "table",
			},
		},
		{
			name: "invalid output format",
			envVars: map[string]string{
				"CONFIGSTORE_OUTPUT": "invalid",
			},
			wantErr: true,
			errMsg:  "invalid output format: must be one of [table json yaml]",
		},
		{
			name: "reserved section",
			envVars: map[string]string{
				"CONFIGSTORE_SECTION": "DEFAULT",
			},
			wantErr: true,
			errMsg:  "is reserved",
		},
		{
			name: "multiple verbosity levels",
			envVars: map[string]string{
				"CONFIGSTORE_VERBOSE": "vvv",
			},
			expected: Config{
				File:    "settings.ini",
				Section: "main",
				Output:  "table",
				Verbose: 3,
			},
		},
		{
			name: "boolean parsing - various true values",
			envVars: map[string]string{
				"CONFIGSTORE_CASE_SENSITIVE": "1",
				"CONFIGSTORE_NO_COLOR":       "true",
			},
			expected: Config{
				File:          "settings.ini",
				Section:       "main",
				Output:        "table",
				CaseSensitive: true,
				NoColor:       true,
			},
		},
		{
			name: "boolean parsing - various false values",
			envVars: map[string]string{
				"CONFIGSTORE_CASE_SENSITIVE": "0",
				"CONFIGSTORE_NO_COLOR":       "false",
			},
			expected: Config{
				File:    "settings.ini",
				Section: "main",
				Output:  "table",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean environment before each test
			cleanup()

			// Set environment variables for test
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid configuration",
			config: Config{
				File:    "settings.ini",
				Section: "main",
				Output:  "json",
			},
			wantErr: false,
		},
		{
			name: "empty file",
			config: Config{
				Section: "main",
				Output:  "json",
			},
			wantErr: true,
			errMsg:  "settings file must not be empty",
		},
		{
			name: "empty section",
			config: Config{
				File:   "settings.ini",
				Output: "json",
			},
			wantErr: true,
			errMsg:  "section must not be empty",
		},
		{
			name: "reserved section - lower case",
			config: Config{
				File:    "settings.ini",
				Section: "default",
				Output:  "json",
			},
			wantErr: true,
			errMsg:  "is reserved",
		},
		{
			name: "reserved section - mixed case",
			config: Config{
				File:    "settings.ini",
				Section: "Default",
				Output:  "json",
			},
			wantErr: true,
			errMsg:  "is reserved",
		},
		{
			name: "invalid output format",
			config: Config{
				File:    "settings.ini",
				Section: "main",
				Output:  "tree",
			},
			wantErr: true,
			errMsg:  "invalid output format",
		},
		{
			name: "output file without path",
			config: Config{
				File:       "settings.ini",
				Section:    "main",
				Output:     "json",
				OutputFile: "",
			},
			wantErr: false, // Default to stdout
		},
		{
			name: "verbosity level validation",
			config: Config{
				File:    "settings.ini",
				Section: "main",
				Output:  "json",
				Verbose: 4,
			},
			wantErr: false, // Allow any positive verbosity level
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
