/*
Package output provides formatters for store snapshots in various formats
including an aligned key/value table, JSON, and YAML. It supports colored
output and statistics inclusion.

Basic usage:

	formatter := output.NewFormatter(output.Config{
		Format:     output.FormatTable,
		WithStats:  true,
		WithColors: true,
	}, log)

	result, err := formatter.Format(snapshot)
*/
package output

import (
	"fmt"

	"github.com/iancoleman/orderedmap"

	"github.com/omushpapa/configstore/pkg/logger"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Config holds formatter configuration
type Config struct {
	Format     Format
	WithStats  bool
	WithColors bool
}

// Formatter renders a section/option/value snapshot, as produced by the
// store, into a display string
type Formatter interface {
	Format(*orderedmap.OrderedMap) (string, error)
}

// formatter implements the Formatter interface
type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	return &formatter{
		config: config,
		log:    log,
	}
}

// Format formats the snapshot according to the configured format
func (f *formatter) Format(snapshot *orderedmap.OrderedMap) (string, error) {
	if snapshot == nil {
		msg := "nil snapshot provided for formatting"
		f.log.Error(msg)
		return "", fmt.Errorf(msg)
	}

	f.log.WithFields(logger.Fields{
		"format":     f.config.Format,
		"withStats":  f.config.WithStats,
		"withColors": f.config.WithColors,
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatTable:
		return f.formatTable(snapshot)
	case FormatJSON:
		return f.formatJSON(snapshot)
	case FormatYAML:
		return f.formatYAML(snapshot)
	default:
		msg := fmt.Sprintf("unsupported format: %s", f.config.Format)
		f.log.Error(msg)
		return "", fmt.Errorf(msg)
	}
}

// sectionOf extracts one section's ordered items from the snapshot.
// Sections hold *orderedmap.OrderedMap values but survive JSON round
// trips as plain values, so both shapes are accepted.
func sectionOf(snapshot *orderedmap.OrderedMap, name string) *orderedmap.OrderedMap {
	value, ok := snapshot.Get(name)
	if !ok {
		return nil
	}
	switch items := value.(type) {
	case *orderedmap.OrderedMap:
		return items
	case orderedmap.OrderedMap:
		return &items
	default:
		return nil
	}
}
