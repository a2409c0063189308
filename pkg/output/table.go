package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/iancoleman/orderedmap"

	"github.com/omushpapa/configstore/pkg/logger"
)

// formatTable renders the snapshot as aligned key/value rows grouped
// under section headers
func (f *formatter) formatTable(snapshot *orderedmap.OrderedMap) (string, error) {
	f.log.Debug("Formatting table output")

	var builder strings.Builder
	for i, section := range snapshot.Keys() {
		if i > 0 {
			builder.WriteString("\n")
		}
		f.formatSection(&builder, section, sectionOf(snapshot, section))
	}

	if f.config.WithStats {
		f.log.Debug("Adding statistics to output")
		stats := f.calculateStats(snapshot)
		builder.WriteString("\nStatistics:\n")
		builder.WriteString(fmt.Sprintf("  Sections: %d\n", stats.Sections))
		builder.WriteString(fmt.Sprintf("  Options:  %d\n", stats.Options))
	}

	return builder.String(), nil
}

func (f *formatter) formatSection(builder *strings.Builder, section string, items *orderedmap.OrderedMap) {
	f.log.WithFields(logger.Fields{
		"section": section,
	}).Trace("Formatting section")

	header := "[" + section + "]"
	if f.config.WithColors {
		header = color.New(color.FgBlue, color.Bold).Sprint(header)
	}
	builder.WriteString(header + "\n")

	if items == nil {
		return
	}

	width := 0
	for _, key := range items.Keys() {
		if len(key) > width {
			width = len(key)
		}
	}

	for _, key := range items.Keys() {
		value, _ := items.Get(key)
		name := fmt.Sprintf("%-*s", width, key)
		if f.config.WithColors {
			name = color.New(color.FgCyan).Sprint(name)
		}
		builder.WriteString(fmt.Sprintf("%s = %v\n", name, value))
	}
}
