package output

import (
	"encoding/json"

	"github.com/iancoleman/orderedmap"

	"github.com/omushpapa/configstore/pkg/logger"
)

// jsonOutput represents the complete JSON output
type jsonOutput struct {
	Sections   *orderedmap.OrderedMap `json:"sections"`
	Statistics *stats                 `json:"statistics,omitempty"`
}

func (f *formatter) formatJSON(snapshot *orderedmap.OrderedMap) (string, error) {
	f.log.Debug("Formatting JSON output")

	var document interface{} = snapshot
	if f.config.WithStats {
		f.log.Debug("Adding statistics to JSON output")
		document = &jsonOutput{
			Sections:   snapshot,
			Statistics: f.calculateStats(snapshot),
		}
	}

	bytes, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}
