package output

import (
	"github.com/iancoleman/orderedmap"

	"github.com/omushpapa/configstore/pkg/logger"
)

// stats holds counts derived from a snapshot
type stats struct {
	Sections int `json:"totalSections" yaml:"totalSections"`
	Options  int `json:"totalOptions" yaml:"totalOptions"`
}

func (f *formatter) calculateStats(snapshot *orderedmap.OrderedMap) *stats {
	f.log.Debug("Calculating snapshot statistics")

	stats := &stats{}
	for _, section := range snapshot.Keys() {
		stats.Sections++
		if items := sectionOf(snapshot, section); items != nil {
			stats.Options += len(items.Keys())
		}
	}

	f.log.WithFields(logger.Fields{
		"sections": stats.Sections,
		"options":  stats.Options,
	}).Debug("Statistics calculated")

	return stats
}
