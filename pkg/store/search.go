package store

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/omushpapa/configstore/pkg/logger"
)

// candidate is a fuzzy search hit pending best-match selection
type candidate struct {
	match Match
	ratio float64
}

// Search scans all stored values for value, in section and option
// insertion order.
//
// In exact mode the first equal value wins, compared
// case-insensitively with SearchOptions.IgnoreCase. In fuzzy mode
// (the default) every value scoring at or above the threshold is
// collected and the single highest-ratio match is returned, ties
// broken by the lexicographically first (section, key) pair. A nil
// Match means nothing matched; that is not an error.
func (s *Store) Search(value string, opts ...SearchOptions) (*Match, error) {
	if s.closed {
		return nil, &ClosedError{Op: "search"}
	}
	o := firstOrZero(opts)

	threshold := o.Threshold
	if threshold == 0 {
		threshold = DefaultSearchThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, &ThresholdError{Threshold: o.Threshold}
	}

	s.log.WithFields(logger.Fields{
		"value":     value,
		"exact":     o.ExactMatch,
		"threshold": threshold,
	}).Trace("Searching store")

	var candidates []candidate
	for _, section := range s.Sections() {
		items, err := s.rawItems(section)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if o.ExactMatch {
				if equalValues(item.Value, value, o.IgnoreCase) {
					return &Match{Key: item.Key, Value: evaluate(item.Value), Section: section}, nil
				}
				continue
			}
			if ratio := similarity(item.Value, value); ratio >= threshold {
				candidates = append(candidates, candidate{
					match: Match{Key: item.Key, Value: evaluate(item.Value), Section: section},
					ratio: ratio,
				})
			}
		}
	}

	return bestCandidate(candidates), nil
}

func equalValues(a, b string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// similarity is the normalized edit-distance ratio of two strings:
// twice the matched contiguous characters over the total length
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

func bestCandidate(candidates []candidate) *Match {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.ratio > best.ratio {
			best = c
			continue
		}
		if c.ratio == best.ratio {
			if c.match.Section < best.match.Section ||
				(c.match.Section == best.match.Section && c.match.Key < best.match.Key) {
				best = c
			}
		}
	}
	return &best.match
}
