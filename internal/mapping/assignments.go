package mapping

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/jobfiller/internal/fields"
	"github.com/jonathan/jobfiller/internal/resumepath"
)

// FromAssignments converts a field-identifier → path object, as returned by the AI mapper,
// into exact-match entries. Unparseable identifiers and invalid paths are dropped.
// Entries are ordered by identifier so the result does not depend on map iteration.
func FromAssignments(assignments map[string]string) FieldMapping {
	keys := make([]string, 0, len(assignments))
	for k := range assignments {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var m FieldMapping
	for _, key := range keys {
		path := assignments[key]
		id, err := fields.ParseIdentifier(key)
		if err != nil {
			log.Debug().Str("field", key).Msg("dropping assignment with unparseable identifier")
			continue
		}
		if !resumepath.Valid(path) {
			log.Debug().Str("field", key).Str("path", path).Msg("dropping assignment with invalid path")
			continue
		}
		patterns, _ := m.Get(path)
		m.Set(path, append(patterns, Exact(id))...)
	}
	return m
}
