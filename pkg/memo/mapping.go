package memo

import "github.com/vango-dev/widgetkit/internal/errors"

// ErrDuplicateKey is returned by Mapping.Map when two sources share a key.
var ErrDuplicateKey = errors.New("W111")

// Mapping keeps results in correspondence with a list of sources.
type Mapping[S any, K comparable, T any] struct {
	getKey func(source S) K
	create func(source S, index int) T
	update func(source S, target T, index int)

	keys    []K
	results []T
}

// NewMapping returns an empty mapping. getKey extracts the key of a source,
// create makes the result for a new source and update refreshes a reused
// result for its current source and position.
func NewMapping[S any, K comparable, T any](
	getKey func(source S) K,
	create func(source S, index int) T,
	update func(source S, target T, index int),
) *Mapping[S, K, T] {
	return &Mapping[S, K, T]{getKey: getKey, create: create, update: update}
}

// Results returns the results in source order. The slice is owned by the
// mapping and valid until the next Map.
func (m *Mapping[S, K, T]) Results() []T {
	return m.results
}

// Map brings the results in line with sources. A source whose key matches
// the old list at the expected position, or anywhere in the old list
// searching forward from there and wrapping around, reuses that result;
// other sources get a fresh one. Keys must be unique: on a duplicate the
// mapping is left unchanged and ErrDuplicateKey is returned.
func (m *Mapping[S, K, T]) Map(sources []S) error {
	newKeys := make([]K, len(sources))
	seen := make(map[K]int, len(sources))
	for i, source := range sources {
		key := m.getKey(source)
		if first, dup := seen[key]; dup {
			return errors.New("W111").WithDetailf("sources %d and %d share key %v", first, i, key)
		}
		seen[key] = i
		newKeys[i] = key
	}

	oldKeys := m.keys
	oldResults := m.results
	results := make([]T, len(sources))
	oldIndex := 0

	for i, source := range sources {
		key := newKeys[i]
		if oldIndex < len(oldKeys) && oldKeys[oldIndex] == key {
			results[i] = oldResults[oldIndex]
			m.update(source, results[i], i)
			oldIndex++
			continue
		}

		found := false
		for j := 1; j <= len(oldKeys); j++ {
			search := (oldIndex + j) % len(oldKeys)
			if oldKeys[search] == key {
				results[i] = oldResults[search]
				m.update(source, results[i], i)
				oldIndex = search + 1
				found = true
				break
			}
		}
		if !found {
			results[i] = m.create(source, i)
		}
	}

	m.keys = newKeys
	m.results = results
	return nil
}
