// Package bidsname implements the BIDS filename grammar: underscore-delimited
// `key-value` entity segments with an optional trailing modality label, e.g.
// "sub-01_ses-1_run-001_T1w.nii.gz". It parses filenames into ordered entity
// maps, constructs filenames back from them, and resolves subject/session
// identifiers and sidecar paths from full filesystem paths.
package bidsname

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ModalityKey is the implicit key under which the trailing modality segment
// is stored. It is always logically last: ConstructName emits it bare at the
// end of the filename regardless of its position in the map.
const ModalityKey = "modality"

// EntityMap is an ordered mapping from entity key to value. Iteration order
// is insertion order, which for parsed filenames is the order of appearance
// in the filename with modality appended last. Keys are unique.
//
// The zero value is a valid empty map for reads; use NewEntityMap before
// writing.
type EntityMap struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewEntityMap returns an empty EntityMap ready for writes.
func NewEntityMap() EntityMap {
	return EntityMap{m: orderedmap.New[string, string]()}
}

// Set inserts key at the end of the map. It reports false, without
// modifying the map, when key is already present or the map is the
// read-only zero value.
func (em EntityMap) Set(key, value string) bool {
	if em.m == nil {
		return false
	}
	if _, ok := em.m.Get(key); ok {
		return false
	}
	em.m.Set(key, value)
	return true
}

// Get returns the value stored under key.
func (em EntityMap) Get(key string) (string, bool) {
	if em.m == nil {
		return "", false
	}
	return em.m.Get(key)
}

// Len returns the number of entities in the map.
func (em EntityMap) Len() int {
	if em.m == nil {
		return 0
	}
	return em.m.Len()
}

// Keys returns the entity keys in insertion order.
func (em EntityMap) Keys() []string {
	if em.m == nil {
		return nil
	}
	keys := make([]string, 0, em.m.Len())
	for p := em.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// String renders the map as `key-value` pairs joined by "_", in insertion
// order, with the modality rendered as any other pair. Used by summaries
// and error messages; ConstructName is the round-trip-safe renderer.
func (em EntityMap) String() string {
	if em.m == nil {
		return ""
	}
	var sb strings.Builder
	for p := em.m.Oldest(); p != nil; p = p.Next() {
		if sb.Len() > 0 {
			sb.WriteByte('_')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('-')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// MarshalJSON renders the map as a JSON object preserving insertion order.
func (em EntityMap) MarshalJSON() ([]byte, error) {
	if em.m == nil {
		return []byte("{}"), nil
	}
	return em.m.MarshalJSON()
}
