package bidsname

import (
	"fmt"
	"strings"
)

// ConstructName is the inverse of ParseName: it joins `key-value` pairs with
// '_' in map order, appends the modality bare at the end if present, and
// appends ".ext" if ext is non-empty (a leading '.' on ext is tolerated).
// Pairs with an empty value are skipped. A key or value containing one of
// the reserved separators '-' or '_' is a caller error.
func ConstructName(em EntityMap, ext string) (string, error) {
	var parts []string
	for _, key := range em.Keys() {
		value, _ := em.Get(key)
		if key == ModalityKey || value == "" {
			continue
		}
		if err := checkSeparators(key, value); err != nil {
			return "", err
		}
		parts = append(parts, key+"-"+value)
	}
	if modality, ok := em.Get(ModalityKey); ok && modality != "" {
		if err := checkSeparators(ModalityKey, modality); err != nil {
			return "", err
		}
		parts = append(parts, modality)
	}
	name := strings.Join(parts, "_")
	if ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	return name, nil
}

func checkSeparators(key, value string) error {
	if strings.ContainsAny(key, "-_") {
		return fmt.Errorf("%w: entity key %q contains a reserved separator", ErrStructure, key)
	}
	if strings.ContainsAny(value, "-_") {
		return fmt.Errorf("%w: value %q of entity %q contains a reserved separator", ErrStructure, value, key)
	}
	return nil
}
