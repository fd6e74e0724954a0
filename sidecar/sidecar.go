// Package sidecar loads JSON metadata files into key-order-preserving maps.
// BIDS sidecars are hand-written JSON whose key order carries meaning for
// display and round-tripping, so plain map[string]any is not enough.
package sidecar

import (
	"bytes"
	"encoding/json"
	"fmt"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Metadata is an ordered string-keyed mapping. Nested JSON objects decode
// into nested *Metadata values, so order is preserved at every depth.
type Metadata = orderedmap.OrderedMap[string, any]

// Empty returns a fresh empty metadata mapping.
func Empty() *Metadata {
	return orderedmap.New[string, any]()
}

// Load reads the JSON file at path and decodes it preserving key order.
// The document must be a JSON object. A missing file is an error: callers
// that tolerate absence must probe existence first (see
// bidsname.MetadataPath).
func Load(fsys billy.Basic, path string) (*Metadata, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read sidecar %s: %w", path, err)
	}
	// The ordered map's own UnmarshalJSON keeps order at the top level
	// only; a token walk keeps nested objects ordered too.
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode sidecar %s: %w", path, err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("decode sidecar %s: document is not an object", path)
	}
	md, err := decodeObject(dec)
	if err != nil {
		return nil, fmt.Errorf("decode sidecar %s: %w", path, err)
	}
	return md, nil
}

// decodeObject consumes an object body up to and including its closing
// brace; the opening brace has already been read.
func decodeObject(dec *json.Decoder) (*Metadata, error) {
	md := Empty()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		md.Set(key, value)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return md, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // string, float64, bool or nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		var arr []any
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}
