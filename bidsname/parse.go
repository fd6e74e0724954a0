package bidsname

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrStructure marks violations of the filename/directory structure contract
// itself, as opposed to per-file data-quality problems. Structural errors are
// always returned; the Strict policy does not downgrade them.
var ErrStructure = errors.New("structural violation")

// ParseError describes a data-quality problem in one entity segment of a
// filename: a malformed pair, a duplicate key, or an empty key. Under
// Strict=false these are logged and the whole filename is discarded instead.
type ParseError struct {
	Fname   string // the original filename
	Segment string // the offending segment
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: segment %q: %s", e.Fname, e.Segment, e.Reason)
}

// ParseOptions controls parsing policy. The zero value is all-off; use
// DefaultParseOptions for the standard all-on configuration.
type ParseOptions struct {
	// RequireModality treats the last underscore segment as the modality
	// label and stores it under ModalityKey.
	RequireModality bool
	// Strict returns data-quality problems as *ParseError. When false they
	// are logged and the filename yields an empty EntityMap: the whole name
	// is discarded, never partially parsed.
	Strict bool
	// Logger receives lenient-mode warnings. Nil falls back to slog.Default.
	Logger *slog.Logger
}

// DefaultParseOptions returns the standard policy: modality required, strict.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{RequireModality: true, Strict: true, Logger: slog.Default()}
}

func (o ParseOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// ParseName tokenizes a BIDS-style filename into an ordered EntityMap.
//
// The extension (everything from the first '.') is discarded, the remainder
// is split on '_', and each segment is split on '-' into a key/value pair.
// With RequireModality the final segment is the bare modality label; a
// modality segment containing '-' is a structural error regardless of
// Strict. A filename with no segments at all parses to an empty map.
func ParseName(fname string, opts ParseOptions) (EntityMap, error) {
	em := NewEntityMap()

	stem := fname
	if i := strings.IndexByte(fname, '.'); i >= 0 {
		stem = fname[:i]
	}
	if stem == "" {
		if opts.RequireModality {
			return em, fmt.Errorf("%w: no modality segment in %q", ErrStructure, fname)
		}
		return em, nil
	}

	segments := strings.Split(stem, "_")

	modality := ""
	if opts.RequireModality {
		modality = segments[len(segments)-1]
		segments = segments[:len(segments)-1]
		if strings.Contains(modality, "-") {
			return em, fmt.Errorf("%w: modality segment %q in %q contains '-'", ErrStructure, modality, fname)
		}
	}

	fail := func(segment, reason string) (EntityMap, error) {
		err := &ParseError{Fname: fname, Segment: segment, Reason: reason}
		if opts.Strict {
			return NewEntityMap(), err
		}
		opts.logger().Warn("discarding unparseable filename",
			"fname", fname, "segment", segment, "reason", reason)
		return NewEntityMap(), nil
	}

	for _, seg := range segments {
		if strings.Count(seg, "-") != 1 {
			return fail(seg, "expected exactly one '-' separating key and value")
		}
		key, value, _ := strings.Cut(seg, "-")
		if key == "" {
			return fail(seg, "empty entity key")
		}
		if !em.Set(key, value) {
			return fail(seg, fmt.Sprintf("duplicate entity key %q", key))
		}
	}

	if opts.RequireModality {
		if !em.Set(ModalityKey, modality) {
			return fail(modality, fmt.Sprintf("duplicate entity key %q", ModalityKey))
		}
	}
	return em, nil
}

// ParsePath applies ParseName to the basename of path.
func ParsePath(path string, opts ParseOptions) (EntityMap, error) {
	return ParseName(filepath.Base(path), opts)
}
