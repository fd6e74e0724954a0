package bids

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentic-research/bidsmap/sidecar"
)

// Filter selects files by path and by attribute. All conditions are
// conjunctive: a file must satisfy the path condition and every key.
type Filter struct {
	// Path keeps files whose path contains it as a substring, or failing
	// that matches it as a regular expression anywhere in the path.
	Path string
	// Keys maps attribute name to required value. Each name is looked up
	// in the file's entities first, then its sidecar metadata; a name
	// containing '.' additionally descends nested metadata objects. A file
	// missing any name, or holding a different value, is excluded.
	Keys map[string]string
}

// HasFiles is the one querying capability every level of the hierarchy
// implements. Container levels delegate to their children and concatenate
// the results in child order; nothing re-sorts or deduplicates. A query
// that matches nothing returns an empty sequence, never an error.
type HasFiles interface {
	GetFiles(f Filter) Files
}

// Files is an ordered collection of files, itself queryable.
type Files []*File

// GetFiles implements HasFiles over the collection itself.
func (fs Files) GetFiles(f Filter) Files {
	var re *regexp.Regexp
	if f.Path != "" {
		// Invalid patterns degrade to substring-only matching.
		re, _ = regexp.Compile(f.Path)
	}
	var out Files
	for _, file := range fs {
		if file.matches(f, re) {
			out = append(out, file)
		}
	}
	return out
}

// GetFiles implements HasFiles.
func (s *Session) GetFiles(f Filter) Files {
	return s.Files.GetFiles(f)
}

// GetFiles implements HasFiles.
func (s *Subject) GetFiles(f Filter) Files {
	var out Files
	for _, ses := range s.Sessions {
		out = append(out, ses.GetFiles(f)...)
	}
	return out
}

// GetFiles implements HasFiles.
func (l *Layout) GetFiles(f Filter) Files {
	var out Files
	for _, sub := range l.Subjects {
		out = append(out, sub.GetFiles(f)...)
	}
	return out
}

func (f *File) matches(flt Filter, re *regexp.Regexp) bool {
	if flt.Path != "" && !strings.Contains(f.Path, flt.Path) {
		if re == nil || !re.MatchString(f.Path) {
			return false
		}
	}
	for key, want := range flt.Keys {
		got, ok := f.Attribute(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Attribute looks key up in the file's entities, falling back to its
// sidecar metadata. Metadata values are compared through their string
// rendering. A key containing '.' descends nested metadata objects one
// dot-separated step at a time.
func (f *File) Attribute(key string) (string, bool) {
	if v, ok := f.Entities.Get(key); ok {
		return v, true
	}
	if v, ok := f.Metadata.Get(key); ok {
		return stringify(v), true
	}
	if strings.Contains(key, ".") {
		if v, ok := descend(f.Metadata, strings.Split(key, ".")); ok {
			return stringify(v), true
		}
	}
	return "", false
}

func descend(md *sidecar.Metadata, steps []string) (any, bool) {
	var cur any = md
	for _, step := range steps {
		m, ok := cur.(*sidecar.Metadata)
		if !ok {
			return nil, false
		}
		if cur, ok = m.Get(step); !ok {
			return nil, false
		}
	}
	return cur, true
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
