package bids

import (
	"fmt"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"

	"github.com/agentic-research/bidsmap/tabular"
)

// Session is one session directory. Its files are every non-JSON regular
// file found one directory level below it (the modality folders); JSON
// files are sidecars, never data. Scans holds the first *_scans.tsv found
// in the session directory itself, or the empty table.
type Session struct {
	Path  string
	ID    string
	Files Files
	Scans *tabular.Table
}

// NewSession builds one session. With opts.Longitudinal the directory name
// must carry the ses- prefix, which is stripped to form the identifier;
// otherwise the identifier is the literal "1". Any fatal error in a child
// file aborts the whole session.
func NewSession(fsys billy.Filesystem, path string, opts Options) (*Session, error) {
	name := filepath.Base(path)
	id := "1"
	if opts.Longitudinal {
		if !strings.HasPrefix(name, "ses-") {
			return nil, fmt.Errorf("%w: session directory %q missing ses- prefix", ErrStructure, path)
		}
		id = strings.TrimPrefix(name, "ses-")
	}

	s := &Session{Path: path, ID: id, Scans: tabular.Empty()}

	entries, err := fsys.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", path, err)
	}

	scansFound := false
	for _, e := range entries {
		switch {
		case e.IsDir():
			if !opts.Search {
				continue
			}
			sub := fsys.Join(path, e.Name())
			children, err := fsys.ReadDir(sub)
			if err != nil {
				return nil, fmt.Errorf("session %s: %w", path, err)
			}
			for _, c := range children {
				// One level only: deeper directories are out of contract.
				if c.IsDir() || !c.Mode().IsRegular() {
					continue
				}
				if strings.HasSuffix(c.Name(), ".json") {
					continue
				}
				f, err := NewFile(fsys, fsys.Join(sub, c.Name()), opts)
				if err != nil {
					return nil, fmt.Errorf("session %s: %w", path, err)
				}
				s.Files = append(s.Files, f)
			}
		case strings.HasSuffix(e.Name(), "_scans.tsv") && !scansFound:
			t, err := tabular.Load(fsys, fsys.Join(path, e.Name()))
			if err != nil {
				return nil, fmt.Errorf("session %s: %w", path, err)
			}
			s.Scans = t
			scansFound = true
		}
	}
	return s, nil
}

// TotalFiles returns the number of files in the session.
func (s *Session) TotalFiles() int {
	return len(s.Files)
}

func (s *Session) String() string {
	return fmt.Sprintf("session %s: %d files", s.ID, len(s.Files))
}
