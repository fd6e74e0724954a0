package bids

import (
	"fmt"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
)

// Subject is one sub-* directory and the sessions beneath it.
type Subject struct {
	Path     string
	ID       string
	Sessions []*Session
}

// NewSubject builds one subject. The directory name must carry the sub-
// prefix, which is stripped to form the identifier. With opts.Longitudinal
// only ses-* subdirectories become sessions; without it every immediate
// subdirectory becomes one session with identifier "1" — several
// date-folders yield several sessions, none are merged.
func NewSubject(fsys billy.Filesystem, path string, opts Options) (*Subject, error) {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "sub-") {
		return nil, fmt.Errorf("%w: subject directory %q missing sub- prefix", ErrStructure, path)
	}

	sub := &Subject{Path: path, ID: strings.TrimPrefix(name, "sub-")}
	if !opts.Search {
		return sub, nil
	}

	entries, err := fsys.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("subject %s: %w", path, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if opts.Longitudinal && !strings.HasPrefix(e.Name(), "ses-") {
			continue
		}
		ses, err := NewSession(fsys, fsys.Join(path, e.Name()), opts)
		if err != nil {
			return nil, fmt.Errorf("subject %s: %w", path, err)
		}
		sub.Sessions = append(sub.Sessions, ses)
	}
	return sub, nil
}

// TotalFiles returns the number of files across all sessions.
func (s *Subject) TotalFiles() int {
	n := 0
	for _, ses := range s.Sessions {
		n += ses.TotalFiles()
	}
	return n
}

func (s *Subject) String() string {
	return fmt.Sprintf("subject %s: %d sessions, %d files", s.ID, len(s.Sessions), s.TotalFiles())
}
