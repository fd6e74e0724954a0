package bids

import (
	"fmt"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentic-research/bidsmap/sidecar"
	"github.com/agentic-research/bidsmap/tabular"
)

const (
	descriptionFile = "dataset_description.json"
	subjectsFile    = "subjects.tsv"
)

// Layout is the root of the model: the whole dataset. It owns its subjects
// exclusively; no node holds a back-reference to its parent.
type Layout struct {
	Root         string
	Subjects     []*Subject
	Longitudinal bool
	// Description holds dataset_description.json, empty if absent.
	Description *sidecar.Metadata
	// SubjectsTable holds subjects.tsv, empty if absent.
	SubjectsTable *tabular.Table
}

// New indexes the directory tree rooted at root on the OS filesystem.
func New(root string, opts Options) (*Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", root, err)
	}
	l, err := NewLayout(osfs.New(abs), ".", opts)
	if err != nil {
		return nil, err
	}
	l.Root = abs
	return l, nil
}

// NewLayout indexes the tree rooted at root within fsys. Every immediate
// sub-* subdirectory becomes a Subject, in listing order. The dataset
// description and subjects table are loaded from the root directory when
// present; absence leaves them empty.
func NewLayout(fsys billy.Filesystem, root string, opts Options) (*Layout, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("layout %s: %w", root, errNotDir)
	}

	l := &Layout{
		Root:          root,
		Longitudinal:  opts.Longitudinal,
		Description:   sidecar.Empty(),
		SubjectsTable: tabular.Empty(),
	}

	if p := fsys.Join(root, descriptionFile); exists(fsys, p) {
		if l.Description, err = sidecar.Load(fsys, p); err != nil {
			return nil, fmt.Errorf("layout %s: %w", root, err)
		}
	}
	if p := fsys.Join(root, subjectsFile); exists(fsys, p) {
		if l.SubjectsTable, err = tabular.Load(fsys, p); err != nil {
			return nil, fmt.Errorf("layout %s: %w", root, err)
		}
	}

	if !opts.Search {
		return l, nil
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", root, err)
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "sub-") {
			continue
		}
		sub, err := NewSubject(fsys, fsys.Join(root, e.Name()), opts)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", root, err)
		}
		l.Subjects = append(l.Subjects, sub)
	}
	return l, nil
}

func exists(fsys billy.Basic, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// DatasetName returns the Name field of the dataset description, if set.
func (l *Layout) DatasetName() (string, bool) {
	v, ok := l.Description.Get("Name")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// TotalFiles returns the number of files across the whole dataset.
func (l *Layout) TotalFiles() int {
	n := 0
	for _, s := range l.Subjects {
		n += s.TotalFiles()
	}
	return n
}

func (l *Layout) String() string {
	sessions := 0
	for _, s := range l.Subjects {
		sessions += len(s.Sessions)
	}
	return fmt.Sprintf("layout %s: %d subjects, %d sessions, %d files",
		l.Root, len(l.Subjects), sessions, l.TotalFiles())
}
