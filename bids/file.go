package bids

import (
	"fmt"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"

	"github.com/agentic-research/bidsmap/bidsname"
	"github.com/agentic-research/bidsmap/sidecar"
)

// File is one data file of the tree: its path, the entities parsed from its
// name, and the contents of its JSON sidecar (empty if none exists or
// loading was disabled). Owned exclusively by its parent Session.
type File struct {
	Path     string
	Entities bidsname.EntityMap
	Metadata *sidecar.Metadata
}

// NewFile parses the file's name and, per opts, loads its sidecar and
// backfills missing sub/ses entities from the full path. Structural parse
// errors and Strict-mode data errors abort construction; a lenient data
// error leaves the file with an empty entity map.
func NewFile(fsys billy.Filesystem, path string, opts Options) (*File, error) {
	entities, err := bidsname.ParseName(filepath.Base(path), opts.parseOptions())
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}

	if opts.ExtractFromFullPath {
		if _, ok := entities.Get("sub"); !ok {
			if v, ok := bidsname.SubjectID(path, false); ok {
				entities.Set("sub", v)
			}
		}
		if _, ok := entities.Get("ses"); !ok {
			if v, ok := bidsname.SessionID(path, false); ok {
				entities.Set("ses", v)
			}
		}
	}

	metadata := sidecar.Empty()
	if opts.LoadMetadata {
		if mp, ok := bidsname.MetadataPath(fsys, path); ok {
			metadata, err = sidecar.Load(fsys, mp)
			if err != nil {
				return nil, fmt.Errorf("file %s: %w", path, err)
			}
		}
	}

	return &File{Path: path, Entities: entities, Metadata: metadata}, nil
}

func (f *File) String() string {
	return fmt.Sprintf("%s [%s]", filepath.Base(f.Path), f.Entities)
}
