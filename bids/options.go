// Package bids builds an immutable in-memory model of a BIDS-convention
// directory tree (root → subject → session → file) and answers attribute
// queries over it. Construction is eager and single-threaded: the tree is
// read once, side-tables and sidecar metadata included, and never revisited;
// after construction every node is a read-only snapshot safe for concurrent
// readers.
//
// Child order follows the order the underlying filesystem lists directory
// entries in. No sort is imposed, so ordering across platforms and
// filesystem implementations is not guaranteed.
package bids

import (
	"errors"
	"log/slog"

	"github.com/agentic-research/bidsmap/bidsname"
)

// ErrStructure marks directory-layout violations: a directory the model
// addresses as a subject or session whose name lacks the required prefix.
// It aliases bidsname.ErrStructure so errors.Is works across both packages.
var ErrStructure = bidsname.ErrStructure

var errNotDir = errors.New("not a directory")

// Options is the configuration bundle shared by every constructor in the
// hierarchy; each level passes it unchanged to the children it discovers.
// The zero value is all-off; DefaultOptions is the standard configuration.
type Options struct {
	// Search discovers children recursively. When false, collections are
	// left empty and only the level's own directory is examined.
	Search bool
	// LoadMetadata loads each file's JSON sidecar, if one exists.
	LoadMetadata bool
	// RequireModality treats the trailing filename segment as the modality.
	RequireModality bool
	// Longitudinal marks a dataset with named ses-* session directories.
	// When false each immediate subdirectory of a subject is one session
	// with identifier "1".
	Longitudinal bool
	// Strict makes filename data-quality problems fatal to construction.
	// When false they log a warning and the file keeps an empty entity map.
	Strict bool
	// ExtractFromFullPath backfills a file's missing sub/ses entities from
	// sub-*/ses-* directory segments of its full path.
	ExtractFromFullPath bool
	// Logger receives lenient-mode warnings. Nil falls back to slog.Default.
	Logger *slog.Logger
}

// DefaultOptions returns the standard configuration: everything on.
func DefaultOptions() Options {
	return Options{
		Search:              true,
		LoadMetadata:        true,
		RequireModality:     true,
		Longitudinal:        true,
		Strict:              true,
		ExtractFromFullPath: true,
		Logger:              slog.Default(),
	}
}

func (o Options) parseOptions() bidsname.ParseOptions {
	return bidsname.ParseOptions{
		RequireModality: o.RequireModality,
		Strict:          o.Strict,
		Logger:          o.Logger,
	}
}
