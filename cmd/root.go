package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/bidsmap/bids"
)

var (
	flagSearch       bool
	flagMetadata     bool
	flagModality     bool
	flagLongitudinal bool
	flagStrict       bool
	flagFullPath     bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagSearch, "search", true, "Discover subjects, sessions and files")
	pf.BoolVar(&flagMetadata, "metadata", true, "Load sidecar JSON metadata")
	pf.BoolVar(&flagModality, "modality", true, "Treat the trailing filename segment as the modality")
	pf.BoolVar(&flagLongitudinal, "longitudinal", true, "Expect named ses-* session directories")
	pf.BoolVar(&flagStrict, "strict", true, "Fail on malformed filenames instead of warning")
	pf.BoolVar(&flagFullPath, "full-path-ids", true, "Backfill missing sub/ses entities from the path")
}

var rootCmd = &cobra.Command{
	Use:   "bidsmap",
	Short: "bidsmap indexes a BIDS directory tree and queries it by attribute",
}

func options() bids.Options {
	opts := bids.DefaultOptions()
	opts.Search = flagSearch
	opts.LoadMetadata = flagMetadata
	opts.RequireModality = flagModality
	opts.Longitudinal = flagLongitudinal
	opts.Strict = flagStrict
	opts.ExtractFromFullPath = flagFullPath
	return opts
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
