package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/ohler55/ojg/pretty"
	"github.com/spf13/cobra"

	"github.com/agentic-research/bidsmap/bids"
)

var (
	flagPath    string
	flagFilters []string
	flagJSON    bool
)

func init() {
	filesCmd.Flags().StringVar(&flagPath, "path", "", "Substring or pattern the file path must match")
	filesCmd.Flags().StringArrayVar(&flagFilters, "filter", nil, "Attribute filter key=value (repeatable)")
	filesCmd.Flags().BoolVar(&flagJSON, "json", false, "Print entities and metadata as JSON")
	rootCmd.AddCommand(filesCmd)
}

var filesCmd = &cobra.Command{
	Use:   "files [root]",
	Short: "Query the files of a dataset by path and attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := bids.Filter{Path: flagPath, Keys: map[string]string{}}
		for _, f := range flagFilters {
			k, v, ok := strings.Cut(f, "=")
			if !ok {
				return fmt.Errorf("invalid filter %q, want key=value", f)
			}
			filter.Keys[k] = v
		}

		layout, err := bids.New(args[0], options())
		if err != nil {
			return err
		}

		for _, f := range layout.GetFiles(filter) {
			if !flagJSON {
				fmt.Println(f.Path)
				continue
			}
			// Ordered maps marshal in key order; reparse with ojg purely
			// for indented rendering.
			raw, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("render %s: %w", f.Path, err)
			}
			parsed, err := oj.Parse(raw)
			if err != nil {
				return fmt.Errorf("render %s: %w", f.Path, err)
			}
			fmt.Println(pretty.JSON(parsed, 80.3))
		}
		return nil
	},
}
