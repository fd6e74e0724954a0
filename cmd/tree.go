package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentic-research/bidsmap/bids"
)

func init() {
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree [root]",
	Short: "Index a dataset and print its subject/session/file tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := bids.New(args[0], options())
		if err != nil {
			return err
		}

		header := color.New(color.FgCyan, color.Bold)
		if name, ok := layout.DatasetName(); ok {
			header.Println(name)
		}
		header.Println(layout.String())

		subjectC := color.New(color.FgGreen)
		sessionC := color.New(color.FgYellow)
		for _, sub := range layout.Subjects {
			subjectC.Printf("sub-%s (%d files)\n", sub.ID, sub.TotalFiles())
			for _, ses := range sub.Sessions {
				sessionC.Printf("  ses-%s (%d files)\n", ses.ID, len(ses.Files))
				for _, f := range ses.Files {
					fmt.Printf("    %s\n", f)
				}
			}
		}
		return nil
	},
}
