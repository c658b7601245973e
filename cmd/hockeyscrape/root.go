package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for hockeyscrape.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hockeyscrape",
		Short: "Scrape hockey statistics tables into a document store",
		Long: `hockeyscrape fetches statistics pages from nhl.com, espn.com and
hockey-reference.com one URL at a time, extracts their tables into flat
key/value records and appends them to a collection per site.

Records are stored in an embedded SQLite database by default.
Use --store mongo to write to a MongoDB server instead.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewTargetsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
