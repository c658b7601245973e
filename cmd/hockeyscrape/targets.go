package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/hockeyscrape/internal/targets"
)

// NewTargetsCmd creates the targets command.
func NewTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Print the target URLs of a site without fetching them",
		Long: `Targets prints the URLs that scrape would fetch, in scrape order,
one per line. Nothing is fetched or stored.

The list honors the configuration file and the --from, --to and --stall
flags exactly as scrape does.

Examples:
  # List every espn.com schedule page
  hockeyscrape targets --site espn

  # Count the hockey-reference.com pages of the 2000s
  hockeyscrape targets --site hockeyref --from 2000 --to 2009 --count`,
		Args: cobra.NoArgs,
		RunE: runTargetsCmd,
	}

	addTargetFlags(cmd)
	cmd.Flags().Bool("count", false,
		"Print the number of targets and the estimated duration instead of the URLs")

	return cmd
}

// runTargetsCmd executes the targets command.
func runTargetsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildTargetConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	plan, err := targets.Build(cfg.Site, cfg.SiteSettings())
	if err != nil {
		return err
	}

	count, err := cmd.Flags().GetBool("count")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if count {
		fmt.Fprintf(out, "%s: %d targets, stall %s, at least %s\n",
			plan.Site, plan.Len(), plan.Stall, plan.MinDuration())
		return nil
	}

	for _, url := range plan.URLs {
		fmt.Fprintln(out, url)
	}
	return nil
}
