package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"earnershub/internal/models"

	"github.com/spf13/cobra"
)

var (
	sourceType   string
	sourceInput  models.SourceRequest
	sourceChoice = strings.Join(models.SourceTypes, ", ")
)

// sourcesCmd groups the earning sources directory commands
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Browse and extend the earning sources directory",
	Long: `Browse and extend the earning sources directory.

Subcommands:
  list   - List sources, optionally filtered by type
  add    - Add a source`,
	RunE: runSourcesList,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sources, optionally filtered by type",
	Args:  cobra.NoArgs,
	RunE:  runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a source to the directory",
	Args:  cobra.NoArgs,
	RunE:  runSourcesAdd,
}

func init() {
	for _, c := range []*cobra.Command{sourcesCmd, sourcesListCmd} {
		c.Flags().StringVarP(&sourceType, "type", "t", models.SourceTypeAll, "Filter by type: All, "+sourceChoice)
	}

	sourcesAddCmd.Flags().StringVar(&sourceInput.Name, "name", "", "Source name")
	sourcesAddCmd.Flags().StringVarP(&sourceInput.Type, "type", "t", "", "Source type: "+sourceChoice)
	sourcesAddCmd.Flags().StringVar(&sourceInput.Link, "link", "", "Link to the app, channel, site or group")
	sourcesAddCmd.Flags().StringVar(&sourceInput.SubmittedBy, "submitted-by", "", "Your name")
	sourcesAddCmd.Flags().StringVar(&sourceInput.TrustStatus, "trust-status", "", "Trusted, Risky or Scam")
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	sources, selector, err := a.sources.Browse(cmd.Context(), sourceType)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sources) == 0 {
		fmt.Fprintf(out, "No sources listed for %s yet.\n", selector)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tNAME\tTYPE\tTRUST\tSUBMITTED BY\tLINK")
	for _, s := range sources {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.Date, s.Name, s.Type, s.TrustStatus, s.SubmittedBy, s.Link)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Total: %d sources (%s)\n", len(sources), selector)
	return nil
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	source, err := a.sources.Add(cmd.Context(), sourceInput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s)\n", source.Name, source.Type, source.TrustStatus)
	return nil
}
