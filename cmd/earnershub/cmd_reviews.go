package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"earnershub/internal/models"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <review text>",
	Short: "Classify a review and save it",
	Long: `Classify the sentiment of a review with a model trained on the stored
reviews, append it to the reviews file and print the new credibility.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <review text>",
	Short: "Classify a review without saving it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List all submitted reviews",
	Args:  cobra.NoArgs,
	RunE:  runReviews,
}

var credibilityCmd = &cobra.Command{
	Use:   "credibility",
	Short: "Show the app credibility score",
	Args:  cobra.NoArgs,
	RunE:  runCredibility,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.reviews.Submit(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sentiment: %s\n", strings.ToUpper(result.Sentiment))
	fmt.Fprintf(out, "Saved on %s\n", result.Review.Date)
	printCredibility(cmd, result.Report)
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	label, err := a.reviews.Classify(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sentiment: %s\n", strings.ToUpper(label))
	return nil
}

func runReviews(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	reviews, err := a.reviews.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(reviews) == 0 {
		fmt.Fprintln(out, "No reviews yet. Submit some with: earnershub submit <text>")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSENTIMENT\tREVIEW")
	for _, r := range reviews {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Date, r.Sentiment, r.Text)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Total: %d reviews\n", len(reviews))
	return nil
}

func runCredibility(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.reviews.Credibility(cmd.Context())
	if err != nil {
		return err
	}
	printCredibility(cmd, report)
	return nil
}

func printCredibility(cmd *cobra.Command, report models.CredibilityReport) {
	out := cmd.OutOrStdout()
	switch report.Tier {
	case models.TierTrusted:
		fmt.Fprintln(out, "Credibility: TRUSTED App")
	case models.TierRisky:
		fmt.Fprintln(out, "Credibility: RISKY App")
	case models.TierScam:
		fmt.Fprintln(out, "Credibility: SCAM / Untrustworthy App")
	default:
		fmt.Fprintln(out, "Not enough reviews yet to assess credibility.")
		return
	}
	fmt.Fprintf(out, "Positive: %d  Negative: %d  (%.1f%% positive)\n",
		report.Positive, report.Negative, report.PositivePercent)
}
