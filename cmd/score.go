package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/scorer"
)

var (
	scoreInput  string
	scoreOutput string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score contacts against the ideal customer profile",
	Long: `Infers missing seniority tier and industry vertical from title
and company keywords, then assigns each contact an ICP score of 1-5.
Fields already present (e.g. from enrichment) are never overwritten.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		contacts, err := loadContacts(cmd.Context(), scoreInput)
		if err != nil {
			return eris.Wrap(err, "score: load contacts")
		}

		scored := scorer.DefaultWeights().ScoreAll(contacts)

		return writeContacts(scoreOutput, scored)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreInput, "input", "", "contact CSV path or URL (required)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "contacts-scored.csv", "scored CSV output path")
	_ = scoreCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(scoreCmd)
}
