package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/dedupe"
	"github.com/sells-group/outreach-cli/internal/model"
)

var (
	dedupInput      string
	dedupOutput     string
	dedupDuplicates string
	dedupThreshold  int
	dedupStrategy   string
)

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Remove duplicate contacts from a merged list",
	Long: `Classifies duplicates in a single pass: exact identity-key
matches first, then fuzzy name matches within the same company root.
Demoted records go to the duplicates file with dup_reason and kept_id
set; the clean file preserves input order.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "dedup: init store")
		}
		defer st.Close() //nolint:errcheck

		contacts, err := loadContacts(ctx, dedupInput)
		if err != nil {
			return eris.Wrap(err, "dedup: load contacts")
		}

		runID := startRun(ctx, st, "dedup", dedupInput)

		threshold := dedupThreshold
		if threshold == 0 {
			threshold = cfg.Dedup.FuzzyThreshold
		}
		strategy := dedupStrategy
		if strategy == "" {
			strategy = cfg.Dedup.MergeStrategy
		}

		result := dedupe.Dedupe(contacts, dedupe.Config{
			FuzzyThreshold: threshold,
			Strategy:       dedupe.Strategy(strategy),
		})

		if err := writeContacts(dedupOutput, result.Clean); err != nil {
			finishRun(ctx, st, runID, &model.RunResult{Error: err.Error()})
			return err
		}
		if err := writeContacts(dedupDuplicates, result.Duplicates); err != nil {
			finishRun(ctx, st, runID, &model.RunResult{Error: err.Error()})
			return err
		}

		finishRun(ctx, st, runID, &model.RunResult{
			ContactsIn:  len(contacts),
			ContactsOut: len(result.Clean),
			Flagged:     len(result.Duplicates),
			Output:      dedupOutput,
		})

		zap.L().Info("dedup complete",
			zap.Int("in", len(contacts)),
			zap.Int("clean", len(result.Clean)),
			zap.Int("duplicates", len(result.Duplicates)),
		)
		return nil
	},
}

func init() {
	dedupCmd.Flags().StringVar(&dedupInput, "input", "", "contact CSV path or URL (required)")
	dedupCmd.Flags().StringVar(&dedupOutput, "output", "contacts-clean.csv", "deduplicated CSV output path")
	dedupCmd.Flags().StringVar(&dedupDuplicates, "duplicates", "contacts-duplicates.csv", "demoted duplicates CSV output path")
	dedupCmd.Flags().IntVar(&dedupThreshold, "threshold", 0, "fuzzy name similarity threshold 0-100 (default from config)")
	dedupCmd.Flags().StringVar(&dedupStrategy, "strategy", "", "merge strategy: keep_first or keep_highest_icp (default from config)")
	_ = dedupCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(dedupCmd)
}
