package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/routing"
)

var (
	routeInput  string
	routeOutput string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Assign contacts to sales owners",
	Long: `Routes contacts in priority order (ICP score desc, seniority
rank asc, input order): sequence gate, company-conflict gate, then
least-loaded owner in the tier's role pool with capacity overflow to
the first member. High-ICP C-Suite contacts are flagged for
leadership review.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "route: init store")
		}
		defer st.Close() //nolint:errcheck

		contacts, err := loadContacts(ctx, routeInput)
		if err != nil {
			return eris.Wrap(err, "route: load contacts")
		}

		roster, err := loadRoster(ctx, routing.DefaultRules)
		if err != nil {
			return eris.Wrap(err, "route: load roster")
		}

		runID := startRun(ctx, st, "route", routeInput)

		router := routing.New(routing.Config{
			Rules:   routing.DefaultRules,
			Senders: roster.Senders,
			Roster:  roster.Roster,
			HighICP: cfg.ICP.High,
		})
		for _, c := range contacts {
			if c.InSequence {
				router.SeedSequence(c.ID)
			}
		}

		routed := router.RouteAll(contacts)

		assigned, flagged := 0, 0
		for _, c := range routed {
			if c.RoutingStatus == model.RoutingAssigned {
				assigned++
			}
			if c.LeadershipReview {
				flagged++
			}
		}

		if err := writeContacts(routeOutput, routed); err != nil {
			finishRun(ctx, st, runID, &model.RunResult{ContactsIn: len(contacts), Error: err.Error()})
			return err
		}

		finishRun(ctx, st, runID, &model.RunResult{
			ContactsIn:  len(contacts),
			ContactsOut: assigned,
			Flagged:     flagged,
			Output:      routeOutput,
		})

		zap.L().Info("routing complete",
			zap.Int("contacts", len(contacts)),
			zap.Int("assigned", assigned),
			zap.Int("leadership_review", flagged),
		)
		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeInput, "input", "", "contact CSV path or URL (required)")
	routeCmd.Flags().StringVar(&routeOutput, "output", "contacts-routed.csv", "routed CSV output path")
	_ = routeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(routeCmd)
}
