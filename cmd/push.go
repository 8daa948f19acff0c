package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/model"
	sfpkg "github.com/sells-group/outreach-cli/pkg/salesforce"
)

var pushInput string

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push routed leads to Salesforce",
	Long: `Inserts assigned contacts as Salesforce Lead records (owner,
ICP score, routing status, leadership review) in collections of at
most 200. Skipped and unrouted contacts are not pushed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "push: init store")
		}
		defer st.Close() //nolint:errcheck

		contacts, err := loadContacts(ctx, pushInput)
		if err != nil {
			return eris.Wrap(err, "push: load contacts")
		}

		sf, err := initSalesforce()
		if err != nil {
			return eris.Wrap(err, "push: init salesforce")
		}

		runID := startRun(ctx, st, "push", pushInput)

		result, err := sfpkg.PushLeads(ctx, sf, contacts)
		if err != nil {
			finishRun(ctx, st, runID, &model.RunResult{ContactsIn: len(contacts), Error: err.Error()})
			return eris.Wrap(err, "push: leads")
		}

		finishRun(ctx, st, runID, &model.RunResult{
			ContactsIn:  len(contacts),
			ContactsOut: result.Pushed,
			Flagged:     result.Failed,
		})
		return nil
	},
}

func init() {
	pushCmd.Flags().StringVar(&pushInput, "input", "", "routed contact CSV path or URL (required)")
	_ = pushCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(pushCmd)
}
