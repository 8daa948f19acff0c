package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/enrich"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/peopledata"
)

var (
	enrichInput  string
	enrichOutput string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich contacts via the people-data API",
	Long: `Looks up each contact by name and company and fills in
linkedin_url, email, company_size, funding_stage, seniority and
department. Responses are cached in the store with a TTL; email export
credits go to the highest-scored contacts first.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.PeopleData.Key == "" {
			return eris.New("people-data API key is required (OUTREACH_PEOPLEDATA_KEY)")
		}

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "enrich: init store")
		}
		defer st.Close() //nolint:errcheck

		contacts, err := loadContacts(ctx, enrichInput)
		if err != nil {
			return eris.Wrap(err, "enrich: load contacts")
		}

		runID := startRun(ctx, st, "enrich", enrichInput)

		client := peopledata.NewClient(cfg.PeopleData.Key, peopledata.WithBaseURL(cfg.PeopleData.BaseURL))
		enricher := enrich.New(client, st, enrich.Config{
			RateLimitRPM:      cfg.PeopleData.RateLimitRPM,
			Concurrency:       cfg.PeopleData.Concurrency,
			EmailICPThreshold: cfg.PeopleData.EmailICPThreshold,
			EmailBudget:       cfg.PeopleData.EmailBudget,
			CacheTTL:          time.Duration(cfg.PeopleData.CacheTTLHours) * time.Hour,
			Retry:             resilience.RetryConfig{MaxAttempts: cfg.PeopleData.MaxRetries},
		})

		enriched, err := enricher.EnrichAll(ctx, contacts)
		if err != nil {
			finishRun(ctx, st, runID, &model.RunResult{ContactsIn: len(contacts), Error: err.Error()})
			return eris.Wrap(err, "enrich: run")
		}

		if err := writeContacts(enrichOutput, enriched); err != nil {
			finishRun(ctx, st, runID, &model.RunResult{ContactsIn: len(contacts), Error: err.Error()})
			return err
		}

		finishRun(ctx, st, runID, &model.RunResult{
			ContactsIn:  len(contacts),
			ContactsOut: len(enriched),
			Output:      enrichOutput,
		})
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "contact CSV path or URL (required)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "contacts-enriched.csv", "enriched CSV output path")
	_ = enrichCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(enrichCmd)
}
