package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/persona"
	"github.com/sells-group/outreach-cli/pkg/llm"
)

var (
	personaInput  string
	personaOutput string
	personaLimit  int
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Generate outreach personas for scored contacts",
	Long: `Calls the LLM once per contact (highest ICP score first) and
validates the returned persona: structure, theme count, generic-phrase
blacklist, company/title references. Each contact ends up with a
confidence flag; LOW-confidence personas are never auto-sent.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (OUTREACH_ANTHROPIC_KEY)")
		}

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "persona: init store")
		}
		defer st.Close() //nolint:errcheck

		contacts, err := loadContacts(ctx, personaInput)
		if err != nil {
			return eris.Wrap(err, "persona: load contacts")
		}

		runID := startRun(ctx, st, "persona", personaInput)

		limit := personaLimit
		if limit == 0 {
			limit = cfg.Anthropic.PersonaLimit
		}

		gen := persona.NewGenerator(llm.NewClient(cfg.Anthropic.Key), persona.GeneratorConfig{
			Model:       cfg.Anthropic.Model,
			MaxTokens:   int64(cfg.Anthropic.MaxTokens),
			Temperature: cfg.Anthropic.Temperature,
			Limit:       limit,
		})

		generated, err := gen.GenerateAll(ctx, contacts)
		if err != nil {
			finishRun(ctx, st, runID, &model.RunResult{ContactsIn: len(contacts), Error: err.Error()})
			return eris.Wrap(err, "persona: run")
		}

		flagged := 0
		for _, c := range generated {
			if c.ConfidenceFlag == model.ConfidenceLow {
				flagged++
			}
		}

		if err := writeContacts(personaOutput, generated); err != nil {
			finishRun(ctx, st, runID, &model.RunResult{ContactsIn: len(contacts), Error: err.Error()})
			return err
		}

		finishRun(ctx, st, runID, &model.RunResult{
			ContactsIn:  len(contacts),
			ContactsOut: len(generated),
			Flagged:     flagged,
			Output:      personaOutput,
		})
		return nil
	},
}

func init() {
	personaCmd.Flags().StringVar(&personaInput, "input", "", "contact CSV path or URL (required)")
	personaCmd.Flags().StringVar(&personaOutput, "output", "contacts-personas.csv", "persona CSV output path")
	personaCmd.Flags().IntVar(&personaLimit, "limit", 0, "max personas to generate, top contacts by ICP score (0 = config default)")
	_ = personaCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(personaCmd)
}
