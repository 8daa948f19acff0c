package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/outreach"
)

var (
	outreachInput  string
	outreachOutput string
)

var outreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Build LinkedIn and email messages for contacts",
	Long: `Builds the connection note, during-event DM, and email for
each contact: variant by seniority tier and score, sender persona by
tier, readiness gates with skip reasons, 300-char LinkedIn limit.
Writes one JSON record per contact to the output file (stdout if "-").`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		contacts, err := loadContacts(ctx, outreachInput)
		if err != nil {
			return eris.Wrap(err, "outreach: load contacts")
		}

		roster, err := loadRoster(ctx, nil)
		if err != nil {
			return eris.Wrap(err, "outreach: load roster")
		}

		builder := outreach.NewBuilder(outreach.Config{
			Senders:     roster.Senders,
			MinEmailICP: cfg.Outreach.MinEmailICP,
			CharLimit:   cfg.Outreach.LinkedInCharLimit,
		})
		results := builder.BuildAll(contacts)

		return writeMessages(outreachOutput, results)
	},
}

func writeMessages(path string, results []outreach.Result) error {
	w := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "outreach: create %s", path)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func init() {
	outreachCmd.Flags().StringVar(&outreachInput, "input", "", "contact CSV path or URL (required)")
	outreachCmd.Flags().StringVar(&outreachOutput, "output", "messages.json", `messages JSON output path ("-" for stdout)`)
	_ = outreachCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(outreachCmd)
}
