package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/contactcsv"
	"github.com/sells-group/outreach-cli/internal/model"
)

var (
	ingestInputs []string
	ingestOutput string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Merge speaker/contact lists into a master CSV",
	Long: `Reads one or more contact lists (CSV or XLSX; local path,
http(s):// or ftp:// URL), maps aliased columns onto the canonical
schema, assigns UUIDs to rows without an id, and writes the merged
master CSV. Unknown columns round-trip untouched.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var merged []model.Contact
		for _, source := range ingestInputs {
			contacts, err := loadContacts(ctx, source)
			if err != nil {
				return eris.Wrapf(err, "ingest: load %s", source)
			}
			zap.L().Info("loaded contact list",
				zap.String("source", source),
				zap.Int("contacts", len(contacts)),
			)
			merged = append(merged, contacts...)
		}

		contactcsv.AssignIDs(merged)

		return writeContacts(ingestOutput, merged)
	},
}

func init() {
	ingestCmd.Flags().StringArrayVar(&ingestInputs, "input", nil, "contact list path or URL (repeatable, required)")
	ingestCmd.Flags().StringVar(&ingestOutput, "output", "contacts.csv", "master CSV output path")
	_ = ingestCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(ingestCmd)
}
