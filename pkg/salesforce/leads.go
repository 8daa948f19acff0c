package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

// maxBatchSize is the Salesforce Collections API limit per request.
const maxBatchSize = 200

// LeadFields maps a routed contact onto Salesforce Lead fields.
// Salesforce requires LastName and Company; contacts with a
// single-word name get it as LastName.
func LeadFields(c model.Contact) map[string]any {
	first, last := splitName(c.Name)

	fields := map[string]any{
		"LastName":   last,
		"Company":    c.Company,
		"Title":      c.Title,
		"LeadSource": "Conference",
	}
	if first != "" {
		fields["FirstName"] = first
	}
	if c.Email != "" {
		fields["Email"] = c.Email
	}
	if c.OwnerEmail != "" {
		fields["Routed_Owner__c"] = c.OwnerEmail
	}
	if c.ICPScore > 0 {
		fields["ICP_Score__c"] = c.ICPScore
	}
	if c.SeniorityTier != "" {
		fields["Seniority_Tier__c"] = string(c.SeniorityTier)
	}
	if c.LeadershipReview {
		fields["Leadership_Review__c"] = true
	}
	if c.RoutingStatus != "" {
		fields["Routing_Status__c"] = string(c.RoutingStatus)
	}
	return fields
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", "Unknown"
	case 1:
		return "", parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// PushResult summarizes a lead push.
type PushResult struct {
	Pushed int
	Failed int
}

// PushLeads inserts assigned contacts as Lead records in batches of at
// most 200. Contacts without a routing assignment are skipped.
// Per-record failures are logged and counted, not fatal.
func PushLeads(ctx context.Context, c Client, contacts []model.Contact) (PushResult, error) {
	var records []map[string]any
	for _, contact := range contacts {
		if contact.RoutingStatus != model.RoutingAssigned {
			continue
		}
		records = append(records, LeadFields(contact))
	}

	var result PushResult
	if len(records) == 0 {
		return result, nil
	}

	for start := 0; start < len(records); start += maxBatchSize {
		end := min(start+maxBatchSize, len(records))
		batch := records[start:end]

		results, err := c.InsertCollection(ctx, "Lead", batch)
		if err != nil {
			return result, eris.Wrap(err, fmt.Sprintf("sf: push leads batch %d-%d", start, end))
		}

		for i, r := range results {
			if r.Success {
				result.Pushed++
				continue
			}
			result.Failed++
			zap.L().Warn("lead insert rejected",
				zap.String("company", fmt.Sprint(batch[i]["Company"])),
				zap.Strings("errors", r.Errors),
			)
		}
	}

	zap.L().Info("lead push complete",
		zap.Int("pushed", result.Pushed),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
