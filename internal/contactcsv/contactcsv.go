// Package contactcsv reads and writes contact CSVs. Recognized columns
// map onto model.Contact fields (with aliasing for the header variants
// conference exports use); unrecognized columns ride along opaquely in
// Contact.Extra so round-trips never lose data.
package contactcsv

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/model"
)

// columns is the canonical output order for contact CSVs.
var columns = []string{
	"id",
	"name",
	"title",
	"company",
	"source",
	"seniority_tier",
	"industry_vertical",
	"icp_score",
	"linkedin_url",
	"email",
	"company_size",
	"funding_stage",
	"department",
	"enrichment_status",
	"persona_summary",
	"context_hook",
	"personalization_themes",
	"confidence_flag",
	"validation_notes",
	"in_sequence",
	"outreach_status",
	"dup_reason",
	"kept_id",
	"owner_name",
	"owner_email",
	"owner_role",
	"sender_name",
	"sender_title",
	"sender_email",
	"routing_status",
	"routing_notes",
	"leadership_review",
	"capacity_overflow",
}

// headerAliases maps the header spellings seen in conference speaker
// exports onto canonical column names.
var headerAliases = map[string]string{
	"full name":     "name",
	"speaker":       "name",
	"speaker name":  "name",
	"contact name":  "name",
	"designation":   "title",
	"job title":     "title",
	"role":          "title",
	"organization":  "company",
	"organisation":  "company",
	"org":           "company",
	"company name":  "company",
	"email address": "email",
	"linkedin":      "linkedin_url",
	"linkedin url":  "linkedin_url",
	"industry":      "industry_vertical",
}

func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "-", " ")
	if alias, ok := headerAliases[h]; ok {
		return alias
	}
	return strings.ReplaceAll(h, " ", "_")
}

// Read parses a contact CSV. The first row must be a header. Rows
// missing a name and company are skipped.
func Read(r io.Reader) ([]model.Contact, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "contactcsv: read")
	}
	return FromRows(records)
}

// FromRows converts raw rows (header first) into contacts. XLSX input
// arrives here via fetcher.ReadXLSX.
func FromRows(rows [][]string) ([]model.Contact, error) {
	if len(rows) < 1 {
		return nil, eris.New("contactcsv: no header row")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = canonicalHeader(h)
	}

	var contacts []model.Contact
	for _, row := range rows[1:] {
		var c model.Contact
		for i, field := range row {
			if i >= len(header) {
				break
			}
			setField(&c, header[i], strings.TrimSpace(field))
		}
		if c.Name == "" && c.Company == "" {
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// AssignIDs gives a fresh UUID to every contact lacking one.
func AssignIDs(contacts []model.Contact) {
	for i := range contacts {
		if contacts[i].ID == "" {
			contacts[i].ID = uuid.New().String()
		}
	}
}

// Write emits contacts as CSV in canonical column order. Extra columns
// (the union across all contacts, sorted) append after the known set.
func Write(w io.Writer, contacts []model.Contact) error {
	extraCols := map[string]bool{}
	for _, c := range contacts {
		for k := range c.Extra {
			extraCols[k] = true
		}
	}
	extras := make([]string, 0, len(extraCols))
	for k := range extraCols {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	writer := csv.NewWriter(w)
	header := append(append([]string{}, columns...), extras...)
	if err := writer.Write(header); err != nil {
		return eris.Wrap(err, "contactcsv: write header")
	}

	for _, c := range contacts {
		row := make([]string, 0, len(header))
		for _, col := range columns {
			row = append(row, getField(c, col))
		}
		for _, col := range extras {
			row = append(row, c.Extra[col])
		}
		if err := writer.Write(row); err != nil {
			return eris.Wrap(err, "contactcsv: write row")
		}
	}

	writer.Flush()
	return eris.Wrap(writer.Error(), "contactcsv: flush")
}

func setField(c *model.Contact, col, val string) {
	switch col {
	case "id":
		c.ID = val
	case "name":
		c.Name = val
	case "title":
		c.Title = val
	case "company":
		c.Company = val
	case "source":
		c.Source = val
	case "seniority_tier":
		c.SeniorityTier = model.SeniorityTier(val)
	case "industry_vertical":
		c.IndustryVertical = val
	case "icp_score":
		c.ICPScore, _ = strconv.Atoi(val)
	case "linkedin_url":
		c.LinkedInURL = val
	case "email":
		c.Email = val
	case "company_size":
		c.CompanySize = val
	case "funding_stage":
		c.FundingStage = val
	case "department":
		c.Department = val
	case "enrichment_status":
		c.EnrichmentStatus = val
	case "persona_summary":
		c.PersonaSummary = val
	case "context_hook":
		c.ContextHook = val
	case "personalization_themes":
		c.PersonalizationThemes = val
	case "confidence_flag":
		c.ConfidenceFlag = model.ConfidenceFlag(val)
	case "validation_notes":
		c.ValidationNotes = val
	case "in_sequence":
		c.InSequence = parseBool(val)
	case "outreach_status":
		c.OutreachStatus = val
	case "dup_reason":
		c.DupReason = val
	case "kept_id":
		c.KeptID = val
	case "owner_name":
		c.OwnerName = val
	case "owner_email":
		c.OwnerEmail = val
	case "owner_role":
		c.OwnerRole = val
	case "sender_name":
		c.SenderName = val
	case "sender_title":
		c.SenderTitle = val
	case "sender_email":
		c.SenderEmail = val
	case "routing_status":
		c.RoutingStatus = model.RoutingStatus(val)
	case "routing_notes":
		c.RoutingNotes = val
	case "leadership_review":
		c.LeadershipReview = parseBool(val)
	case "capacity_overflow":
		c.CapacityOverflow = parseBool(val)
	default:
		if val == "" {
			return
		}
		if c.Extra == nil {
			c.Extra = make(map[string]string)
		}
		c.Extra[col] = val
	}
}

func getField(c model.Contact, col string) string {
	switch col {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "title":
		return c.Title
	case "company":
		return c.Company
	case "source":
		return c.Source
	case "seniority_tier":
		return string(c.SeniorityTier)
	case "industry_vertical":
		return c.IndustryVertical
	case "icp_score":
		if c.ICPScore == 0 {
			return ""
		}
		return strconv.Itoa(c.ICPScore)
	case "linkedin_url":
		return c.LinkedInURL
	case "email":
		return c.Email
	case "company_size":
		return c.CompanySize
	case "funding_stage":
		return c.FundingStage
	case "department":
		return c.Department
	case "enrichment_status":
		return c.EnrichmentStatus
	case "persona_summary":
		return c.PersonaSummary
	case "context_hook":
		return c.ContextHook
	case "personalization_themes":
		return c.PersonalizationThemes
	case "confidence_flag":
		return string(c.ConfidenceFlag)
	case "validation_notes":
		return c.ValidationNotes
	case "in_sequence":
		return formatBool(c.InSequence)
	case "outreach_status":
		return c.OutreachStatus
	case "dup_reason":
		return c.DupReason
	case "kept_id":
		return c.KeptID
	case "owner_name":
		return c.OwnerName
	case "owner_email":
		return c.OwnerEmail
	case "owner_role":
		return c.OwnerRole
	case "sender_name":
		return c.SenderName
	case "sender_title":
		return c.SenderTitle
	case "sender_email":
		return c.SenderEmail
	case "routing_status":
		return string(c.RoutingStatus)
	case "routing_notes":
		return c.RoutingNotes
	case "leadership_review":
		return formatBool(c.LeadershipReview)
	case "capacity_overflow":
		return formatBool(c.CapacityOverflow)
	}
	return ""
}

func parseBool(val string) bool {
	switch strings.ToLower(val) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return ""
}
