package model

import "strings"

// SeniorityTier is the coarse role-level classification driving routing
// and sender persona selection.
type SeniorityTier string

const (
	TierCSuite     SeniorityTier = "C-Suite"
	TierVPDirector SeniorityTier = "VP/Director"
	TierManagerIC  SeniorityTier = "Manager/IC"
)

// Rank returns the priority rank of a tier: lower is more senior.
// Unknown tiers rank below Manager/IC so they route last.
func (t SeniorityTier) Rank() int {
	switch t {
	case TierCSuite:
		return 0
	case TierVPDirector:
		return 1
	case TierManagerIC:
		return 2
	default:
		return 3
	}
}

// RoutingStatus is the terminal routing outcome for a contact within a run.
type RoutingStatus string

const (
	RoutingAssigned            RoutingStatus = "assigned"
	RoutingSkipInSequence      RoutingStatus = "skip_in_sequence"
	RoutingSkipCompanyConflict RoutingStatus = "skip_company_conflict"
)

// ConfidenceFlag grades an LLM persona output.
type ConfidenceFlag string

const (
	ConfidenceHigh   ConfidenceFlag = "HIGH"
	ConfidenceMedium ConfidenceFlag = "MEDIUM"
	ConfidenceLow    ConfidenceFlag = "LOW"
)

// Contact is the unit of data flowing through every pipeline stage.
// ID is assigned once at ingestion and never reused. Name and Company
// are free text and not guaranteed well-formed.
type Contact struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Source  string `json:"source,omitempty"`

	// Scoring fields (enrichment/scoring stages).
	SeniorityTier    SeniorityTier `json:"seniority_tier"`
	IndustryVertical string        `json:"industry_vertical"`
	ICPScore         int           `json:"icp_score"`

	// Enrichment fields (people-data API).
	LinkedInURL      string `json:"linkedin_url,omitempty"`
	Email            string `json:"email,omitempty"`
	CompanySize      string `json:"company_size,omitempty"`
	FundingStage     string `json:"funding_stage,omitempty"`
	Department       string `json:"department,omitempty"`
	EnrichmentStatus string `json:"enrichment_status,omitempty"`

	// Persona fields (LLM stage). PersonalizationThemes is stored
	// pipe-separated for CSV round-tripping.
	PersonaSummary        string         `json:"persona_summary,omitempty"`
	ContextHook           string         `json:"context_hook,omitempty"`
	PersonalizationThemes string         `json:"personalization_themes,omitempty"`
	ConfidenceFlag        ConfidenceFlag `json:"confidence_flag,omitempty"`
	ValidationNotes       string         `json:"validation_notes,omitempty"`

	// Sequence/outreach lifecycle, supplied upstream.
	InSequence     bool   `json:"in_sequence"`
	OutreachStatus string `json:"outreach_status,omitempty"`

	// Deduplicator outputs.
	DupReason string `json:"dup_reason,omitempty"`
	KeptID    string `json:"kept_id,omitempty"`

	// Router outputs.
	OwnerName        string        `json:"owner_name,omitempty"`
	OwnerEmail       string        `json:"owner_email,omitempty"`
	OwnerRole        string        `json:"owner_role,omitempty"`
	SenderName       string        `json:"sender_name,omitempty"`
	SenderTitle      string        `json:"sender_title,omitempty"`
	SenderEmail      string        `json:"sender_email,omitempty"`
	RoutingStatus    RoutingStatus `json:"routing_status,omitempty"`
	RoutingNotes     string        `json:"routing_notes,omitempty"`
	LeadershipReview bool          `json:"leadership_review"`
	CapacityOverflow bool          `json:"capacity_overflow"`

	// Extra preserves unrecognized CSV columns opaquely so round-trips
	// through the external store never lose data.
	Extra map[string]string `json:"extra,omitempty"`
}

// Themes splits the pipe-separated personalization themes, dropping
// empty entries.
func (c Contact) Themes() []string {
	if c.PersonalizationThemes == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(c.PersonalizationThemes, "|") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
