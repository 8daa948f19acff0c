package model

// Owner is a sales team member who can own routed contacts.
type Owner struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// Roster maps a role pool name (e.g. "Senior AE", "AE", "SDR") to its
// members. Member order matters: it is the tie-break for least-loaded
// selection and the first member is the capacity-overflow fallback.
type Roster map[string][]Owner

// SenderPersona is the identity an outreach message appears to come
// from. It is derived from seniority tier, independent of which owner
// was assigned.
type SenderPersona struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
	Email string `json:"email" yaml:"email"`
}

// RouteRule maps a seniority tier to the owning role pool and the
// sender level used for that tier.
type RouteRule struct {
	OwnerRole   string `json:"owner_role" yaml:"owner_role"`
	SenderLevel string `json:"sender_level" yaml:"sender_level"`
}
