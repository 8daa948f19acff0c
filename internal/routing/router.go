// Package routing assigns clean, scored contacts to sales owners and
// sender personas while enforcing the per-run allocation invariants:
// no contact enters two active sequences, no company is owned by two
// different people, and high-value C-Suite contacts are flagged for
// leadership review before any automated send.
package routing

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/dedupe"
	"github.com/sells-group/outreach-cli/internal/model"
)

// DefaultRules is the fixed seniority → (owner role, sender level)
// routing table.
var DefaultRules = map[model.SeniorityTier]model.RouteRule{
	model.TierCSuite:     {OwnerRole: "Senior AE", SenderLevel: "Leadership"},
	model.TierVPDirector: {OwnerRole: "AE", SenderLevel: "AE"},
	model.TierManagerIC:  {OwnerRole: "SDR", SenderLevel: "SDR"},
}

// fallbackRole is used when a contact's seniority tier has no routing
// rule or the rule's pool is missing from the roster.
const fallbackRole = "SDR"

// Config carries the read-only tables for one routing run.
type Config struct {
	Rules   map[model.SeniorityTier]model.RouteRule
	Senders map[string]model.SenderPersona
	Roster  model.Roster
	// HighICP is the score at or above which a C-Suite contact is
	// flagged for leadership review.
	HighICP int
}

// Router holds the mutable allocation state for a single run. It is
// not safe for concurrent use: gate decisions read state that the
// subsequent commit writes, and processing order is part of the
// correctness contract.
type Router struct {
	cfg           Config
	assignedCount map[string]int    // owner name → assigned count
	companyOwner  map[string]string // company root → owner name
	sequenceIDs   map[string]bool   // contact IDs in an active sequence
	log           *zap.Logger
}

// New creates a Router with fresh state. All tables in cfg are
// treated as read-only for the router's lifetime.
func New(cfg Config) *Router {
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules
	}
	if cfg.HighICP == 0 {
		cfg.HighICP = 5
	}
	return &Router{
		cfg:           cfg,
		assignedCount: make(map[string]int),
		companyOwner:  make(map[string]string),
		sequenceIDs:   make(map[string]bool),
		log:           zap.L().Named("routing"),
	}
}

// SeedSequence marks contact IDs as already belonging to an active
// sequence, so the sequence gate skips them.
func (r *Router) SeedSequence(ids ...string) {
	for _, id := range ids {
		if id != "" {
			r.sequenceIDs[id] = true
		}
	}
}

// AssignedCount reports how many contacts the named owner holds.
func (r *Router) AssignedCount(owner string) int {
	return r.assignedCount[owner]
}

// CompanyOwner reports the owner registered for a company root, if any.
func (r *Router) CompanyOwner(root string) (string, bool) {
	owner, ok := r.companyOwner[root]
	return owner, ok
}

// Route runs the full decision procedure for a single contact and
// returns the contact with routing fields populated. State is
// committed only on a successful (non-skipped) assignment.
func (r *Router) Route(c model.Contact) model.Contact {
	c.RoutingStatus = model.RoutingAssigned
	c.LeadershipReview = false
	c.CapacityOverflow = false

	// Gate 1: already in a sequence.
	if c.ID != "" && r.sequenceIDs[c.ID] {
		c.RoutingStatus = model.RoutingSkipInSequence
		c.RoutingNotes = "contact already in an active sequence"
		r.log.Info("skip: in sequence", zap.String("name", c.Name), zap.String("id", c.ID))
		return c
	}

	// Gate 2: company conflict. Same normalization as dedup, so
	// "Razorpay" and "Razorpay Software Pvt Ltd" collide here too.
	root := dedupe.NormalizeCompany(c.Company)
	if existing, ok := r.companyOwner[root]; ok {
		c.RoutingStatus = model.RoutingSkipCompanyConflict
		c.RoutingNotes = "company already owned by " + existing
		// Informational: report the existing owner, no new assignment.
		c.OwnerName = existing
		r.log.Info("skip: company conflict",
			zap.String("name", c.Name),
			zap.String("company", c.Company),
			zap.String("existing_owner", existing),
		)
		return c
	}

	// Owner assignment.
	role := r.ownerRole(c.SeniorityTier)
	owner, overflow := r.assignOwner(role)
	c.OwnerName = owner.Name
	c.OwnerEmail = owner.Email
	c.OwnerRole = role
	c.CapacityOverflow = overflow

	// Sender persona, fixed per tier.
	sender := r.sender(c.SeniorityTier)
	c.SenderName = sender.Name
	c.SenderTitle = sender.Title
	c.SenderEmail = sender.Email

	// Leadership review: advisory only, never blocks assignment.
	if c.ICPScore >= r.cfg.HighICP && c.SeniorityTier == model.TierCSuite {
		c.LeadershipReview = true
		c.RoutingNotes = "high ICP C-Suite: leadership must approve before send"
	}

	// Commit.
	r.companyOwner[root] = owner.Name
	if c.ID != "" {
		r.sequenceIDs[c.ID] = true
	}

	r.log.Info("assigned",
		zap.String("name", c.Name),
		zap.String("owner", owner.Name),
		zap.String("role", role),
		zap.Bool("leadership_review", c.LeadershipReview),
		zap.Bool("capacity_overflow", overflow),
	)
	return c
}

// RouteAll routes a batch in fixed priority order: descending ICP
// score, then ascending seniority rank, then input order. The
// highest-value contacts get first pick of owner capacity. The
// returned slice is in priority order.
func (r *Router) RouteAll(contacts []model.Contact) []model.Contact {
	ordered := make([]model.Contact, len(contacts))
	copy(ordered, contacts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ICPScore != ordered[j].ICPScore {
			return ordered[i].ICPScore > ordered[j].ICPScore
		}
		return ordered[i].SeniorityTier.Rank() < ordered[j].SeniorityTier.Rank()
	})

	for i, c := range ordered {
		ordered[i] = r.Route(c)
	}
	return ordered
}

// ownerRole resolves the role pool for a tier. Unknown tiers fall
// back to the lowest-privilege pool.
func (r *Router) ownerRole(tier model.SeniorityTier) string {
	if rule, ok := r.cfg.Rules[tier]; ok {
		if _, exists := r.cfg.Roster[rule.OwnerRole]; exists {
			return rule.OwnerRole
		}
	}
	return fallbackRole
}

// assignOwner picks the least-loaded member of the role pool who is
// still under capacity. Tie-break is roster order, so selection is
// reproducible. If every member is at capacity, the first member
// takes the overflow: capacity is a soft signal for human follow-up,
// not a hard block.
func (r *Router) assignOwner(role string) (model.Owner, bool) {
	members := r.cfg.Roster[role]
	if len(members) == 0 {
		members = r.cfg.Roster[fallbackRole]
	}
	if len(members) == 0 {
		return model.Owner{}, false
	}

	best := -1
	for i, m := range members {
		if r.assignedCount[m.Name] >= m.Capacity {
			continue
		}
		if best < 0 || r.assignedCount[m.Name] < r.assignedCount[members[best].Name] {
			best = i
		}
	}

	if best < 0 {
		fallback := members[0]
		r.assignedCount[fallback.Name]++
		r.log.Warn("all owners at capacity, overflowing",
			zap.String("role", role),
			zap.String("owner", fallback.Name),
		)
		return fallback, true
	}

	r.assignedCount[members[best].Name]++
	return members[best], false
}

// sender resolves the sender persona for a tier, falling back to the
// SDR identity.
func (r *Router) sender(tier model.SeniorityTier) model.SenderPersona {
	level := fallbackRole
	if rule, ok := r.cfg.Rules[tier]; ok {
		level = rule.SenderLevel
	}
	if p, ok := r.cfg.Senders[level]; ok {
		return p
	}
	return r.cfg.Senders["SDR"]
}
