// Package outreach merges persona data into message templates to
// produce send-ready LinkedIn and email copy for each contact. Every
// contact passes through readiness gates per channel; failed gates
// produce an explicit skip reason, never a half-filled message.
package outreach

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/routing"
)

// linkedInCharLimit is LinkedIn's connection-note ceiling.
const linkedInCharLimit = 300

// Config controls message building.
type Config struct {
	Senders map[string]model.SenderPersona
	// MinEmailICP is the ICP score below which email outreach is
	// skipped. Default 3.
	MinEmailICP int
	// CharLimit overrides the LinkedIn note limit; 0 = default 300.
	CharLimit int
}

// Messages holds the three built messages for one contact plus the
// per-channel readiness outcome.
type Messages struct {
	Variant         Variant
	LinkedInConnect string
	DuringEventDM   string
	EmailSubject    string
	EmailBody       string
	LinkedInReady   bool
	EmailReady      bool
	LinkedInSkip    string
	EmailSkip       string
}

// Builder fills templates from contact + persona data.
type Builder struct {
	cfg   Config
	title cases.Caser
	log   *zap.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(cfg Config) *Builder {
	if cfg.MinEmailICP == 0 {
		cfg.MinEmailICP = 3
	}
	if cfg.CharLimit == 0 {
		cfg.CharLimit = linkedInCharLimit
	}
	return &Builder{
		cfg:   cfg,
		title: cases.Title(language.English, cases.NoLower),
		log:   zap.L().Named("outreach"),
	}
}

// ReadyForLinkedIn checks the LinkedIn channel gates. The returned
// reason is empty when the contact is ready.
func (b *Builder) ReadyForLinkedIn(c model.Contact) (bool, string) {
	if strings.TrimSpace(c.LinkedInURL) == "" {
		return false, "no_linkedin_url"
	}
	if c.ConfidenceFlag == model.ConfidenceLow {
		return false, "low_confidence_persona"
	}
	if c.InSequence {
		return false, "already_in_sequence"
	}
	if c.OutreachStatus != "" && c.OutreachStatus != "pending" {
		return false, "status_" + c.OutreachStatus
	}
	return true, ""
}

// ReadyForEmail checks the email channel gates.
func (b *Builder) ReadyForEmail(c model.Contact) (bool, string) {
	if strings.TrimSpace(c.Email) == "" {
		return false, "no_email"
	}
	if c.ICPScore < b.cfg.MinEmailICP {
		return false, "icp_too_low"
	}
	if c.ConfidenceFlag == model.ConfidenceLow {
		return false, "low_confidence_persona"
	}
	if c.InSequence {
		return false, "already_in_sequence"
	}
	if c.OutreachStatus != "" && c.OutreachStatus != "pending" {
		return false, "status_" + c.OutreachStatus
	}
	return true, ""
}

var honorificPrefix = regexp.MustCompile(`(?i)^(dr\.?|mr\.?|mrs\.?|ms\.?|prof\.?|shri\.?|smt\.?)\s+`)

// FirstName extracts a greeting-ready first name: honorific stripped,
// first word, title-cased.
func (b *Builder) FirstName(fullName string) string {
	name := honorificPrefix.ReplaceAllString(strings.TrimSpace(fullName), "")
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return b.title.String(strings.ToLower(fields[0]))
}

// variables builds the substitution map for one contact.
func (b *Builder) variables(c model.Contact) map[string]string {
	themes := c.Themes()
	p1 := "data-driven decision making"
	p2 := "competitive intelligence"
	if len(themes) > 0 {
		p1 = strings.ToLower(themes[0])
	}
	if len(themes) > 1 {
		p2 = strings.ToLower(themes[1])
	}

	company := c.Company
	if strings.TrimSpace(company) == "" {
		company = "your company"
	}

	sender := b.sender(c.SeniorityTier)

	return map[string]string{
		"first_name":        b.FirstName(c.Name),
		"their_company":     company,
		"personalization_1": p1,
		"personalization_2": p2,
		"context_hook":      strings.TrimSpace(c.ContextHook),
		"session_topic":     fmt.Sprintf("%s strategy and scaling", c.IndustryVertical),
		"sender_name":       sender.Name,
		"sender_title":      sender.Title,
		"sender_email":      sender.Email,
	}
}

// sender resolves the sender persona from the routing table for the
// contact's tier, falling back to the SDR identity.
func (b *Builder) sender(tier model.SeniorityTier) model.SenderPersona {
	level := "SDR"
	if rule, ok := routing.DefaultRules[tier]; ok {
		level = rule.SenderLevel
	}
	if p, ok := b.cfg.Senders[level]; ok {
		return p
	}
	return b.cfg.Senders["SDR"]
}

var templateVar = regexp.MustCompile(`\{(\w+)\}`)

// fill substitutes {name} placeholders from vars. Unknown placeholders
// become empty strings rather than leaking braces into sent copy.
func fill(template string, vars map[string]string) string {
	return templateVar.ReplaceAllStringFunc(template, func(m string) string {
		return vars[m[1:len(m)-1]]
	})
}

// Build produces all three messages for a contact. Channels that fail
// their readiness gate get empty message text and a skip reason.
func (b *Builder) Build(c model.Contact) Messages {
	variant := SelectVariant(c)
	vars := b.variables(c)

	out := Messages{Variant: variant}
	out.LinkedInReady, out.LinkedInSkip = b.ReadyForLinkedIn(c)
	out.EmailReady, out.EmailSkip = b.ReadyForEmail(c)

	if out.LinkedInReady {
		note := fill(liConnectByVariant[variant], vars)
		// Limit counts characters, not bytes: the templates carry
		// multibyte punctuation.
		if runes := []rune(note); len(runes) > b.cfg.CharLimit {
			note = string(runes[:b.cfg.CharLimit-3]) + "..."
		}
		out.LinkedInConnect = note
		out.DuringEventDM = fill(dmByVariant[variant], vars)
	}

	if out.EmailReady {
		out.EmailSubject = fill(subjectByVariant[variant], vars)
		out.EmailBody = fill(bodyByVariant[variant], vars)
	}

	return out
}

// Result pairs a contact with its built messages.
type Result struct {
	Contact  model.Contact
	Messages Messages
}

// BuildAll builds messages for a batch in descending ICP order and
// logs the readiness summary.
func (b *Builder) BuildAll(contacts []model.Contact) []Result {
	ordered := make([]model.Contact, len(contacts))
	copy(ordered, contacts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ICPScore > ordered[j].ICPScore
	})

	results := make([]Result, len(ordered))
	liReady, emailReady := 0, 0
	for i, c := range ordered {
		msgs := b.Build(c)
		results[i] = Result{Contact: c, Messages: msgs}
		if msgs.LinkedInReady {
			liReady++
		}
		if msgs.EmailReady {
			emailReady++
		}
	}

	b.log.Info("outreach messages built",
		zap.Int("contacts", len(results)),
		zap.Int("linkedin_ready", liReady),
		zap.Int("email_ready", emailReady),
	)
	return results
}
