package outreach

import "github.com/sells-group/outreach-cli/internal/model"

// Variant identifies which message family a contact receives.
//
//	A — Fintech / D2C / SaaS (and adjacent) C-Suite
//	B — VC/PE (any seniority)
//	C — everyone else
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
	VariantC Variant = "C"
)

// Pre-event LinkedIn connection notes (300 char limit enforced at build).
const (
	liConnectA = "Hi {first_name}, spotted you on the TechSparks speaker list — your work " +
		"at {their_company} on {personalization_1} caught my attention. " +
		"Would love to connect ahead of the event. — {sender_name}"
	liConnectB = "Hi {first_name}, coming across your name ahead of TechSparks — " +
		"founders I speak with are increasingly asking about {personalization_1}. " +
		"Keen to connect and exchange notes. — {sender_name}"
	liConnectC = "Hi {first_name}, attending TechSparks next week and noticed your " +
		"background at {their_company}. Working on problems around " +
		"{personalization_1} — would love to connect. — {sender_name}"
)

// During-event LinkedIn DMs.
const (
	dmA = `Hey {first_name},

Great connecting — your work at {their_company} is interesting, particularly around {personalization_1}.

{context_hook}

Not pitching anything — just thought it was directly relevant to what you're navigating. Happy to share what we're seeing across similar companies if useful.

{sender_name}
{sender_title}`

	dmB = `Hey {first_name},

Appreciated connecting. Your firm's portfolio is interesting — particularly given how many companies are competing in price-sensitive categories right now.

{context_hook}

Worth a 20-min call to share what we're seeing across the ecosystem? Might be useful context for a couple of your portfolio founders specifically.

{sender_name}
{sender_title}`

	dmC = `Hey {first_name},

Good to connect at TechSparks. Quick question — is {personalization_1} something your team is actively working through right now? We've been talking to a few people here with the same challenge.

{sender_name}`
)

// Post-event emails.
const (
	emailSubjectA = "Something relevant from TechSparks week — {first_name}"
	emailSubjectB = "Post-TechSparks — one thing worth passing to your portfolio"
	emailSubjectC = "Following up from TechSparks — {first_name}"

	emailBodyA = `Hi {first_name},

Hope the TechSparks energy has carried into this week.

I've been thinking about something relevant to {their_company} — {personalization_1}. It's a pattern we keep seeing with founders at your stage: the commercial intelligence work that should be informing pricing and competitive positioning is either delayed, manual, or not happening at the frequency needed.

{context_hook}

The companies getting ahead of this are using automated data pipelines to do in real-time what used to take an analyst a week — monitoring competitor pricing, tracking assortment gaps, benchmarking before board reviews.

If any of this resonates, I can introduce you to a YC-backed company that specializes in exactly this. They work with several Indian founders in your category and the conversation is worth 20 minutes.

Worth a quick intro?

{sender_name}
{sender_title}
{sender_email}`

	emailBodyB = `Hi {first_name},

Good week at TechSparks. Wanted to follow up on something worth sharing with your portfolio.

{context_hook}

Several of your portfolio companies are likely navigating this right now — particularly the ones competing on price in consumer categories. {personalization_1}.

I know a YC-backed company that's built specifically for this: pricing intelligence, competitive benchmarking, and data automation for growth-stage companies. They've worked with founders across several top Indian VC portfolios.

If it's worth 15 minutes for a portfolio intro, I'm happy to make the connection.

{sender_name}
{sender_title}
{sender_email}`

	emailBodyC = `Hi {first_name},

Quick follow-up from TechSparks last week.

{context_hook} — wanted to share something relevant around {personalization_1}.

There's a YC-backed company I'd be happy to introduce you to if this is on your radar. They work with teams your size on exactly this problem.

Let me know if useful.

{sender_name}`
)

var (
	liConnectByVariant = map[Variant]string{VariantA: liConnectA, VariantB: liConnectB, VariantC: liConnectC}
	dmByVariant        = map[Variant]string{VariantA: dmA, VariantB: dmB, VariantC: dmC}
	subjectByVariant   = map[Variant]string{VariantA: emailSubjectA, VariantB: emailSubjectB, VariantC: emailSubjectC}
	bodyByVariant      = map[Variant]string{VariantA: emailBodyA, VariantB: emailBodyB, VariantC: emailBodyC}
)

// founderIndustries are the verticals where a C-Suite contact gets the
// founder-angle variant A.
var founderIndustries = map[string]bool{
	"Fintech":     true,
	"D2C/Ecomm":   true,
	"SaaS/B2B":    true,
	"DeepTech/AI": true,
	"Edtech":      true,
	"Mobility":    true,
}

// SelectVariant picks the message variant for a contact.
func SelectVariant(c model.Contact) Variant {
	switch {
	case c.IndustryVertical == "VC/PE":
		return VariantB
	case c.SeniorityTier == model.TierCSuite && founderIndustries[c.IndustryVertical]:
		return VariantA
	default:
		return VariantC
	}
}
