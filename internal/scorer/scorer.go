// Package scorer computes ICP (ideal customer profile) scores for
// contacts: seniority weight plus industry weight, clamped to 1..5.
// Scoring is stateless and does no I/O, so it sits anywhere in the
// pipeline after ingestion.
package scorer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Weights maps seniority tiers and industry verticals to their score
// contributions. The product is pricing intelligence, so verticals
// where pricing or competitive data is operationally critical carry
// the most weight.
type Weights struct {
	Seniority map[model.SeniorityTier]int
	Industry  map[string]int
}

// DefaultWeights returns the standard weight tables.
func DefaultWeights() Weights {
	return Weights{
		Seniority: map[model.SeniorityTier]int{
			model.TierCSuite:     3,
			model.TierVPDirector: 2,
			model.TierManagerIC:  1,
		},
		Industry: map[string]int{
			"Fintech":     2,
			"D2C/Ecomm":   2,
			"SaaS/B2B":    2,
			"VC/PE":       1,
			"DeepTech/AI": 1,
			"Edtech":      1,
			"Mobility":    1,
			"Government":  0,
			"Other":       0,
		},
	}
}

// keyword tables for inference. Order matters: the first tier or
// vertical with a matching keyword wins, so broader buckets come last.
type keywordSet struct {
	label    string
	keywords []string
}

var seniorityKeywords = []struct {
	tier     model.SeniorityTier
	keywords []string
}{
	{model.TierCSuite, []string{
		"founder", "co-founder", "ceo", "cto", "coo", "cfo", "cpo",
		"chief", "chairman", "managing director", "md &", "md,",
		"executive chairman", "president",
	}},
	{model.TierVPDirector, []string{
		"vp ", "vp,", "vice president", "director", "head of",
		"partner", "managing partner", "founding partner",
		"sherpa", "principal", "svp", "evp", "general partner",
		"investment director", "country head", "country director",
	}},
	{model.TierManagerIC, []string{
		"manager", "lead", "engineer", "analyst",
		"associate", "consultant", "specialist",
	}},
}

var industryKeywords = []keywordSet{
	{"Fintech", []string{
		"zerodha", "razorpay", "groww", "phonepe", "open financial",
		"paytm", "cred", "lendgrid", "finstack", "insurancefirst",
		"wealthbridge", "payflow", "creditsense", "loantap", "finova",
		"razorx", "neobank", "simpl", "acko", "cashify", "ezetap",
		"policybazaar", "pine labs", "capital float", "zeta", "accesspay",
		"instamojo", "juspay",
	}},
	{"D2C/Ecomm", []string{
		"mensa", "snapdeal", "nykaa", "boat", "plum", "bey bee",
		"snitch", "mamaearth", "aastey", "blissclub", "wow skin",
		"pilgrim", "moms co", "zivame", "monrow", "sirona", "epigamia",
		"true elements", "fynd", "firstcry", "meesho", "beato", "blippar",
		"sugar cosmetics", "freshmenu", "licious", "assiduus",
	}},
	{"SaaS/B2B", []string{
		"inmobi", "freshworks", "zoho", "chargebee", "postman",
		"saasify", "stackr", "quickwork", "zomentum", "clientjoy",
		"sprinto", "rocketlane", "leadsquared", "demandbase", "haptik",
		"salesken", "moengage", "greyhound", "humanic", "harness",
		"browserstack", "unicommerce", "locus", "ventive", "helpshift",
		"salesforce", "aws", "infosys", "wipro", "accenture", "kpmg",
		"giggr",
	}},
	{"VC/PE", []string{
		"elevation capital", "3one4", "prosus", "sequoia", "tiger",
		"blume", "accel", "lightspeed", "matrix", "antler", "omidyar",
		"nexus", "saif", "kalaari", "yournest", "ideaspring",
		"ventureintelligence", "stellaris", "chiratae", "inventus",
		"saama", "100x.vc", "angel network", "mumbai angels",
		"peak xv", "carlyle", "intel capital", "angellist",
		"advantedge", "prime venture", "gsf", "lead angels",
		"motwani", "js & associates",
	}},
	{"DeepTech/AI", []string{
		"neysa", "nvidia", "microsoft", "isro", "sarvam",
		"mad street", "detect tech", "ather", "krutrim", "sqream",
		"mphasis", "ventive",
	}},
	{"Edtech", []string{
		"upgrad", "byju", "unacademy", "eruditus", "classplus",
		"scaler", "next education", "imarticus", "hero vired",
		"lead school", "vymo", "udhyam", "physics wallah",
	}},
	{"Mobility", []string{
		"ola", "rapido", "yulu", "blusmart", "zypp", "jetsetgo",
		"spinny", "park+", "letstransport", "dunzo",
	}},
	{"Government", []string{
		"government of india", "competition commission",
		"g20", "nasscom", "ispirt", "ministry",
	}},
}

// InferSeniority maps a job title to a seniority tier by keyword
// match. Unmatched titles land in the Manager/IC tier.
func InferSeniority(title string) model.SeniorityTier {
	t := strings.ToLower(title)
	for _, set := range seniorityKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(t, kw) {
				return set.tier
			}
		}
	}
	return model.TierManagerIC
}

// InferIndustry maps company name plus title text to an industry
// vertical. Unmatched contacts default to SaaS/B2B, the broadest
// bucket for startup-ecosystem contacts.
func InferIndustry(company, title string) string {
	text := strings.ToLower(company + " " + title)
	for _, set := range industryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(text, kw) {
				return set.label
			}
		}
	}
	return "SaaS/B2B"
}

// ComputeScore returns seniority weight + industry weight, clamped to
// the 1..5 scale. Unknown tiers contribute 1; unknown verticals
// contribute 0.
func (w Weights) ComputeScore(tier model.SeniorityTier, industry string) int {
	s, ok := w.Seniority[tier]
	if !ok {
		s = 1
	}
	score := s + w.Industry[industry]
	if score > 5 {
		return 5
	}
	if score < 1 {
		return 1
	}
	return score
}

// Score fills SeniorityTier, IndustryVertical and ICPScore on a copy
// of the contact. Values already present (for example from upstream
// enrichment) are kept; only missing fields are inferred.
func (w Weights) Score(c model.Contact) model.Contact {
	if c.SeniorityTier == "" {
		c.SeniorityTier = InferSeniority(c.Title)
	}
	if c.IndustryVertical == "" {
		c.IndustryVertical = InferIndustry(c.Company, c.Title)
	}
	c.ICPScore = w.ComputeScore(c.SeniorityTier, c.IndustryVertical)
	return c
}

// ScoreAll scores a batch and logs the resulting distribution.
func (w Weights) ScoreAll(contacts []model.Contact) []model.Contact {
	out := make([]model.Contact, len(contacts))
	dist := make(map[int]int)
	for i, c := range contacts {
		out[i] = w.Score(c)
		dist[out[i].ICPScore]++
	}
	zap.L().Named("scorer").Info("scored contacts",
		zap.Int("count", len(out)),
		zap.Any("distribution", dist),
	)
	return out
}
