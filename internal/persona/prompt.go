// Package persona generates and validates LLM persona profiles for
// scored contacts. Prompts are versioned; outputs go through a
// structural and a semantic validation pass before any contact is
// considered ready for outreach.
package persona

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/llm"
)

// ActiveVersion is the prompt version in use.
//
// v1.0 — single persona blob
// v1.1 — three structured fields + confidence
// v1.2 — anti-hallucination constraints + JSON output enforcement
const ActiveVersion = "v1.2"

const systemPromptDefault = `You are a B2B sales intelligence assistant helping a GTM team
personalize outreach for attendees of TechSparks 2024, India's largest tech startup event.

Your job is to generate a short persona profile for each contact based ONLY on the
structured data provided.

STRICT RULES — violations will cause the output to be rejected:
1. Use ONLY the fields provided in the input JSON. Do not invent job history,
   funding amounts, personal details, or facts not present in the input.
2. Do not use generic filler phrases like: "passionate about", "thought leader",
   "driving innovation", "seasoned professional", "dynamic", "visionary",
   "at the forefront", "in the tech space", "as a leader".
3. Output must be valid JSON — no markdown, no preamble, no explanation outside the JSON.
4. Keep all text fields concise: persona_summary ≤ 60 words, context_hook ≤ 50 words.
5. If the data is insufficient to generate a confident, specific output, set
   confidence to "LOW" and keep the text minimal — do not pad with generic content.

The product context (do NOT mention the company name in any output):
- A YC-backed data intelligence platform
- Core value: pricing intelligence, competitive benchmarking, assortment insights,
  and data automation for businesses that compete on price or product range
- Most relevant to: Fintech, D2C/Ecomm, SaaS/B2B companies; less relevant to VC/PE, Government`

const userPromptDefault = `Generate a persona profile for this contact.

INPUT DATA:
%CONTACT_JSON%

OUTPUT FORMAT (valid JSON only, no other text):
{
  "persona_summary": "<3 sentences max. Role archetype, what they're operationally responsible for, and their likely decision-making lens. Be specific to their title and industry.>",
  "context_hook": "<1-2 sentences. Why pricing intelligence OR competitive benchmarking OR data automation is specifically relevant to someone in their role at their type of company. Be direct, not generic.>",
  "personalization_themes": [
    "<Theme 1: a specific business pressure or goal relevant to their role>",
    "<Theme 2: a specific pain point or opportunity in their industry>",
    "<Theme 3: a relevant angle for a YC-backed data product intro>"
  ],
  "confidence": "<HIGH | MEDIUM | LOW — HIGH means all 3 fields are specific and grounded in the input data. LOW means data was insufficient for specificity.>"
}`

// VC/PE contacts get a portfolio-intelligence angle rather than the
// own-operations angle.
const systemPromptVC = `You are a B2B sales intelligence assistant.
Generate a persona profile for a VC/PE investor attending TechSparks 2024.

STRICT RULES:
1. Use ONLY the fields provided. Do not invent portfolio companies or investment history.
2. Avoid generic phrases. Be specific to the investor's stage focus and firm type.
3. Output valid JSON only.
4. The product angle for investors: portfolio companies need pricing and competitive
   intelligence — the VC can become a champion who introduces the product to portfolio founders.`

const userPromptVC = `Generate a persona profile for this investor contact.

INPUT DATA:
%CONTACT_JSON%

OUTPUT FORMAT (valid JSON only):
{
  "persona_summary": "<Their role at the firm, typical stage/sector focus implied by firm name, and how they interact with portfolio companies.>",
  "context_hook": "<Why their portfolio companies would benefit from pricing intelligence or data automation — and why the investor might champion this intro.>",
  "personalization_themes": [
    "<Portfolio value creation angle>",
    "<Stage-specific pain: early-stage cos need pricing benchmarks to fundraise>",
    "<Positioning: offer a warm intro to relevant portfolio founders>"
  ],
  "confidence": "<HIGH | MEDIUM | LOW>"
}`

// Government/policy contacts are low priority; minimal neutral persona.
const systemPromptGov = `You are a B2B sales intelligence assistant.
This contact works in government or policy. They are low priority for direct outreach.
Generate a minimal, neutral persona. Do not fabricate any policy positions or affiliations.
Output valid JSON only.`

const userPromptGov = `Generate a minimal persona for this government/policy contact.

INPUT DATA:
%CONTACT_JSON%

OUTPUT FORMAT (valid JSON only):
{
  "persona_summary": "<Their official role and likely policy focus area based on their title.>",
  "context_hook": "<One sentence on indirect relevance — e.g., they influence the regulatory environment for startups.>",
  "personalization_themes": [
    "<Policy/regulatory angle only — no product pitch>",
    "<Ecosystem building angle>",
    "<Awareness only — not a sales contact>"
  ],
  "confidence": "LOW"
}`

const contactPlaceholder = "%CONTACT_JSON%"

// Prompt is a system + user prompt pair ready to send.
type Prompt struct {
	System string
	User   string
}

// promptInput is the subset of contact fields the LLM should reason
// about. Tracking and status fields are deliberately excluded.
type promptInput struct {
	Name             string `json:"name,omitempty"`
	Title            string `json:"title,omitempty"`
	Company          string `json:"company,omitempty"`
	SeniorityTier    string `json:"seniority_tier,omitempty"`
	IndustryVertical string `json:"industry_vertical,omitempty"`
	ICPScore         int    `json:"icp_score,omitempty"`
	CompanySize      string `json:"company_size,omitempty"`
	FundingStage     string `json:"funding_stage,omitempty"`
}

// BuildPrompt selects the prompt variant for the contact's industry
// and injects the contact data into the user prompt.
func BuildPrompt(c model.Contact) (Prompt, error) {
	system, userTemplate := selectTemplates(c.IndustryVertical)

	in := promptInput{
		Name:             c.Name,
		Title:            c.Title,
		Company:          c.Company,
		SeniorityTier:    string(c.SeniorityTier),
		IndustryVertical: c.IndustryVertical,
		ICPScore:         c.ICPScore,
		CompanySize:      c.CompanySize,
		FundingStage:     c.FundingStage,
	}
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return Prompt{}, eris.Wrap(err, "persona: marshal prompt input")
	}

	return Prompt{
		System: system,
		User:   strings.ReplaceAll(userTemplate, contactPlaceholder, string(data)),
	}, nil
}

func selectTemplates(industry string) (system, user string) {
	switch industry {
	case "VC/PE":
		return systemPromptVC, userPromptVC
	case "Government":
		return systemPromptGov, userPromptGov
	default:
		return systemPromptDefault, userPromptDefault
	}
}

// Messages converts the prompt into the LLM request message list.
func (p Prompt) Messages() []llm.Message {
	return []llm.Message{{Role: "user", Content: p.User}}
}
