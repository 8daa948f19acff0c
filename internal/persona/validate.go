package persona

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

// genericPhrases is the blacklist of filler phrases that mark a
// persona as unusable. Bad personalization is worse than none: a
// generic "as a leader in the tech space" email destroys credibility,
// so generic hits are weighted heavily.
var genericPhrases = []string{
	"as a leader", "in the tech space", "passionate about",
	"driving innovation", "thought leader", "seasoned professional",
	"dynamic", "visionary", "at the forefront", "ecosystem",
	"leveraging technology", "disrupting the", "game changer",
	"cutting edge", "best in class", "world class", "next level",
}

// Minimum length thresholds for specificity.
const (
	minPersonaChars = 80
	minHookChars    = 50
	minThemeChars   = 20
	requiredThemes  = 2 // at least 2 of 3 themes must be non-empty
)

var (
	fenceOpen     = regexp.MustCompile("^```(?:json)?\\s*")
	fenceClose    = regexp.MustCompile("\\s*```$")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Profile is the parsed LLM persona output.
type Profile struct {
	PersonaSummary        string   `json:"persona_summary"`
	ContextHook           string   `json:"context_hook"`
	PersonalizationThemes []string `json:"personalization_themes"`
	Confidence            string   `json:"confidence"`
}

// ParseLLMOutput parses a raw LLM response into a Profile, tolerating
// the common quirks: markdown fences, leading prose, trailing commas.
func ParseLLMOutput(raw string) (*Profile, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, eris.New("persona: empty response from LLM")
	}

	text = fenceOpen.ReplaceAllString(text, "")
	text = fenceClose.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	// Extract the outermost JSON object.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, eris.Errorf("persona: no JSON object found in output: %.100s", text)
	}
	text = text[start : end+1]

	text = trailingComma.ReplaceAllString(text, "$1")

	var p Profile
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, eris.Wrapf(err, "persona: parse LLM output: %.200s", text)
	}
	return &p, nil
}

// ValidateStructure checks that all required fields are present and
// well-formed. Returns the list of issues; empty means valid.
func ValidateStructure(p *Profile) []string {
	var issues []string

	if strings.TrimSpace(p.PersonaSummary) == "" {
		issues = append(issues, "missing persona_summary")
	}
	if strings.TrimSpace(p.ContextHook) == "" {
		issues = append(issues, "missing context_hook")
	}
	if len(p.PersonalizationThemes) < requiredThemes {
		issues = append(issues, fmt.Sprintf("need at least %d themes, got %d",
			requiredThemes, len(p.PersonalizationThemes)))
	}
	switch p.Confidence {
	case "HIGH", "MEDIUM", "LOW":
	case "":
		issues = append(issues, "missing confidence")
	default:
		issues = append(issues, "invalid confidence value: "+p.Confidence)
	}

	return issues
}

// GenericPhrases returns the blacklisted phrases found in text.
func GenericPhrases(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, phrase := range genericPhrases {
		if strings.Contains(lower, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}

// CheckSpecificity assesses whether the persona content is specific to
// the contact. It returns the final confidence (which may downgrade
// the LLM's self-reported value) and the reasons for any downgrade.
func CheckSpecificity(p *Profile, c model.Contact) (model.ConfidenceFlag, []string) {
	var reasons []string
	flags := 0

	if len(p.PersonaSummary) < minPersonaChars {
		reasons = append(reasons, fmt.Sprintf("persona_summary too short (%d chars, min %d)",
			len(p.PersonaSummary), minPersonaChars))
		flags++
	}
	if len(p.ContextHook) < minHookChars {
		reasons = append(reasons, fmt.Sprintf("context_hook too short (%d chars, min %d)",
			len(p.ContextHook), minHookChars))
		flags++
	}
	short := 0
	for _, theme := range p.PersonalizationThemes {
		if len(theme) < minThemeChars {
			short++
		}
	}
	if short > 0 {
		reasons = append(reasons, fmt.Sprintf("%d theme(s) too short", short))
		flags++
	}

	allText := strings.Join(append([]string{p.PersonaSummary, p.ContextHook}, p.PersonalizationThemes...), " ")
	if bad := GenericPhrases(allText); len(bad) > 0 {
		reasons = append(reasons, "generic phrases detected: "+strings.Join(bad, ", "))
		flags += 2 // generic = unusable
	}

	// Specificity signal: does the content mention the contact's
	// company or role at all?
	if !mentionsContact(allText, c) {
		reasons = append(reasons, "output doesn't reference contact's company or role")
		flags += 2
	}

	if p.Confidence == "LOW" {
		reasons = append(reasons, "LLM self-reported LOW confidence")
		flags += 3
	}

	switch {
	case flags == 0 && p.Confidence == "HIGH":
		return model.ConfidenceHigh, reasons
	case flags <= 2:
		return model.ConfidenceMedium, reasons
	default:
		return model.ConfidenceLow, reasons
	}
}

var titleStopWords = map[string]bool{
	"and": true, "the": true, "of": true, "at": true, "for": true, "&": true,
}

func mentionsContact(text string, c model.Contact) bool {
	lower := strings.ToLower(text)

	for _, w := range strings.Fields(strings.ToLower(c.Company)) {
		if len(w) > 3 && strings.Contains(lower, w) {
			return true
		}
	}
	for _, w := range strings.Fields(strings.ToLower(c.Title)) {
		if !titleStopWords[w] && strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Validate runs the full validation pipeline on a raw LLM output and
// writes the outcome into a copy of the contact. Parse or structure
// failures leave the persona fields empty with ConfidenceLow and the
// failure recorded in ValidationNotes; such contacts go to the human
// review queue and are never sent automatically.
func Validate(raw string, c model.Contact) model.Contact {
	log := zap.L().Named("persona")

	c.PersonaSummary = ""
	c.ContextHook = ""
	c.PersonalizationThemes = ""
	c.ConfidenceFlag = model.ConfidenceLow
	c.ValidationNotes = ""

	p, err := ParseLLMOutput(raw)
	if err != nil {
		c.ValidationNotes = "PARSE_ERROR: " + eris.Cause(err).Error()
		log.Warn("persona parse failed", zap.String("name", c.Name), zap.Error(err))
		return c
	}

	if issues := ValidateStructure(p); len(issues) > 0 {
		c.ValidationNotes = "STRUCT_ERROR: " + strings.Join(issues, " | ")
		log.Warn("persona structure invalid",
			zap.String("name", c.Name),
			zap.Strings("issues", issues),
		)
		return c
	}

	confidence, reasons := CheckSpecificity(p, c)

	c.PersonaSummary = strings.TrimSpace(p.PersonaSummary)
	c.ContextHook = strings.TrimSpace(p.ContextHook)
	trimmed := make([]string, len(p.PersonalizationThemes))
	for i, theme := range p.PersonalizationThemes {
		trimmed[i] = strings.TrimSpace(theme)
	}
	c.PersonalizationThemes = strings.Join(trimmed, " | ")
	c.ConfidenceFlag = confidence
	c.ValidationNotes = strings.Join(reasons, " | ")

	switch confidence {
	case model.ConfidenceLow:
		log.Warn("low confidence persona", zap.String("name", c.Name), zap.Strings("reasons", reasons))
	case model.ConfidenceMedium:
		log.Info("medium confidence persona", zap.String("name", c.Name), zap.Strings("reasons", reasons))
	default:
		log.Info("high confidence persona", zap.String("name", c.Name))
	}
	return c
}
