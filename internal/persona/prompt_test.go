package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

func TestBuildPromptInjectsContactData(t *testing.T) {
	p, err := BuildPrompt(fintechFounder())
	require.NoError(t, err)

	assert.Contains(t, p.User, `"name": "Harshil Mathur"`)
	assert.Contains(t, p.User, `"company": "Razorpay"`)
	assert.Contains(t, p.User, `"icp_score": 5`)
	assert.NotContains(t, p.User, contactPlaceholder)
}

func TestBuildPromptExcludesTrackingFields(t *testing.T) {
	c := fintechFounder()
	c.OutreachStatus = "queued"
	c.InSequence = true
	c.Source = "techsparks"

	p, err := BuildPrompt(c)
	require.NoError(t, err)

	assert.NotContains(t, p.User, "outreach_status")
	assert.NotContains(t, p.User, "in_sequence")
	assert.NotContains(t, p.User, "techsparks")
}

func TestBuildPromptOmitsEmptyFields(t *testing.T) {
	p, err := BuildPrompt(model.Contact{Name: "Someone", Company: "Acme"})
	require.NoError(t, err)

	assert.NotContains(t, p.User, "funding_stage")
	assert.NotContains(t, p.User, "company_size")
}

func TestSelectTemplates(t *testing.T) {
	sys, _ := selectTemplates("VC/PE")
	assert.Contains(t, sys, "VC/PE investor")

	sys, user := selectTemplates("Government")
	assert.Contains(t, sys, "government or policy")
	assert.Contains(t, user, `"confidence": "LOW"`)

	sys, _ = selectTemplates("Fintech")
	assert.Contains(t, sys, "TechSparks 2024")
}
