package persona

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/llm"
)

// fakeLLM returns canned responses and records the requests it saw.
type fakeLLM struct {
	responses []string
	err       error
	requests  []llm.MessageRequest
}

func (f *fakeLLM) CreateMessage(_ context.Context, req llm.MessageRequest) (*llm.MessageResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	text := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return &llm.MessageResponse{Text: text}, nil
}

func testGenCfg() GeneratorConfig {
	return GeneratorConfig{
		Model:       "claude-haiku-4-5-20251001",
		MaxTokens:   600,
		Temperature: 0.3,
		Retry:       resilience.RetryConfig{MaxAttempts: 1},
	}
}

func TestGenerateOne(t *testing.T) {
	client := &fakeLLM{responses: []string{goodOutput}}
	g := NewGenerator(client, testGenCfg())

	out, err := g.GenerateOne(context.Background(), fintechFounder())

	require.NoError(t, err)
	assert.Equal(t, model.ConfidenceHigh, out.ConfidenceFlag)
	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "claude-haiku-4-5-20251001", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Harshil Mathur")
}

func TestGenerateOneSelectsVariantPrompt(t *testing.T) {
	client := &fakeLLM{responses: []string{goodOutput}}
	g := NewGenerator(client, testGenCfg())

	c := fintechFounder()
	c.IndustryVertical = "VC/PE"
	_, err := g.GenerateOne(context.Background(), c)

	require.NoError(t, err)
	assert.Contains(t, client.requests[0].System, "VC/PE investor")
}

func TestGenerateOneAPIError(t *testing.T) {
	client := &fakeLLM{err: eris.New("boom")}
	g := NewGenerator(client, testGenCfg())

	_, err := g.GenerateOne(context.Background(), fintechFounder())
	assert.Error(t, err)
}

func TestGenerateAllPriorityOrderAndLimit(t *testing.T) {
	client := &fakeLLM{responses: []string{goodOutput}}
	cfg := testGenCfg()
	cfg.Limit = 2
	g := NewGenerator(client, cfg)

	in := []model.Contact{
		{ID: "low", Name: "IC", Company: "Acme", ICPScore: 2},
		{ID: "hot", Name: "CEO", Company: "Razorpay", ICPScore: 5},
		{ID: "mid", Name: "VP", Company: "Beta", ICPScore: 4},
	}
	out, err := g.GenerateAll(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "hot", out[0].ID)
	assert.Equal(t, "mid", out[1].ID)
}

func TestGenerateAllContinuesAfterFailure(t *testing.T) {
	client := &fakeLLM{err: eris.New("api down")}
	g := NewGenerator(client, testGenCfg())

	in := []model.Contact{
		{ID: "1", Name: "A", Company: "Acme", ICPScore: 5},
		{ID: "2", Name: "B", Company: "Beta", ICPScore: 4},
	}
	out, err := g.GenerateAll(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, c := range out {
		assert.Equal(t, model.ConfidenceLow, c.ConfidenceFlag)
		assert.Contains(t, c.ValidationNotes, "API_ERROR")
	}
}
