package persona

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/llm"
)

// GeneratorConfig controls a persona generation run.
type GeneratorConfig struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	// Limit processes only the top N contacts by ICP score; 0 = all.
	Limit int
	Retry resilience.RetryConfig
}

// Generator produces validated persona profiles for a batch of
// contacts, highest ICP score first, so the best contacts are done if
// API credits run out mid-batch.
type Generator struct {
	client llm.Client
	cfg    GeneratorConfig
	log    *zap.Logger
}

// NewGenerator creates a Generator backed by the given LLM client.
func NewGenerator(client llm.Client, cfg GeneratorConfig) *Generator {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 600
	}
	return &Generator{
		client: client,
		cfg:    cfg,
		log:    zap.L().Named("persona"),
	}
}

// GenerateOne builds the prompt for a single contact, calls the LLM
// with retry, and returns the contact with validated persona fields.
// API failures are not fatal: the contact comes back with an empty
// persona, ConfidenceLow and the error in ValidationNotes.
func (g *Generator) GenerateOne(ctx context.Context, c model.Contact) (model.Contact, error) {
	prompt, err := BuildPrompt(c)
	if err != nil {
		return c, err
	}

	temp := g.cfg.Temperature
	req := llm.MessageRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		System:      prompt.System,
		Messages:    prompt.Messages(),
		Temperature: &temp,
	}

	retry := g.cfg.Retry
	retry.OnRetry = resilience.RetryLogger("llm", "create message")

	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*llm.MessageResponse, error) {
		return g.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return c, eris.Wrap(err, "persona: generate")
	}

	resp.Usage.LogCost(g.cfg.Model, "persona")
	return Validate(resp.Text, c), nil
}

// GenerateAll processes contacts in descending ICP order. Individual
// failures are logged and recorded on the contact; the batch keeps
// going. The returned slice is in processing (priority) order.
func (g *Generator) GenerateAll(ctx context.Context, contacts []model.Contact) ([]model.Contact, error) {
	ordered := make([]model.Contact, len(contacts))
	copy(ordered, contacts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ICPScore > ordered[j].ICPScore
	})

	if g.cfg.Limit > 0 && g.cfg.Limit < len(ordered) {
		ordered = ordered[:g.cfg.Limit]
		g.log.Info("limiting to top contacts by icp score", zap.Int("limit", g.cfg.Limit))
	}

	g.log.Info("generating personas",
		zap.Int("contacts", len(ordered)),
		zap.String("model", g.cfg.Model),
		zap.String("prompt_version", ActiveVersion),
	)

	counts := map[model.ConfidenceFlag]int{}
	for i, c := range ordered {
		if err := ctx.Err(); err != nil {
			return ordered, eris.Wrap(err, "persona: batch canceled")
		}

		g.log.Info("generating persona",
			zap.Int("index", i+1),
			zap.Int("total", len(ordered)),
			zap.String("name", c.Name),
			zap.String("company", c.Company),
			zap.Int("icp_score", c.ICPScore),
		)

		out, err := g.GenerateOne(ctx, c)
		if err != nil {
			out = c
			out.ConfidenceFlag = model.ConfidenceLow
			out.ValidationNotes = "API_ERROR: " + eris.Cause(err).Error()
			g.log.Error("persona generation failed", zap.String("name", c.Name), zap.Error(err))
		}
		counts[out.ConfidenceFlag]++
		ordered[i] = out
	}

	g.log.Info("persona batch complete",
		zap.Int("high", counts[model.ConfidenceHigh]),
		zap.Int("medium", counts[model.ConfidenceMedium]),
		zap.Int("low", counts[model.ConfidenceLow]),
	)
	return ordered, nil
}
