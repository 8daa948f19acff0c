package enrich

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/peopledata"
)

// fakeProvider returns canned matches keyed by contact name.
type fakeProvider struct {
	mu      sync.Mutex
	matches map[string]*peopledata.Match
	err     error
	calls   []peopledata.MatchRequest
}

func (f *fakeProvider) PeopleMatch(_ context.Context, req peopledata.MatchRequest) (*peopledata.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[req.Name], nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// memCache is a minimal in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) CacheGet(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) CacheSet(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func testCfg() Config {
	return Config{
		RateLimitRPM: 100_000, // effectively unlimited in tests
		Concurrency:  2,
		Retry:        resilience.RetryConfig{MaxAttempts: 1},
	}
}

func TestEnrichOneMergesWithoutOverwriting(t *testing.T) {
	provider := &fakeProvider{matches: map[string]*peopledata.Match{
		"Harshil Mathur": {
			LinkedInURL:  "https://linkedin.com/in/harshil",
			Email:        "found@razorpay.com",
			CompanySize:  "1001–5000",
			FundingStage: "series_f",
		},
	}}
	e := New(provider, nil, testCfg())

	c := model.Contact{
		Name:    "Harshil Mathur",
		Company: "Razorpay",
		Email:   "existing@razorpay.com", // pre-existing value wins
	}
	out, err := e.EnrichOne(context.Background(), c, true)

	require.NoError(t, err)
	assert.Equal(t, "enriched", out.EnrichmentStatus)
	assert.Equal(t, "existing@razorpay.com", out.Email)
	assert.Equal(t, "https://linkedin.com/in/harshil", out.LinkedInURL)
	assert.Equal(t, "series_f", out.FundingStage)
}

func TestEnrichOneNoMatch(t *testing.T) {
	provider := &fakeProvider{matches: map[string]*peopledata.Match{}}
	e := New(provider, nil, testCfg())

	out, err := e.EnrichOne(context.Background(), model.Contact{Name: "Nobody", Company: "Nowhere"}, false)

	require.NoError(t, err)
	assert.Equal(t, "not_found", out.EnrichmentStatus)
	assert.Empty(t, out.LinkedInURL)
}

func TestEnrichOneUsesCache(t *testing.T) {
	provider := &fakeProvider{matches: map[string]*peopledata.Match{
		"A": {LinkedInURL: "https://linkedin.com/in/a"},
	}}
	cache := newMemCache()
	e := New(provider, cache, testCfg())

	c := model.Contact{Name: "A", Company: "Acme"}
	_, err := e.EnrichOne(context.Background(), c, false)
	require.NoError(t, err)

	out, err := e.EnrichOne(context.Background(), c, false)
	require.NoError(t, err)

	assert.Equal(t, "https://linkedin.com/in/a", out.LinkedInURL)
	assert.Equal(t, 1, provider.callCount(), "second lookup must hit the cache")
}

func TestEnrichAllPreservesOrderAndIsolatesFailures(t *testing.T) {
	provider := &fakeProvider{err: eris.New("provider down")}
	e := New(provider, nil, testCfg())

	in := []model.Contact{
		{ID: "1", Name: "A", Company: "Acme", ICPScore: 5},
		{ID: "2", Name: "B", Company: "Beta", ICPScore: 3},
	}
	out, err := e.EnrichAll(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "2", out[1].ID)
	for _, c := range out {
		assert.Equal(t, "error", c.EnrichmentStatus)
	}
}

func TestEmailCreditsThreshold(t *testing.T) {
	provider := &fakeProvider{matches: map[string]*peopledata.Match{}}
	e := New(provider, nil, testCfg())

	in := []model.Contact{
		{Name: "High", Company: "A", ICPScore: 5},
		{Name: "Mid", Company: "B", ICPScore: 4},
		{Name: "Low", Company: "C", ICPScore: 3},
	}
	_, err := e.EnrichAll(context.Background(), in)
	require.NoError(t, err)

	byName := map[string]bool{}
	provider.mu.Lock()
	for _, call := range provider.calls {
		byName[call.Name] = call.RevealEmail
	}
	provider.mu.Unlock()

	assert.True(t, byName["High"])
	assert.True(t, byName["Mid"])
	assert.False(t, byName["Low"])
}

func TestEmailCreditsBudget(t *testing.T) {
	provider := &fakeProvider{matches: map[string]*peopledata.Match{}}
	cfg := testCfg()
	cfg.EmailBudget = 1
	e := New(provider, nil, cfg)

	in := []model.Contact{
		{Name: "Four", Company: "A", ICPScore: 4},
		{Name: "Five", Company: "B", ICPScore: 5},
	}
	_, err := e.EnrichAll(context.Background(), in)
	require.NoError(t, err)

	byName := map[string]bool{}
	provider.mu.Lock()
	for _, call := range provider.calls {
		byName[call.Name] = call.RevealEmail
	}
	provider.mu.Unlock()

	assert.False(t, byName["Four"], "budget goes to the highest score first")
	assert.True(t, byName["Five"])
}
