// Package enrich fills in missing contact fields (LinkedIn URL, email,
// firmographics) from a people-match provider. Lookups are rate
// limited, retried on transient failures, cached, and run with bounded
// concurrency. Enrichment is strictly upstream of dedup and routing:
// it never touches routing state.
package enrich

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/peopledata"
)

// Cache stores raw provider responses so re-runs don't burn API
// credits. Implemented by the store package.
type Cache interface {
	CacheGet(ctx context.Context, key string) ([]byte, bool, error)
	CacheSet(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config controls an enrichment run.
type Config struct {
	// RateLimitRPM is the provider request budget per minute.
	RateLimitRPM int
	// Concurrency bounds the number of in-flight lookups.
	Concurrency int
	// EmailICPThreshold is the minimum ICP score for spending an email
	// export credit. Default 4.
	EmailICPThreshold int
	// EmailBudget caps email export credits per run (free tier:
	// 50/month). 0 = unlimited.
	EmailBudget int
	// CacheTTL controls how long provider responses stay valid.
	CacheTTL time.Duration
	Retry    resilience.RetryConfig
}

// Enricher looks up contacts against the people-match provider.
type Enricher struct {
	client  peopledata.Client
	cache   Cache
	cfg     Config
	limiter *rate.Limiter
	log     *zap.Logger
}

// New creates an Enricher. cache may be nil to disable caching.
func New(client peopledata.Client, cache Cache, cfg Config) *Enricher {
	if cfg.RateLimitRPM <= 0 {
		cfg.RateLimitRPM = 10
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}
	if cfg.EmailICPThreshold == 0 {
		cfg.EmailICPThreshold = 4
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 168 * time.Hour
	}
	return &Enricher{
		client:  client,
		cache:   cache,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RateLimitRPM)/60.0), 1),
		log:     zap.L().Named("enrich"),
	}
}

func cacheKey(req peopledata.MatchRequest) string {
	reveal := "0"
	if req.RevealEmail {
		reveal = "1"
	}
	return strings.Join([]string{"people_match", strings.ToLower(req.Name), strings.ToLower(req.Company), reveal}, "|")
}

// lookup resolves one match request through cache, rate limiter and
// retry. A nil match with nil error means the provider had no record.
func (e *Enricher) lookup(ctx context.Context, req peopledata.MatchRequest) (*peopledata.Match, error) {
	key := cacheKey(req)

	if e.cache != nil {
		if raw, ok, err := e.cache.CacheGet(ctx, key); err != nil {
			e.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var m peopledata.Match
			if err := json.Unmarshal(raw, &m); err == nil {
				return &m, nil
			}
			e.log.Warn("discarding corrupt cache entry", zap.String("key", key))
		}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "enrich: rate limiter")
	}

	retry := e.cfg.Retry
	retry.OnRetry = resilience.RetryLogger("peopledata", "people match")
	m, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*peopledata.Match, error) {
		return e.client.PeopleMatch(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	if e.cache != nil && m != nil {
		raw, err := json.Marshal(m)
		if err == nil {
			if err := e.cache.CacheSet(ctx, key, raw, e.cfg.CacheTTL); err != nil {
				e.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return m, nil
}

// EnrichOne looks up a single contact and merges the result into a
// copy. Existing non-empty fields are never overwritten. A no-match
// sets EnrichmentStatus "not_found"; lookup errors propagate.
func (e *Enricher) EnrichOne(ctx context.Context, c model.Contact, revealEmail bool) (model.Contact, error) {
	m, err := e.lookup(ctx, peopledata.MatchRequest{
		Name:        c.Name,
		Company:     c.Company,
		RevealEmail: revealEmail,
	})
	if err != nil {
		return c, eris.Wrap(err, "enrich: lookup")
	}
	if m == nil {
		c.EnrichmentStatus = "not_found"
		e.log.Info("no provider match",
			zap.String("name", c.Name),
			zap.String("company", c.Company),
		)
		return c, nil
	}

	merge := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
		}
	}
	merge(&c.LinkedInURL, m.LinkedInURL)
	merge(&c.Email, m.Email)
	merge(&c.CompanySize, m.CompanySize)
	merge(&c.FundingStage, m.FundingStage)
	merge(&c.Department, m.Department)

	c.EnrichmentStatus = "enriched"
	return c, nil
}

// EnrichAll enriches a batch with bounded concurrency. Email export
// credits go to contacts at or above the ICP threshold, capped at
// EmailBudget in descending score order. Per-contact lookup failures
// mark the contact "error" and do not abort the batch; only context
// cancellation does. Output order matches input order.
func (e *Enricher) EnrichAll(ctx context.Context, contacts []model.Contact) ([]model.Contact, error) {
	reveal := e.emailCredits(contacts)

	out := make([]model.Contact, len(contacts))
	copy(out, contacts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)

	for i := range out {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			enriched, err := e.EnrichOne(ctx, out[i], reveal[i])
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				e.log.Error("enrichment failed",
					zap.String("name", out[i].Name),
					zap.Error(err),
				)
				out[i].EnrichmentStatus = "error"
				return nil
			}
			out[i] = enriched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, eris.Wrap(err, "enrich: batch")
	}

	enriched := 0
	for _, c := range out {
		if c.EnrichmentStatus == "enriched" {
			enriched++
		}
	}
	e.log.Info("enrichment complete",
		zap.Int("contacts", len(out)),
		zap.Int("enriched", enriched),
	)
	return out, nil
}

// emailCredits decides which contacts get an email export credit:
// everyone at or above the ICP threshold, trimmed to EmailBudget in
// descending score order (input order breaks ties).
func (e *Enricher) emailCredits(contacts []model.Contact) []bool {
	reveal := make([]bool, len(contacts))
	var eligible []int
	for i, c := range contacts {
		if c.ICPScore >= e.cfg.EmailICPThreshold {
			eligible = append(eligible, i)
		}
	}

	if e.cfg.EmailBudget > 0 && len(eligible) > e.cfg.EmailBudget {
		e.log.Warn("email exports over budget, keeping top contacts by icp score",
			zap.Int("eligible", len(eligible)),
			zap.Int("budget", e.cfg.EmailBudget),
		)
		sort.SliceStable(eligible, func(a, b int) bool {
			return contacts[eligible[a]].ICPScore > contacts[eligible[b]].ICPScore
		})
		eligible = eligible[:e.cfg.EmailBudget]
	}

	for _, i := range eligible {
		reveal[i] = true
	}
	return reveal
}
