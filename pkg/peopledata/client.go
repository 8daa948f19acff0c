// Package peopledata is a client for an Apollo-style people-match API:
// name + company in, LinkedIn URL, verified email and firmographics
// out.
package peopledata

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/resilience"
)

const defaultBaseURL = "https://api.apollo.io/v1"

// Client performs people-match lookups.
type Client interface {
	PeopleMatch(ctx context.Context, req MatchRequest) (*Match, error)
}

// MatchRequest identifies the person to look up. RevealEmail consumes
// an email export credit, so callers gate it on ICP score.
type MatchRequest struct {
	Name        string
	Company     string
	RevealEmail bool
}

// Match holds the enrichment fields extracted from a successful match.
// A nil *Match from PeopleMatch means the API had no record for the
// person; that is an expected outcome, not an error.
type Match struct {
	LinkedInURL  string
	Email        string
	CompanySize  string
	FundingStage string
	Seniority    string
	Department   string
}

type matchRequestBody struct {
	Name                 string `json:"name"`
	OrganizationName     string `json:"organization_name"`
	RevealPersonalEmails bool   `json:"reveal_personal_emails"`
}

type matchResponseBody struct {
	Person *personBody `json:"person"`
}

type personBody struct {
	LinkedInURL    string            `json:"linkedin_url"`
	Email          string            `json:"email"`
	PersonalEmails []string          `json:"personal_emails"`
	Seniority      string            `json:"seniority"`
	Departments    []string          `json:"departments"`
	Organization   *organizationBody `json:"organization"`
}

type organizationBody struct {
	EstimatedNumEmployees int    `json:"estimated_num_employees"`
	LatestFundingStage    string `json:"latest_funding_stage"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a people-match API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) PeopleMatch(ctx context.Context, req MatchRequest) (*Match, error) {
	body, err := json.Marshal(matchRequestBody{
		Name:                 req.Name,
		OrganizationName:     req.Company,
		RevealPersonalEmails: req.RevealEmail,
	})
	if err != nil {
		return nil, eris.Wrap(err, "peopledata: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/people/match", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "peopledata: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Cache-Control", "no-cache")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "peopledata: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "peopledata: read response")
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to parse
	case resp.StatusCode == http.StatusUnprocessableEntity:
		// 422 = no match in the provider's database.
		return nil, nil
	case resilience.IsTransientHTTPStatus(resp.StatusCode):
		return nil, resilience.NewTransientError(
			eris.Errorf("peopledata: status %d: %s", resp.StatusCode, string(respBody)),
			resp.StatusCode,
		)
	default:
		return nil, eris.Errorf("peopledata: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result matchResponseBody
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "peopledata: unmarshal response")
	}
	if result.Person == nil {
		return nil, nil
	}

	return fromPerson(result.Person, req.RevealEmail), nil
}

func fromPerson(p *personBody, includeEmail bool) *Match {
	m := &Match{
		LinkedInURL: p.LinkedInURL,
		Seniority:   p.Seniority,
		Department:  strings.Join(p.Departments, ", "),
	}
	if p.Organization != nil {
		m.CompanySize = HeadcountBand(p.Organization.EstimatedNumEmployees)
		m.FundingStage = p.Organization.LatestFundingStage
	}
	if includeEmail {
		m.Email = p.Email
		if m.Email == "" && len(p.PersonalEmails) > 0 {
			m.Email = p.PersonalEmails[0]
		}
	}
	return m
}

// HeadcountBand converts a raw headcount to the band string stored on
// contacts.
func HeadcountBand(n int) string {
	switch {
	case n <= 0:
		return ""
	case n < 10:
		return "1–10"
	case n < 50:
		return "11–50"
	case n < 200:
		return "51–200"
	case n < 500:
		return "201–500"
	case n < 1000:
		return "501–1000"
	case n < 5000:
		return "1001–5000"
	default:
		return "5000+"
	}
}
