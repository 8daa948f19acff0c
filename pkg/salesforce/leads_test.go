package salesforce

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

// fakeSF records insert batches and returns canned results.
type fakeSF struct {
	batches [][]map[string]any
	err     error
	failIdx map[int]bool // index within the first batch to reject
}

func (f *fakeSF) Query(_ context.Context, _ string, _ any) error { return nil }

func (f *fakeSF) InsertCollection(_ context.Context, _ string, records []map[string]any) ([]CollectionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, records)
	results := make([]CollectionResult, len(records))
	for i := range records {
		if len(f.batches) == 1 && f.failIdx[i] {
			results[i] = CollectionResult{Success: false, Errors: []string{"REQUIRED_FIELD_MISSING"}}
			continue
		}
		results[i] = CollectionResult{ID: "00Q000", Success: true}
	}
	return results, nil
}

func (f *fakeSF) UpdateCollection(_ context.Context, _ string, _ []CollectionRecord) ([]CollectionResult, error) {
	return nil, nil
}

func assigned(name, company string) model.Contact {
	return model.Contact{
		Name:          name,
		Company:       company,
		RoutingStatus: model.RoutingAssigned,
	}
}

func TestLeadFields(t *testing.T) {
	c := model.Contact{
		Name:             "Harshil Mathur",
		Title:            "CEO",
		Company:          "Razorpay",
		Email:            "harshil@razorpay.com",
		SeniorityTier:    model.TierCSuite,
		ICPScore:         5,
		OwnerEmail:       "priya@company.co",
		LeadershipReview: true,
		RoutingStatus:    model.RoutingAssigned,
	}

	fields := LeadFields(c)

	assert.Equal(t, "Harshil", fields["FirstName"])
	assert.Equal(t, "Mathur", fields["LastName"])
	assert.Equal(t, "Razorpay", fields["Company"])
	assert.Equal(t, "Conference", fields["LeadSource"])
	assert.Equal(t, 5, fields["ICP_Score__c"])
	assert.Equal(t, "priya@company.co", fields["Routed_Owner__c"])
	assert.Equal(t, true, fields["Leadership_Review__c"])
}

func TestLeadFields_SingleWordName(t *testing.T) {
	fields := LeadFields(model.Contact{Name: "Cher", Company: "Acme"})
	assert.Equal(t, "Cher", fields["LastName"])
	_, hasFirst := fields["FirstName"]
	assert.False(t, hasFirst)
}

func TestLeadFields_EmptyName(t *testing.T) {
	fields := LeadFields(model.Contact{Company: "Acme"})
	assert.Equal(t, "Unknown", fields["LastName"])
}

func TestPushLeads_SkipsUnassigned(t *testing.T) {
	sf := &fakeSF{}
	contacts := []model.Contact{
		assigned("A B", "Acme"),
		{Name: "C D", Company: "Beta", RoutingStatus: model.RoutingSkipInSequence},
		{Name: "E F", Company: "Gamma"},
	}

	result, err := PushLeads(context.Background(), sf, contacts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pushed)
	require.Len(t, sf.batches, 1)
	assert.Len(t, sf.batches[0], 1)
}

func TestPushLeads_BatchesOf200(t *testing.T) {
	sf := &fakeSF{}
	contacts := make([]model.Contact, 450)
	for i := range contacts {
		contacts[i] = assigned("A B", "Acme")
	}

	result, err := PushLeads(context.Background(), sf, contacts)
	require.NoError(t, err)
	assert.Equal(t, 450, result.Pushed)
	require.Len(t, sf.batches, 3)
	assert.Len(t, sf.batches[0], 200)
	assert.Len(t, sf.batches[1], 200)
	assert.Len(t, sf.batches[2], 50)
}

func TestPushLeads_CountsRejections(t *testing.T) {
	sf := &fakeSF{failIdx: map[int]bool{1: true}}
	contacts := []model.Contact{
		assigned("A B", "Acme"),
		assigned("C D", "Beta"),
		assigned("E F", "Gamma"),
	}

	result, err := PushLeads(context.Background(), sf, contacts)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 1, result.Failed)
}

func TestPushLeads_APIError(t *testing.T) {
	sf := &fakeSF{err: eris.New("session expired")}

	_, err := PushLeads(context.Background(), sf, []model.Contact{assigned("A B", "Acme")})
	require.Error(t, err)
}

func TestPushLeads_NothingToPush(t *testing.T) {
	sf := &fakeSF{}

	result, err := PushLeads(context.Background(), sf, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Pushed)
	assert.Empty(t, sf.batches)
}
