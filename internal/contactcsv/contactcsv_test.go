package contactcsv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

func TestRead_MapsAliasedHeaders(t *testing.T) {
	in := strings.NewReader(
		"Full Name,Designation,Organization,LinkedIn URL\n" +
			"Harshil Mathur,CEO & Co-founder,Razorpay,https://linkedin.com/in/harshil\n",
	)

	contacts, err := Read(in)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "Harshil Mathur", c.Name)
	assert.Equal(t, "CEO & Co-founder", c.Title)
	assert.Equal(t, "Razorpay", c.Company)
	assert.Equal(t, "https://linkedin.com/in/harshil", c.LinkedInURL)
}

func TestRead_UnknownColumnsGoToExtra(t *testing.T) {
	in := strings.NewReader(
		"name,company,Session Track,Booth\n" +
			"Falguni Nayar,Nykaa,D2C Stage,42\n",
	)

	contacts, err := Read(in)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	assert.Equal(t, "D2C Stage", contacts[0].Extra["session_track"])
	assert.Equal(t, "42", contacts[0].Extra["booth"])
}

func TestRead_SkipsEmptyRows(t *testing.T) {
	in := strings.NewReader(
		"name,title,company\n" +
			"Aman Gupta,CMO,boAt\n" +
			",,\n",
	)

	contacts, err := Read(in)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestRead_ParsesTypedFields(t *testing.T) {
	in := strings.NewReader(
		"name,company,icp_score,in_sequence,seniority_tier\n" +
			"A,Acme,5,yes,C-Suite\n",
	)

	contacts, err := Read(in)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	assert.Equal(t, 5, contacts[0].ICPScore)
	assert.True(t, contacts[0].InSequence)
	assert.Equal(t, model.TierCSuite, contacts[0].SeniorityTier)
}

func TestRead_NoHeader(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.Error(t, err)
}

func TestAssignIDs(t *testing.T) {
	contacts := []model.Contact{
		{ID: "existing", Name: "A", Company: "Acme"},
		{Name: "B", Company: "Beta"},
	}

	AssignIDs(contacts)

	assert.Equal(t, "existing", contacts[0].ID)
	assert.NotEmpty(t, contacts[1].ID)
	assert.NotEqual(t, contacts[0].ID, contacts[1].ID)
}

func TestWriteReadRoundTrip(t *testing.T) {
	in := []model.Contact{
		{
			ID:               "c1",
			Name:             "Harshil Mathur",
			Title:            "CEO",
			Company:          "Razorpay",
			SeniorityTier:    model.TierCSuite,
			IndustryVertical: "Fintech",
			ICPScore:         5,
			InSequence:       true,
			LeadershipReview: true,
			Extra:            map[string]string{"session_track": "Payments"},
		},
		{
			ID:      "c2",
			Name:    "Ghazal Alagh",
			Title:   "Co-founder",
			Company: "Mamaearth",
			Extra:   map[string]string{"booth": "7"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	out, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, in[0].ID, out[0].ID)
	assert.Equal(t, in[0].SeniorityTier, out[0].SeniorityTier)
	assert.Equal(t, in[0].ICPScore, out[0].ICPScore)
	assert.True(t, out[0].InSequence)
	assert.True(t, out[0].LeadershipReview)
	assert.Equal(t, "Payments", out[0].Extra["session_track"])
	assert.Equal(t, "7", out[1].Extra["booth"])
	// Columns absent for one contact stay empty, not copied across rows.
	assert.Empty(t, out[1].Extra["session_track"])
}

func TestWrite_ExtraColumnsSorted(t *testing.T) {
	in := []model.Contact{
		{Name: "A", Company: "Acme", Extra: map[string]string{"zeta": "1", "alpha": "2"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasSuffix(header, "alpha,zeta"), header)
}
