package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dr. Rohini Srivathsa", "rohini srivathsa"},
		{"Dr Sreedhara Panicker Somanath", "sreedhara panicker somanath"},
		{"Mr. Amit Shah", "amit shah"},
		{"Mrs. Falguni Nayar", "falguni nayar"},
		{"Prof. C. N. R. Rao", "c n r rao"},
		{"Shri Nandan Nilekani", "nandan nilekani"},
		{"Smt. Kiran Mazumdar-Shaw", "kiran mazumdarshaw"},
		{"  Ritesh   Agarwal ", "ritesh   agarwal"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeCompany(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Razorpay India Pvt Ltd", "razorpay"},
		{"Razorpay", "razorpay"},
		{"Microsoft India", "microsoft"},
		{"Zerodha Broking Limited", "zerodha"},
		{"Acme Technologies", "acme"},
		{"Peak XV Partners", "peak"},
		{"Boat Lifestyle Pvt. Ltd.", "boat"},
		{"", ""},
		{"   ", ""},
		{"Pvt Ltd", "pvt"}, // leading word is never stripped, only trailing suffixes
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCompany(tt.in), "input %q", tt.in)
	}
}

// Re-applying normalization to an already-normalized string must be a
// no-op, so identity keys are stable across repeated passes.
func TestNormalizeIdempotent(t *testing.T) {
	names := []string{"Dr. Rohini Srivathsa", "Mr. Amit Shah", "plain name", ""}
	for _, n := range names {
		once := NormalizeName(n)
		assert.Equal(t, once, NormalizeName(once), "name %q", n)
	}

	companies := []string{"Razorpay India Pvt Ltd", "Microsoft India", "zoho", ""}
	for _, c := range companies {
		once := NormalizeCompany(c)
		assert.Equal(t, once, NormalizeCompany(once), "company %q", c)
	}
}

func TestIdentityKey(t *testing.T) {
	assert.Equal(t, "rohini srivathsa|microsoft",
		IdentityKey("Dr. Rohini Srivathsa", "Microsoft India"))
	assert.Equal(t, "|", IdentityKey("", ""))
}
