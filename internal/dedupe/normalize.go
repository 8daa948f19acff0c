// Package dedupe detects and resolves duplicate contacts in a batch.
//
// Duplicates arise from the same person appearing in merged event
// lists, from name variations ("Dr. Rohini Srivathsa" vs "Rohini
// Srivathsa"), and from company variations ("Razorpay" vs "Razorpay
// India Pvt Ltd"). Exact matches on the normalized identity key are
// definite duplicates; fuzzy name matches within the same company
// root are probable duplicates. Nothing is silently deleted — every
// demoted record lands in the duplicates set with a reason.
package dedupe

import (
	"regexp"
	"strings"
)

var (
	honorifics      = regexp.MustCompile(`(?i)^(dr\.?|mr\.?|mrs\.?|ms\.?|prof\.?|shri\.?|smt\.?)\s+`)
	companySuffixes = regexp.MustCompile(`(?i)\s+(india|pvt\.?|ltd\.?|limited|private|inc\.?|llc|group|technologies|tech|solutions)\b`)
	punctuation     = regexp.MustCompile(`[^\w\s]`)
)

// NormalizeName strips honorifics and punctuation, lowercases, and
// trims. "Dr. Sreedhara Panicker Somanath" becomes
// "sreedhara panicker somanath". Idempotent.
func NormalizeName(name string) string {
	n := honorifics.ReplaceAllString(strings.TrimSpace(name), "")
	n = punctuation.ReplaceAllString(n, "")
	return strings.TrimSpace(strings.ToLower(n))
}

// NormalizeCompany strips legal/corporate suffixes and punctuation,
// lowercases, and keeps only the first remaining word as the company
// root. "Razorpay India Pvt Ltd" becomes "razorpay". The first-word
// root is deliberately lossy for multi-word unique company names; it
// trades precision for a cheap, stable company-identity proxy.
// Empty or all-suffix input yields "".
func NormalizeCompany(company string) string {
	c := companySuffixes.ReplaceAllString(strings.TrimSpace(company), "")
	c = punctuation.ReplaceAllString(c, "")
	fields := strings.Fields(strings.ToLower(c))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IdentityKey builds the composite dedup key for a contact:
// normalized name + "|" + company root.
func IdentityKey(name, company string) string {
	return NormalizeName(name) + "|" + NormalizeCompany(company)
}
