package dedupe

import (
	"fmt"
	"math"

	"github.com/agext/levenshtein"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Strategy selects the tie-break policy when two records share an
// identity key.
type Strategy string

const (
	// KeepFirst keeps the first-seen record at a key; later ones are
	// demoted.
	KeepFirst Strategy = "keep_first"
	// KeepHighestICP lets a later record with strictly higher ICP
	// score dethrone the currently kept one at the same exact key.
	// The dethroned record moves to the duplicates set. Fuzzy-matched
	// records never participate in promotion.
	KeepHighestICP Strategy = "keep_highest_icp"
)

// Config controls duplicate detection.
type Config struct {
	// FuzzyThreshold is the 0-100 name similarity at or above which
	// two records with identical company roots are duplicates.
	FuzzyThreshold int
	Strategy       Strategy
}

// DefaultConfig returns the standard dedup configuration.
func DefaultConfig() Config {
	return Config{FuzzyThreshold: 85, Strategy: KeepFirst}
}

// Result partitions an input batch into kept and demoted records.
// Clean preserves input order minus demoted records. Duplicates holds
// every demoted record with DupReason and KeptID set; it is an empty
// slice, never nil-for-silence, when no duplicates exist.
type Result struct {
	Clean      []model.Contact
	Duplicates []model.Contact
}

// Similarity returns the Levenshtein-based similarity of two strings
// on a 0-100 scale.
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, nil) * 100
}

type keptEntry struct {
	idx  int // index into the input slice
	name string
	root string
}

// Dedupe runs a single pass over contacts in input order, classifying
// each record as kept, exact duplicate, or fuzzy duplicate. The total
// record count is conserved: len(Clean) + len(Duplicates) equals the
// input length (a keep_highest_icp swap relabels, it does not delete).
func Dedupe(contacts []model.Contact, cfg Config) Result {
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = 85
	}
	if cfg.Strategy == "" {
		cfg.Strategy = KeepFirst
	}

	log := zap.L().Named("dedupe")

	// kept is ordered; byKey indexes into it by identity key.
	var kept []keptEntry
	byKey := make(map[string]int)
	demoted := make(map[int]model.Contact) // input idx → demoted record

	for i, c := range contacts {
		name := NormalizeName(c.Name)
		root := NormalizeCompany(c.Company)
		key := name + "|" + root

		// 1. Exact key match.
		if ki, ok := byKey[key]; ok {
			held := kept[ki]
			if cfg.Strategy == KeepHighestICP && c.ICPScore > contacts[held.idx].ICPScore {
				// Dethrone the previously kept record.
				old := contacts[held.idx]
				old.DupReason = "replaced_by_higher_icp"
				old.KeptID = c.ID
				demoted[held.idx] = old
				kept[ki] = keptEntry{idx: i, name: name, root: root}
				log.Info("replaced by higher icp",
					zap.String("kept", c.Name),
					zap.String("demoted", old.Name),
					zap.Int("icp_score", c.ICPScore),
				)
				continue
			}

			dup := c
			dup.DupReason = "exact_match"
			dup.KeptID = contacts[held.idx].ID
			demoted[i] = dup
			log.Info("exact duplicate",
				zap.String("name", c.Name),
				zap.String("company", c.Company),
				zap.String("kept_id", dup.KeptID),
			)
			continue
		}

		// 2. Fuzzy name match against kept records with the same
		// company root. Restricting to identical roots bounds the
		// comparison cost and avoids false positives across
		// unrelated companies.
		if ki := fuzzyMatch(kept, name, root, cfg.FuzzyThreshold); ki >= 0 {
			held := kept[ki]
			sim := Similarity(name, held.name)
			dup := c
			dup.DupReason = fmt.Sprintf("fuzzy_match_%.0fpct", math.Round(sim))
			dup.KeptID = contacts[held.idx].ID
			demoted[i] = dup
			log.Info("fuzzy duplicate",
				zap.String("name", c.Name),
				zap.String("matched", contacts[held.idx].Name),
				zap.Float64("similarity", sim),
			)
			continue
		}

		// 3. Keep this record.
		byKey[key] = len(kept)
		kept = append(kept, keptEntry{idx: i, name: name, root: root})
	}

	keptIdx := make(map[int]bool, len(kept))
	for _, k := range kept {
		keptIdx[k.idx] = true
	}

	result := Result{Duplicates: []model.Contact{}}
	for i, c := range contacts {
		switch {
		case keptIdx[i]:
			result.Clean = append(result.Clean, c)
		default:
			result.Duplicates = append(result.Duplicates, demoted[i])
		}
	}

	log.Info("dedup complete",
		zap.Int("input", len(contacts)),
		zap.Int("clean", len(result.Clean)),
		zap.Int("duplicates", len(result.Duplicates)),
	)
	return result
}

// fuzzyMatch returns the index in kept of the first entry whose
// company root equals root and whose normalized name is at least
// threshold similar, or -1. Kept order makes the scan deterministic.
func fuzzyMatch(kept []keptEntry, name, root string, threshold int) int {
	for i, k := range kept {
		if k.root != root {
			continue
		}
		if Similarity(name, k.name) >= float64(threshold) {
			return i
		}
	}
	return -1
}
