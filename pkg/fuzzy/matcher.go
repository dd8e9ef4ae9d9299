package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum score a candidate must reach to be
// considered a match. Tuned empirically against short health-topic titles.
const DefaultThreshold = 0.5

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims and strips accents so "Dolor de Cabeza " and
// "dolor de cabeza" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(accentStripper, s); err == nil {
		s = out
	}
	return s
}

// Score computes a similarity score in [0,1] between a free-text target and
// a candidate title:
//   - 1.0 for an exact normalized match
//   - 0.9 for substring containment in either direction
//   - token-overlap ratio (shared words / total distinct words) otherwise
func Score(target, candidate string) float64 {
	nt := Normalize(target)
	nc := Normalize(candidate)
	if nt == "" || nc == "" {
		return 0
	}
	if nt == nc {
		return 1.0
	}
	if strings.Contains(nc, nt) || strings.Contains(nt, nc) {
		return 0.9
	}
	return tokenOverlap(nt, nc)
}

func tokenOverlap(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	shared := 0
	for tok := range tokensA {
		if _, ok := tokensB[tok]; ok {
			shared++
		}
	}

	// Distinct union size
	total := len(tokensA)
	for tok := range tokensB {
		if _, ok := tokensA[tok]; !ok {
			total++
		}
	}
	return float64(shared) / float64(total)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// Match resolves target against candidates and returns the best candidate
// clearing DefaultThreshold. Candidates must be passed pre-sorted by recency
// (most recently updated first); on a tie the earlier candidate wins, which
// gives the recency tie-break for free. The second return is false when
// nothing matches — callers must surface that, never pick arbitrarily.
func Match(target string, candidates []string) (string, bool) {
	return MatchWithThreshold(target, candidates, DefaultThreshold)
}

// MatchWithThreshold is Match with a caller-chosen threshold.
func MatchWithThreshold(target string, candidates []string, threshold float64) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := Score(target, c)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < threshold {
		return "", false
	}
	return best, true
}
