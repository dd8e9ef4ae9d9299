package checkin

import "strings"

// ReplyClass buckets a free-text check-in reply. Classification is keyword
// based on purpose: the reply surface is tiny ("still the same", "much
// better") and must work offline without an LLM round-trip.
type ReplyClass string

const (
	ReplySame   ReplyClass = "same"
	ReplyBetter ReplyClass = "better"
	ReplyWorse  ReplyClass = "worse"
	ReplyOther  ReplyClass = "other"
)

var worseKeywords = []string{
	"worse", "worsening", "getting bad", "more pain", "hurts more", "terrible",
	"peor", "empeorando", "mas dolor", "más dolor",
}

var betterKeywords = []string{
	"better", "improving", "improved", "great", "good now", "recovered", "fine now",
	"mejor", "mejorando", "recuperado", "bien ya",
}

var sameKeywords = []string{
	"same", "no change", "unchanged", "still", "not changed", "as before",
	"igual", "sigue", "sin cambios", "lo mismo",
}

// Classify maps a reply to one of the four buckets. Worse wins over better
// so "not better, worse actually" lands on the safe side.
func Classify(text string) ReplyClass {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return ReplyOther
	}

	if containsAny(normalized, worseKeywords) {
		return ReplyWorse
	}
	if containsAny(normalized, betterKeywords) {
		return ReplyBetter
	}
	if containsAny(normalized, sameKeywords) {
		return ReplySame
	}
	return ReplyOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
