package classifier

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TopicClassifier extracts a short candidate title for the health topic
// discussed in a conversation excerpt. Its output is untrusted free text:
// the lifecycle service always runs it through the fuzzy matcher, never
// treats it as a resolved identifier.
type TopicClassifier interface {
	DetectTopic(ctx context.Context, excerpt string, existingTitles []string) (string, error)
}

// KeywordClassifier is the offline fallback: it maps symptom keywords to
// canonical titles and otherwise derives a title from the excerpt's leading
// words. Deterministic, used in tests and when no LLM provider is configured.
type KeywordClassifier struct{}

var _ TopicClassifier = &KeywordClassifier{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var topicKeywords = []struct {
	keyword string
	title   string
}{
	{"back", "Back Pain"},
	{"espalda", "Back Pain"},
	{"head", "Headache"},
	{"migraine", "Headache"},
	{"cabeza", "Headache"},
	{"stomach", "Stomach Pain"},
	{"estomago", "Stomach Pain"},
	{"estómago", "Stomach Pain"},
	{"knee", "Knee Injury"},
	{"rodilla", "Knee Injury"},
	{"sleep", "Sleep Issues"},
	{"insomnia", "Sleep Issues"},
	{"anxiety", "Anxiety"},
	{"ansiedad", "Anxiety"},
	{"reflux", "Acid Reflux"},
	{"heartburn", "Acid Reflux"},
	{"cough", "Cough"},
	{"tos", "Cough"},
	{"fever", "Fever"},
	{"fiebre", "Fever"},
}

func (c *KeywordClassifier) DetectTopic(ctx context.Context, excerpt string, existingTitles []string) (string, error) {
	normalized := strings.ToLower(excerpt)
	for _, tk := range topicKeywords {
		if strings.Contains(normalized, tk.keyword) {
			return tk.title, nil
		}
	}

	// No known symptom: title from the leading words of the excerpt.
	words := strings.Fields(strings.TrimSpace(excerpt))
	if len(words) == 0 {
		return "General", nil
	}
	if len(words) > 3 {
		words = words[:3]
	}
	return cases.Title(language.Und).String(strings.Join(words, " ")), nil
}
