package checkin

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want ReplyClass
	}{
		{"still the same", ReplySame},
		{"No change really", ReplySame},
		{"igual que ayer", ReplySame},
		{"feeling much better!", ReplyBetter},
		{"it improved a lot", ReplyBetter},
		{"me siento mejor", ReplyBetter},
		{"it got worse", ReplyWorse},
		{"more pain than yesterday", ReplyWorse},
		{"cada vez peor", ReplyWorse},
		{"not better, worse actually", ReplyWorse},
		{"thanks for asking", ReplyOther},
		{"", ReplyOther},
		{"what do you mean?", ReplyOther},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
