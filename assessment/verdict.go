package assessment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bitrise-io/ai-health-assessor/prompt"
)

type VerdictStatus string

const (
	VerdictGood         VerdictStatus = "good"
	VerdictNotGood      VerdictStatus = "not_good"
	VerdictUnrecognized VerdictStatus = "unrecognized"
)

// HealthVerdict is the free-text answer of the health pipeline. Text is the
// model output verbatim apart from surrounding whitespace.
type HealthVerdict struct {
	Text       string        `json:"text"`
	Status     VerdictStatus `json:"status"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// Recognized reports whether the answer opened with one of the two lead sentences.
func (v HealthVerdict) Recognized() bool {
	return v.Status != VerdictUnrecognized
}

// InterpretVerdict never fails. Answers that do not open with one of the
// instructed lead sentences are returned as VerdictUnrecognized.
func InterpretVerdict(raw string) HealthVerdict {
	text := strings.TrimSpace(raw)
	verdict := HealthVerdict{Text: text, Status: VerdictUnrecognized}

	for _, lead := range []struct {
		sentence string
		status   VerdictStatus
	}{
		{prompt.NotGoodHealthLead, VerdictNotGood},
		{prompt.GoodHealthLead, VerdictGood},
	} {
		if rest, ok := cutPrefixFold(text, lead.sentence); ok {
			verdict.Status = lead.status
			verdict.Suggestion = strings.TrimSpace(strings.TrimLeft(rest, ".!,:;"))
			break
		}
	}

	return verdict
}

// cutPrefixFold matches prefix case-insensitively as whole words: the prefix
// must end the text or be followed by a space or punctuation.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	rest := s[len(prefix):]
	if next, _ := utf8.DecodeRuneInString(rest); rest != "" && !unicode.IsSpace(next) && !unicode.IsPunct(next) {
		return s, false
	}
	return rest, true
}
