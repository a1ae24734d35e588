package dialogue

import "testing"

func TestClassifyInactiveAlwaysStartsNew(t *testing.T) {
	for _, utterance := range []string{
		"next",
		"stop",
		"hello there",
		"explain question 2",
	} {
		got := Classify(utterance, false)
		if got.Kind != IntentStartNew {
			t.Fatalf("%q inactive: got kind %d, want StartNew", utterance, got.Kind)
		}
	}
}

func TestClassifyNewPaperWhileActive(t *testing.T) {
	for _, utterance := range []string{
		"let's start a past paper",
		"I want to practice the 2022 exam",
		"go through SIT182 2021 please",
		"work through a past paper",
	} {
		got := Classify(utterance, true)
		if got.Kind != IntentStartNew {
			t.Fatalf("%q: got kind %d, want StartNew", utterance, got.Kind)
		}
	}
}

func TestClassifyTokens(t *testing.T) {
	cases := []struct {
		utterance string
		want      IntentKind
	}{
		{"stop", IntentStop},
		{"I'm done for today", IntentStop},
		{"quit", IntentStop},
		{"next", IntentNextBatch},
		{"yes, continue", IntentNextBatch},
		{"give me more", IntentNextBatch},
		{"please explain question 2", IntentClarify},
		{"I'm confused about question 7", IntentClarify},
		{"help", IntentClarify},
		{"my answer for question 3 is B", IntentAnswer},
		{"what's the weather like", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tc := range cases {
		got := Classify(tc.utterance, true)
		if got.Kind != tc.want {
			t.Fatalf("%q: got kind %d, want %d", tc.utterance, got.Kind, tc.want)
		}
	}
}

func TestClassifyStopBeatsNext(t *testing.T) {
	got := Classify("stop, no more for now", true)
	if got.Kind != IntentStop {
		t.Fatalf("got kind %d, want Stop", got.Kind)
	}
}

func TestClassifyClarifyOrdinal(t *testing.T) {
	got := Classify("explain question 4 please", true)
	if got.Kind != IntentClarify || got.Ordinal != 4 {
		t.Fatalf("got %+v, want Clarify ordinal 4", got)
	}

	got = Classify("I don't understand this", true)
	if got.Kind != IntentClarify || got.Ordinal != 0 {
		t.Fatalf("got %+v, want Clarify ordinal 0", got)
	}
}

func TestClassifyAnswerExtraction(t *testing.T) {
	cases := []struct {
		utterance   string
		wantOrdinal int
		wantAnswer  string
	}{
		{"my answer for question 3 is X", 3, "X"},
		{"answer for question 12 is a stateful firewall", 12, "a stateful firewall"},
		{"my answer is B", 0, "B"},
		{"i think it's option C", 0, "option C"},
		{"solution: use HMAC with a shared key", 0, "use HMAC with a shared key"},
		{"I'll answer later", 0, ""},
	}
	for _, tc := range cases {
		got := Classify(tc.utterance, true)
		if got.Kind != IntentAnswer {
			t.Fatalf("%q: got kind %d, want Answer", tc.utterance, got.Kind)
		}
		if got.Ordinal != tc.wantOrdinal || got.Answer != tc.wantAnswer {
			t.Fatalf("%q: got ordinal=%d answer=%q, want ordinal=%d answer=%q",
				tc.utterance, got.Ordinal, got.Answer, tc.wantOrdinal, tc.wantAnswer)
		}
	}
}

func TestExtractPaperDetails(t *testing.T) {
	cases := []struct {
		utterance string
		wantUnit  string
		wantYear  string
	}{
		{"start the SIT182 2022 past paper", "SIT182", "2022"},
		{"practice sit327 please", "SIT327", ""},
		{"the 2021 exam", "", "2021"},
		{"a past paper", "", ""},
		{"SIT182 paper from 1999", "SIT182", ""},
	}
	for _, tc := range cases {
		unit, year := ExtractPaperDetails(tc.utterance)
		if unit != tc.wantUnit || year != tc.wantYear {
			t.Fatalf("%q: got unit=%q year=%q, want unit=%q year=%q",
				tc.utterance, unit, year, tc.wantUnit, tc.wantYear)
		}
	}
}
