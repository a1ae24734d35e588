package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	errx "github.com/P-AlaKara/rag-study-assistant/internal/core/error"
	"github.com/P-AlaKara/rag-study-assistant/internal/paper"
)

func makeQuestions(n int) []paper.Question {
	qs := make([]paper.Question, n)
	for i := range qs {
		qs[i] = paper.Question{
			Ordinal: i + 1,
			Text:    fmt.Sprintf("Question %d: body %d", i+1, i+1),
		}
	}
	return qs
}

func TestBatchingTwelveByFive(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{UnitCode: "SIT182", Year: "2022"}, makeQuestions(12)); err != nil {
		t.Fatalf("StartPaper: %v", err)
	}

	batch, more := st.NextBatch("s")
	if len(batch) != 5 || !more {
		t.Fatalf("first batch: len=%d more=%v", len(batch), more)
	}
	if batch[0].Ordinal != 1 || batch[4].Ordinal != 5 {
		t.Fatalf("first batch ordinals: %d..%d", batch[0].Ordinal, batch[4].Ordinal)
	}

	batch, more = st.NextBatch("s")
	if len(batch) != 5 || !more {
		t.Fatalf("second batch: len=%d more=%v", len(batch), more)
	}
	if batch[0].Ordinal != 6 {
		t.Fatalf("second batch starts at %d", batch[0].Ordinal)
	}

	batch, more = st.NextBatch("s")
	if len(batch) != 2 || more {
		t.Fatalf("final batch: len=%d more=%v", len(batch), more)
	}
	if batch[1].Ordinal != 12 {
		t.Fatalf("final batch ends at %d", batch[1].Ordinal)
	}
}

func TestNextBatchPastEndResets(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{}, makeQuestions(5)); err != nil {
		t.Fatalf("StartPaper: %v", err)
	}

	if batch, _ := st.NextBatch("s"); len(batch) != 5 {
		t.Fatalf("expected full batch, got %d", len(batch))
	}
	batch, more := st.NextBatch("s")
	if batch != nil || more {
		t.Fatalf("expected empty batch past end, got len=%d more=%v", len(batch), more)
	}
	if st.Active("s") {
		t.Fatal("session should be inactive after exhaustion")
	}
	if st.Total("s") != 0 {
		t.Fatalf("questions should be cleared, total=%d", st.Total("s"))
	}
}

func TestStartPaperEmptyList(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{}, nil); !errors.Is(err, errx.ErrEmptyPaper) {
		t.Fatalf("expected ErrEmptyPaper, got %v", err)
	}
	if st.Active("s") {
		t.Fatal("empty start must not activate the session")
	}
}

func TestStartPaperReplacesState(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{UnitCode: "SIT182"}, makeQuestions(7)); err != nil {
		t.Fatalf("StartPaper: %v", err)
	}
	st.NextBatch("s")
	if err := st.RecordAnswer("s", 2, "old answer"); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	if err := st.StartPaper("s", Label{UnitCode: "SIT327"}, makeQuestions(3)); err != nil {
		t.Fatalf("second StartPaper: %v", err)
	}
	if got := st.Label("s"); got.UnitCode != "SIT327" {
		t.Fatalf("label not replaced: %+v", got)
	}
	if _, ok := st.Answer("s", 2); ok {
		t.Fatal("answers should be cleared on new paper")
	}
	if batch, _ := st.NextBatch("s"); len(batch) != 3 || batch[0].Ordinal != 1 {
		t.Fatalf("cursor not rewound: %+v", batch)
	}
}

func TestRecordAnswerOverwrites(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{}, makeQuestions(3)); err != nil {
		t.Fatalf("StartPaper: %v", err)
	}

	if err := st.RecordAnswer("s", 2, "first"); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := st.RecordAnswer("s", 2, "second"); err != nil {
		t.Fatalf("RecordAnswer overwrite: %v", err)
	}
	text, ok := st.Answer("s", 2)
	if !ok || text != "second" {
		t.Fatalf("got %q ok=%v, want latest answer", text, ok)
	}

	if err := st.RecordAnswer("s", 0, "x"); !errors.Is(err, errx.ErrInvalidOrdinal) {
		t.Fatalf("ordinal 0: %v", err)
	}
	if err := st.RecordAnswer("s", 4, "x"); !errors.Is(err, errx.ErrInvalidOrdinal) {
		t.Fatalf("ordinal past end: %v", err)
	}
}

func TestClarificationCacheIdempotent(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{}, makeQuestions(3)); err != nil {
		t.Fatalf("StartPaper: %v", err)
	}

	if _, ok, err := st.Clarification("s", 1); err != nil || ok {
		t.Fatalf("expected cold cache, ok=%v err=%v", ok, err)
	}
	if err := st.CacheClarification("s", 1, "first explanation"); err != nil {
		t.Fatalf("CacheClarification: %v", err)
	}
	if err := st.CacheClarification("s", 1, "second explanation"); err != nil {
		t.Fatalf("CacheClarification repeat: %v", err)
	}
	text, ok, err := st.Clarification("s", 1)
	if err != nil || !ok || text != "first explanation" {
		t.Fatalf("got %q ok=%v err=%v, want first cached value", text, ok, err)
	}

	if _, _, err := st.Clarification("s", 9); !errors.Is(err, errx.ErrInvalidOrdinal) {
		t.Fatalf("out of range ordinal: %v", err)
	}
}

func TestProgress(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{}, makeQuestions(12)); err != nil {
		t.Fatalf("StartPaper: %v", err)
	}
	if got := st.Progress("s"); got != "Questions 0/12" {
		t.Fatalf("before first batch: %q", got)
	}
	st.NextBatch("s")
	if got := st.Progress("s"); got != "Questions 5/12" {
		t.Fatalf("after first batch: %q", got)
	}
	st.NextBatch("s")
	st.NextBatch("s")
	if got := st.Progress("s"); got != "Questions 12/12" {
		t.Fatalf("after final batch: %q", got)
	}
}

func TestSessionsIndependent(t *testing.T) {
	st := NewStore(Config{BatchSize: 2})
	if err := st.StartPaper("a", Label{UnitCode: "SIT182"}, makeQuestions(4)); err != nil {
		t.Fatalf("StartPaper a: %v", err)
	}
	if err := st.StartPaper("b", Label{UnitCode: "SIT327"}, makeQuestions(2)); err != nil {
		t.Fatalf("StartPaper b: %v", err)
	}

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			st.NextBatch(id)
			st.RecordAnswer(id, 1, "answer from "+id)
		}(id)
	}
	wg.Wait()

	if text, _ := st.Answer("a", 1); text != "answer from a" {
		t.Fatalf("session a answer: %q", text)
	}
	if text, _ := st.Answer("b", 1); text != "answer from b" {
		t.Fatalf("session b answer: %q", text)
	}
	if st.Label("a").UnitCode != "SIT182" || st.Label("b").UnitCode != "SIT327" {
		t.Fatal("labels leaked across sessions")
	}
}

func TestReset(t *testing.T) {
	st := NewStore(Config{BatchSize: 5})
	if err := st.StartPaper("s", Label{UnitCode: "SIT182"}, makeQuestions(6)); err != nil {
		t.Fatalf("StartPaper: %v", err)
	}
	st.NextBatch("s")
	st.RecordAnswer("s", 1, "x")

	st.Reset("s")
	if st.Active("s") || st.Total("s") != 0 {
		t.Fatal("reset did not clear the session")
	}
	if _, ok := st.Answer("s", 1); ok {
		t.Fatal("reset did not clear answers")
	}
	if batch, more := st.NextBatch("s"); batch != nil || more {
		t.Fatal("reset session should return no batch")
	}
}

func TestBatchSizeDefault(t *testing.T) {
	st := NewStore(Config{})
	if st.BatchSize() != 5 {
		t.Fatalf("default batch size = %d", st.BatchSize())
	}
}
