package interview

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestGenerateStratifiesByPosition(t *testing.T) {
	stub := &stubGenerator{response: "1. What is a Python decorator?\n" +
		"2. How does the GIL affect threading?\n" +
		"3. When would you use metaclasses?\n" +
		"4. What is duck typing?\n"}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	set, err := gen.Generate(context.Background(), "Python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Easy != "What is a Python decorator?" {
		t.Fatalf("unexpected easy question: %q", set.Easy)
	}
	if set.Normal != "How does the GIL affect threading?" {
		t.Fatalf("unexpected normal question: %q", set.Normal)
	}
	if set.Hard != "When would you use metaclasses?" {
		t.Fatalf("unexpected hard question: %q", set.Hard)
	}

	if stub.calls != 1 {
		t.Fatalf("expected a single model call, got %d", stub.calls)
	}
}

func TestGenerateFiltersBoilerplate(t *testing.T) {
	stub := &stubGenerator{response: "Interview Questions for SQL\n" +
		"**Technical Skills**\n" +
		"Summary: a list follows\n" +
		"This line has no question mark\n" +
		"\n" +
		"* What is a JOIN?\n"}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	set, err := gen.Generate(context.Background(), "SQL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Easy != "What is a JOIN?" {
		t.Fatalf("unexpected easy question: %q", set.Easy)
	}
	if set.Normal != "" || set.Hard != "" {
		t.Fatalf("expected missing tiers to stay empty, got %+v", set)
	}
}

func TestGenerateBlankSkillSkipsModel(t *testing.T) {
	stub := &stubGenerator{response: "Should not be called?"}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	set, err := gen.Generate(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !set.Empty() {
		t.Fatalf("expected empty set for blank skill, got %+v", set)
	}

	if stub.calls != 0 {
		t.Fatalf("expected no model call, got %d", stub.calls)
	}
}

func TestGenerateEmptyResponseYieldsEmptySet(t *testing.T) {
	stub := &stubGenerator{response: ""}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	set, err := gen.Generate(context.Background(), "Docker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !set.Empty() {
		t.Fatalf("expected empty set, got %+v", set)
	}
}

func TestGeneratePropagatesTransientFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("boom")}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	if _, err := gen.Generate(context.Background(), "Go"); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestFollowUpReturnsFirstValidQuestion(t *testing.T) {
	stub := &stubGenerator{response: "Here is a good follow-up:\n1. How would you tune that index?"}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	followUp, err := gen.FollowUp(context.Background(), "What is a JOIN?", "It combines rows.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if followUp != "How would you tune that index?" {
		t.Fatalf("unexpected follow-up: %q", followUp)
	}
}

func TestFollowUpDegradesToEmpty(t *testing.T) {
	stub := &stubGenerator{response: "I could not think of anything."}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	followUp, err := gen.FollowUp(context.Background(), "q?", "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if followUp != "" {
		t.Fatalf("expected empty follow-up, got %q", followUp)
	}
}

func TestHRQuestion(t *testing.T) {
	stub := &stubGenerator{response: "Tell me about a conflict you resolved in a team?"}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	question, err := gen.HRQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if question != "Tell me about a conflict you resolved in a team?" {
		t.Fatalf("unexpected hr question: %q", question)
	}
}

func TestValidQuestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		valid bool
	}{
		{"What is Go?", true},
		{"", false},
		{"No question mark", false},
		{"Interview Questions for Go?", false},
		{"What are your Technical Skills?", false},
		{"Summary: anything?", false},
		{"**What is Go?**", false},
	}

	for _, tt := range tests {
		if got := ValidQuestion(tt.text); got != tt.valid {
			t.Fatalf("ValidQuestion(%q) = %v, want %v", tt.text, got, tt.valid)
		}
	}
}
