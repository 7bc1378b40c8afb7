package skills

import "testing"

func TestDetectOrderedUniqueLabels(t *testing.T) {
	detector := NewDetector()

	text := "Built SQL pipelines in python. More SQL work with Docker and docker-compose."
	got := detector.Detect(text)

	want := []string{"Python", "SQL", "Docker"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDetectSymbolHeavyLabels(t *testing.T) {
	detector := NewDetector()

	got := detector.Detect("Ten years of C++ and C# development.")

	want := []string{"C++", "C#"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDetectWholeWordsOnly(t *testing.T) {
	detector := NewDetectorWithLabels([]string{"Go", "R"})

	if got := detector.Detect("Gopher programming is great"); len(got) != 0 {
		t.Fatalf("expected no match inside larger words, got %v", got)
	}

	got := detector.Detect("Analysis in R and Go.")
	if len(got) != 2 || got[0] != "Go" || got[1] != "R" {
		t.Fatalf("unexpected detection: %v", got)
	}
}

func TestDetectEmptyText(t *testing.T) {
	detector := NewDetector()

	if got := detector.Detect("   "); got != nil {
		t.Fatalf("expected nil for blank text, got %v", got)
	}
}
