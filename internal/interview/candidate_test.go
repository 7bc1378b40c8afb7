package interview

import "testing"

func TestCandidateDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id     string
		expect string
	}{
		{"alice42", "Alice"},
		{"BOB-2024", "Bob"},
		{"charlie", "Charlie"},
		{"42nothing", "User"},
		{"", "User"},
		{"  dana99  ", "Dana"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			c := Candidate{ID: tt.id}
			if got := c.DisplayName(); got != tt.expect {
				t.Fatalf("DisplayName(%q) = %q, want %q", tt.id, got, tt.expect)
			}
		})
	}
}
