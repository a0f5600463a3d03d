package chain

import "testing"

func TestCleanHeaderValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jane Doe <mailto:jane@x.com>", "Jane Doe"},
		{"jane@x.com <jane@x.com>", "jane@x.com"},
		{"jane@x.com <mailto:jane@x.com>", "jane@x.com"},
		{"Jane Doe <jane@x.com>", "Jane Doe <jane@x.com>"},
		{"  Jane   Doe  ", "Jane Doe"},
		{"a@x.com <a@x.com>; b@x.com <b@x.com>", "a@x.com; b@x.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanHeaderValue(tt.input); got != tt.want {
			t.Errorf("CleanHeaderValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanHeaderValueIdempotent(t *testing.T) {
	inputs := []string{
		"Jane Doe <mailto:jane@x.com>",
		"jane@x.com <jane@x.com>",
		"Jane Doe <jane@x.com>",
		"  spaced   out\ttext ",
		"plain",
		"",
	}

	for _, input := range inputs {
		once := CleanHeaderValue(input)
		twice := CleanHeaderValue(once)
		if once != twice {
			t.Errorf("CleanHeaderValue not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
