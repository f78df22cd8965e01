package sanitize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Maria Silva", "Maria Silva"},
		{"surrounding whitespace", "  Maria Silva  ", "Maria Silva"},
		{"collapsed internal whitespace", "Maria   \t Silva", "Maria Silva"},
		{"control characters stripped", "Maria\x00Silva", "MariaSilva"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.input); got != tt.expected {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestText_KeepsLineBreaks(t *testing.T) {
	got := Text("linha um\nlinha dois\x07")
	if got != "linha um\nlinha dois" {
		t.Errorf("unexpected result %q", got)
	}
}
