package utils

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "milk", 10, "milk"},
		{"exact", "milk", 4, "milk"},
		{"ascii", "renew passport", 8, "renew p…"},
		{"wide runes", "장보기목록", 6, "장보…"},
		{"one cell", "milk", 1, "…"},
		{"zero", "milk", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.in, tt.width); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("got %q", got)
	}
	if got := PadRight("abcdef", 4); got != "abc…" {
		t.Errorf("got %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("\n  \nhello\nworld"); got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestCheckbox(t *testing.T) {
	if Checkbox(true) == Checkbox(false) {
		t.Error("checked and unchecked boxes should differ")
	}
}
