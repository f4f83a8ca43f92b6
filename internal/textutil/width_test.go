package textutil

import "testing"

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "notepad", 7},
		{"wide cjk", "メモ帳", 6},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.text); got != tt.want {
				t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"notepad", 10, "notepad"},
		{"notepad", 5, "note…"},
		{"メモ帳", 4, "メ…"},
		{"notepad", 1, "n"},
		{"notepad", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.width); got != tt.want {
			t.Fatalf("Truncate(%q, %d)=%q want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestPadRightKeepsCellWidth(t *testing.T) {
	for _, text := range []string{"a", "メモ帳", "a very long application name"} {
		got := PadRight(text, 8)
		if w := DisplayWidth(got); w != 8 {
			t.Fatalf("PadRight(%q, 8) width=%d (%q)", text, w, got)
		}
	}
}

func TestFitSanitizesBeforePadding(t *testing.T) {
	got := Fit("a\x1bb", 5)
	if got != "a?b  " {
		t.Fatalf("Fit returned %q", got)
	}
}
