package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"Rochefort 8", 20, "Rochefort 8"},
		{"Rochefort 8", 8, "Roche..."},
		{"Rochefort 8", 3, "Roc"},
		{"  Orval  ", 0, "Orval"},
		{"Ŝtrong ŝtout", 7, "Ŝtro..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle_KeepsExtension(t *testing.T) {
	got := truncateMiddle("/data/beers/img/affligem-tripel-label.png", 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("truncateMiddle length = %d, want 20 (%q)", len([]rune(got)), got)
	}
	if got[len(got)-4:] != ".png" {
		t.Fatalf("truncateMiddle dropped the extension: %q", got)
	}
	if short := truncateMiddle("/img/back.png", 40); short != "/img/back.png" {
		t.Fatalf("short path changed: %q", short)
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padLeft("7%", 4); got != "  7%" {
		t.Fatalf("padLeft = %q", got)
	}
	if got := padLeft("12.5%", 3); got != "12.5%" {
		t.Fatalf("padLeft overflow = %q", got)
	}
	if orDash("  ") != "-" || orDash("Dubbel") != "Dubbel" {
		t.Fatalf("orDash mismatch")
	}
}
