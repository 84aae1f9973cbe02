package ui

import "testing"

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	seen := map[string]bool{}
	name := names[0]
	for range names {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != names[0] || len(seen) != len(names) {
		t.Fatalf("cycle did not visit every theme once: %v", seen)
	}
	if NextTheme("unknown") != names[0] {
		t.Fatalf("unknown theme should restart the cycle")
	}
}

func TestGetTheme_Fallback(t *testing.T) {
	if got := GetTheme("Kanagawa").Name; got != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa) = %q", got)
	}
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope) = %q, want Nightfox", got)
	}
}

func TestThemeNames_ReturnsCopy(t *testing.T) {
	names := ThemeNames()
	names[0] = "changed"
	if ThemeNames()[0] == "changed" {
		t.Fatalf("ThemeNames exposed its backing slice")
	}
}
