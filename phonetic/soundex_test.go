package phonetic

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

func TestSoundex(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Robert", "R163"},
		{"Rupert", "R163"},
		{"Ashcraft", "A226"},
		{"Tymczak", "T522"},
		{"Pfister", "P236"},
		{"Lloyd", "L300"},
		{"lee", "L000"},
		{"A", "A000"},
		{"Bab", "B100"},
		{"Bb", "B000"},
		{"O'Brien", "O165"},
		{"1abc", "1120"},
		{"müller", "M460"},
		{"Émile", "É540"},
		{"Washington", "W252"},
		{"\xffbob", "\xff110"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Soundex(tt.name); got != tt.want {
			t.Fatalf("Soundex(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSoundexPtr(t *testing.T) {
	if got := SoundexPtr(nil); got != "" {
		t.Fatalf("expected empty code for nil name, got %q", got)
	}
	name := "Rupert"
	if got := SoundexPtr(&name); got != "R163" {
		t.Fatalf("expected R163, got %q", got)
	}
}

func TestSoundexCaseInsensitive(t *testing.T) {
	want := Soundex("Robert")
	for _, name := range []string{"ROBERT", "robert", "rObErT"} {
		if got := Soundex(name); got != want {
			t.Fatalf("Soundex(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSoundexShape(t *testing.T) {
	names := []string{"x", "Jackson", "Van Dyke", "42nd Street", "?!", "hhhhhhh", "Schwarzenegger", "zz-top"}
	for _, name := range names {
		got := Soundex(name)
		if utf8.RuneCountInString(got) != 4 {
			t.Fatalf("Soundex(%q) = %q, want 4 characters", name, got)
		}
		first, _ := utf8.DecodeRuneInString(name)
		if !strings.HasPrefix(got, strings.ToUpper(string(first))) {
			t.Fatalf("Soundex(%q) = %q, want uppercased first character", name, got)
		}
		for _, r := range got[1:] {
			if r < '0' || r > '6' {
				t.Fatalf("Soundex(%q) = %q, unexpected digit %q", name, got, r)
			}
		}
		if again := Soundex(name); again != got {
			t.Fatalf("Soundex(%q) not deterministic: %q then %q", name, got, again)
		}
	}
}

func TestSoundexConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := Soundex("Tymczak"); got != "T522" {
					t.Errorf("expected T522, got %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
