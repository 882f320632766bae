package monitor

import "testing"

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		name    string
		glob    string
		input   string
		matches bool
	}{
		{"Star Matches Any Run", "scan-*.png", "scan-001.png", true},
		{"Star Matches Empty Run", "scan-*.png", "scan-.png", true},
		{"Anchored At Start", "scan-*.png", "myscan-001.png", false},
		{"Anchored At End", "scan-*.png", "scan-001.png.bak", false},
		{"Case Insensitive", "scan-*.png", "SCAN-ABC.PNG", true},
		{"Question Mark Is One Char", "page-?.jpg", "page-1.jpg", true},
		{"Question Mark Not Two Chars", "page-?.jpg", "page-12.jpg", false},
		{"Question Mark Not Zero Chars", "page-?.jpg", "page-.jpg", false},
		{"Regex Metachars Are Literal", "a+b*.png", "a+b1.png", true},
		{"Plus Not Repetition", "a+b*.png", "aab.png", false},
		{"Empty Glob Means Everything", "", "anything.jpeg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := compileGlob(tt.glob)
			if err != nil {
				t.Fatalf("compileGlob(%q): %v", tt.glob, err)
			}
			if got := re.MatchString(tt.input); got != tt.matches {
				t.Errorf("glob %q on %q = %v, want %v", tt.glob, tt.input, got, tt.matches)
			}
		})
	}
}

func TestFileFilter(t *testing.T) {
	t.Run("Default Extension Allow-List", func(t *testing.T) {
		f, err := newFileFilter("*", nil)
		if err != nil {
			t.Fatalf("newFileFilter: %v", err)
		}

		for _, name := range []string{"a.png", "b.jpg", "c.JPEG"} {
			if !f.Match(name) {
				t.Errorf("Match(%q) = false, want true", name)
			}
		}
		for _, name := range []string{"notes.txt", "doc.pdf", "noext"} {
			if f.Match(name) {
				t.Errorf("Match(%q) = true, want false", name)
			}
		}
	})

	t.Run("Custom Extensions", func(t *testing.T) {
		f, err := newFileFilter("*", []string{".HEIC", "webp"})
		if err != nil {
			t.Fatalf("newFileFilter: %v", err)
		}

		if !f.Match("photo.heic") || !f.Match("photo.WEBP") {
			t.Error("custom extensions not normalized")
		}
		if f.Match("photo.png") {
			t.Error("default extension accepted despite custom list")
		}
	})

	t.Run("Glob And Extension Both Apply", func(t *testing.T) {
		f, err := newFileFilter("scan-*", nil)
		if err != nil {
			t.Fatalf("newFileFilter: %v", err)
		}

		if !f.Match("scan-1.png") {
			t.Error("matching name rejected")
		}
		if f.Match("scan-1.txt") {
			t.Error("disallowed extension accepted")
		}
		if f.Match("other.png") {
			t.Error("non-matching name accepted")
		}
	})
}
