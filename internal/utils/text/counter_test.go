package text_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"newspress/internal/utils/text"
)

/* ───────── CountRunes ───────── */

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"ASCII text", "hello", 5},
		{"empty", "", 0},
		{"Japanese hiragana", "こんにちは", 5},
		{"Japanese kanji", "日本語", 3},
		{"mixed", "hello世界", 7},
		{"emoji", "Hello👋", 6},
		{"newlines", "a\nb", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

/* ───────── Truncate ───────── */

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short enough", "Breaking news", 20, "Breaking news"},
		{"exact length", "abcde", 5, "abcde"},
		{"cut", "abcdefgh", 5, "abcde..."},
		{"cut drops trailing space", "abcd efgh", 5, "abcd..."},
		{"multibyte", "日本語のニュース記事", 3, "日本語..."},
		{"zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.Truncate(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate produced invalid UTF-8: %q", got)
			}
		})
	}
}

func BenchmarkTruncate(b *testing.B) {
	s := strings.Repeat("ニュース news ", 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = text.Truncate(s, text.ExcerptLength)
	}
}
