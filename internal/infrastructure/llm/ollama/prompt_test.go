package ollama

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildProfilePromptTruncatesOnRuneBoundary(t *testing.T) {
	// The leading byte shifts every two-byte rune off an even offset, so the
	// truncation point lands in the middle of one.
	text := "a" + strings.Repeat("é", maxPromptChars)

	prompt := buildProfilePrompt(text)
	if !utf8.ValidString(prompt) {
		t.Fatalf("truncated prompt contains invalid UTF-8")
	}
	if strings.HasSuffix(prompt, "\xc3") {
		t.Fatalf("prompt ends on a dangling lead byte")
	}
	if len(prompt) >= len(text) {
		t.Fatalf("prompt was not truncated")
	}
}
