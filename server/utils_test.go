package main

import (
	"strings"
	"testing"
	"time"
)

func TestTimeToMinute(t *testing.T) {
	in := time.Date(2026, 8, 14, 21, 37, 45, 123456789, time.UTC)
	want := time.Date(2026, 8, 14, 21, 37, 0, 0, time.UTC)
	if got := timeToMinute(in); !got.Equal(want) {
		t.Errorf("timeToMinute: expected %v, got %v", want, got)
	}
	if got := timeToMinute(want); !got.Equal(want) {
		t.Errorf("timeToMinute must be idempotent: got %v", got)
	}
}

func TestNormalizeTagName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Rubber Duck", "rubber duck"},
		{"  donation  ", "donation"},
		{"CRASH", "crash"},
		{"café", "café"},
		{"", ""},
		{"   ", ""},
		{strings.Repeat("a", 200), strings.Repeat("a", maxTagLength)},
	}
	for _, tc := range cases {
		if got := normalizeTagName(tc.in); got != tc.want {
			t.Errorf("normalizeTagName(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestTruncateGraphemes(t *testing.T) {
	// The family emoji is a single grapheme cluster of several runes.
	family := "\U0001F468\u200D\U0001F469\u200D\U0001F467"

	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"hello", -1, ""},
		{family + "x", 1, family},
		{family + "x", 2, family + "x"},
	}
	for _, tc := range cases {
		if got := truncateGraphemes(tc.in, tc.max); got != tc.want {
			t.Errorf("truncateGraphemes(%q, %d): expected %q, got %q", tc.in, tc.max, tc.want, got)
		}
	}
}

func TestTypingPreview(t *testing.T) {
	short := "omg a bus"
	if got := typingPreview(short); got != short {
		t.Errorf("typingPreview: expected %q, got %q", short, got)
	}
	long := strings.Repeat("x", maxTypingPreviewLen+30)
	if got := typingPreview(long); len(got) != maxTypingPreviewLen {
		t.Errorf("typingPreview length: expected %d, got %d", maxTypingPreviewLen, len(got))
	}
}

func TestValidMediaLinks(t *testing.T) {
	cases := []struct {
		links []string
		want  bool
	}{
		{nil, true},
		{[]string{}, true},
		{[]string{"https://clips.example.com/abc"}, true},
		{[]string{"http://example.com/a", "https://example.com/b"}, true},
		{[]string{"ftp://example.com/a"}, false},
		{[]string{"/relative/path"}, false},
		{[]string{"https://"}, false},
		{[]string{"not a url at all", "https://example.com"}, false},
		{make([]string, maxMediaLinks+1), false},
	}
	for _, tc := range cases {
		if got := validMediaLinks(tc.links); got != tc.want {
			t.Errorf("validMediaLinks(%v): expected %t, got %t", tc.links, tc.want, got)
		}
	}
}
