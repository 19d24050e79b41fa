package search

import (
	"reflect"
	"testing"

	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
)

func insensitive(query string, regex bool) Settings {
	return Settings{Query: query, UseRegex: regex}
}

func sensitive(query string, regex bool) Settings {
	return Settings{Query: query, UseRegex: regex, Filters: analytics.FilterSettings{CaseSensitive: true}}
}

func TestMatchesEmptyQuery(t *testing.T) {
	for _, text := range []string{"x", "", "anything at all"} {
		if !Matches(text, insensitive("", false)) {
			t.Errorf("empty query should match %q", text)
		}
		if !Matches(text, sensitive("", true)) {
			t.Errorf("empty regex query should match %q", text)
		}
	}
}

func TestMatchesLiteral(t *testing.T) {
	cases := []struct {
		text string
		s    Settings
		want bool
	}{
		{"The", insensitive("th", false), true},
		{"The", sensitive("th", false), false},
		{"The", sensitive("Th", false), true},
		{"a.b", insensitive(".", false), true},
		{"ab", insensitive(".", false), false},
		{"ab", insensitive("[", false), false},
		{"[x]", insensitive("[", false), true},
	}

	for _, tc := range cases {
		if got := Matches(tc.text, tc.s); got != tc.want {
			t.Errorf("Matches(%q, %+v) = %v, want %v", tc.text, tc.s, got, tc.want)
		}
	}
}

func TestMatchesRegex(t *testing.T) {
	cases := []struct {
		text string
		s    Settings
		want bool
	}{
		{"ab", insensitive(".", true), true},
		{"The", insensitive("^th", true), true},
		{"The", sensitive("^th", true), false},
		{"cat", insensitive("^c.t$", true), true},
		{"scatter", insensitive("^c.t$", true), false},
		{"e1", insensitive(`\d`, true), true},
	}

	for _, tc := range cases {
		if got := Matches(tc.text, tc.s); got != tc.want {
			t.Errorf("Matches(%q, %+v) = %v, want %v", tc.text, tc.s, got, tc.want)
		}
	}
}

func TestMatchesInvalidRegexMatchesNothing(t *testing.T) {
	for _, q := range []string{"[", "(", "a(?<=b)", `\1`} {
		for _, text := range []string{"anything", "[", ""} {
			if Matches(text, insensitive(q, true)) {
				t.Errorf("invalid pattern %q should not match %q", q, text)
			}
		}
		if err := Valid(insensitive(q, true)); err == nil {
			t.Errorf("Valid(%q) should report the compile error", q)
		}
	}
}

func TestValid(t *testing.T) {
	if err := Valid(insensitive("[", false)); err != nil {
		t.Errorf("literal queries are always valid: %v", err)
	}
	if err := Valid(insensitive("", true)); err != nil {
		t.Errorf("empty regex is valid: %v", err)
	}
	if err := Valid(insensitive("^a+$", true)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMatcherCacheSeparatesCaseModes(t *testing.T) {
	m := NewMatcher(4)

	if !m.Matches("ABC", insensitive("abc", true)) {
		t.Error("case-insensitive regex should match")
	}
	if m.Matches("ABC", sensitive("abc", true)) {
		t.Error("case-sensitive regex must not reuse the insensitive pattern")
	}
	if m.cache.Len() != 2 {
		t.Errorf("expected 2 cached patterns, got %d", m.cache.Len())
	}

	// Invalid patterns are cached too and keep matching nothing.
	for i := 0; i < 3; i++ {
		if m.Matches("x", insensitive("(", true)) {
			t.Error("invalid pattern matched")
		}
	}
}

func TestZeroMatcher(t *testing.T) {
	var m Matcher
	if !m.Matches("hello", insensitive("L+", true)) {
		t.Error("zero matcher should compile without a cache")
	}
	if NewMatcher(0).cache != nil {
		t.Error("size 0 should disable the cache")
	}
}

func TestFilterNGrams(t *testing.T) {
	rows := []analytics.NGram{
		{Sequence: "th", Frequency: 9, Rank: 1},
		{Sequence: "he", Frequency: 7, Rank: 2},
		{Sequence: "at", Frequency: 5, Rank: 3},
		{Sequence: "ta", Frequency: 2, Rank: 4},
	}

	got := FilterNGrams(rows, insensitive("t", false))
	want := []analytics.NGram{rows[0], rows[2], rows[3]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	s := insensitive("t", false)
	s.Limit = 2
	got = FilterNGrams(rows, s)
	if !reflect.DeepEqual(got, want[:2]) {
		t.Errorf("limit: got %v, want %v", got, want[:2])
	}

	s = insensitive("", false)
	s.Limit = 0
	if got := FilterNGrams(rows, s); len(got) != len(rows) {
		t.Errorf("limit 0 should keep every row, got %d", len(got))
	}
}

func TestFilterWords(t *testing.T) {
	rows := []analytics.Word{{Word: "The", Frequency: 2}, {Word: "cat", Frequency: 2}, {Word: "then", Frequency: 1}}

	got := FilterWords(rows, sensitive("^[Tt]he", true))
	want := []analytics.Word{{Word: "The", Frequency: 2}, {Word: "then", Frequency: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := FilterWords(rows, insensitive("[", true)); len(got) != 0 {
		t.Errorf("invalid regex should filter out everything, got %v", got)
	}
}
