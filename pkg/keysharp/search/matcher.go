// Package search decides whether a displayed row matches the user's query.
//
// Regex queries use Go's RE2 dialect (package regexp): lookaround and
// backreferences are not supported. Any pattern that fails to compile
// matches nothing; the failure is never surfaced to the caller of Matches.
package search

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
)

// DefaultCacheSize is the number of compiled patterns kept by Default.
const DefaultCacheSize = 128

// Settings is a search request. Only Filters.CaseSensitive is consulted
// when matching. Limit caps the rows kept by FilterNGrams and FilterWords;
// zero or negative means no limit.
type Settings struct {
	Query    string                   `json:"query" yaml:"query" toml:"query"`
	UseRegex bool                     `json:"use_regex" yaml:"use_regex" toml:"use_regex"`
	Filters  analytics.FilterSettings `json:"filters" yaml:"filters" toml:"filters"`
	Limit    int                      `json:"limit" yaml:"limit" toml:"limit"`
}

// Matcher evaluates Settings against text. Compiled patterns, including
// ones that failed to compile, are kept in an LRU cache. The zero value is
// usable and compiles on every call.
type Matcher struct {
	cache *lru.Cache[patternKey, *regexp.Regexp]
}

type patternKey struct {
	pattern       string
	caseSensitive bool
}

// Default is the shared matcher used by the package-level functions.
var Default = NewMatcher(DefaultCacheSize)

// NewMatcher returns a matcher caching up to size compiled patterns.
// A size of zero or less disables caching.
func NewMatcher(size int) *Matcher {
	if size <= 0 {
		return &Matcher{}
	}
	cache, err := lru.New[patternKey, *regexp.Regexp](size)
	if err != nil {
		return &Matcher{}
	}
	return &Matcher{cache: cache}
}

// Matches reports whether text matches s using the Default matcher.
func Matches(text string, s Settings) bool {
	return Default.Matches(text, s)
}

// Matches reports whether text matches s. An empty query matches everything;
// an invalid regex matches nothing.
func (m *Matcher) Matches(text string, s Settings) bool {
	if s.Query == "" {
		return true
	}
	if !s.UseRegex {
		if s.Filters.CaseSensitive {
			return strings.Contains(text, s.Query)
		}
		return strings.Contains(strings.ToLower(text), strings.ToLower(s.Query))
	}

	re := m.compile(s.Query, s.Filters.CaseSensitive)
	if re == nil {
		return false
	}
	return re.MatchString(text)
}

// compile returns nil when the pattern is invalid.
func (m *Matcher) compile(pattern string, caseSensitive bool) *regexp.Regexp {
	key := patternKey{pattern: pattern, caseSensitive: caseSensitive}
	if m != nil && m.cache != nil {
		if re, ok := m.cache.Get(key); ok {
			return re
		}
	}

	re, err := compilePattern(pattern, caseSensitive)
	if err != nil {
		re = nil
	}
	if m != nil && m.cache != nil {
		m.cache.Add(key, re)
	}
	return re
}

func compilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// Valid returns the compilation error of a regex query, or nil. Callers can
// use it to flag a pattern while Matches keeps returning false for it.
func Valid(s Settings) error {
	if !s.UseRegex || s.Query == "" {
		return nil
	}
	_, err := compilePattern(s.Query, s.Filters.CaseSensitive)
	return err
}
