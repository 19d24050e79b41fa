// Package corpus loads the text bodies that keysharp analyzes.
//
// A corpus is either a preset, a file in the preset directory picked by
// name, or a custom file at any path. The file extension selects a decoder:
// plain text, HTML (visible text only) or JSONL documents.
package corpus

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// Corpus is one loaded text body.
type Corpus struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Text     string    `json:"-"`
	IsCustom bool      `json:"is_custom"`
	LoadedAt time.Time `json:"loaded_at"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// New wraps text as a corpus with a fresh ID.
func New(name, text string, custom bool) Corpus {
	now := time.Now().UTC()
	return Corpus{
		ID:       newID(now),
		Name:     name,
		Text:     text,
		IsCustom: custom,
		LoadedAt: now,
	}
}

// Key identifies the corpus content for caching raw tables. It changes
// whenever the text changes, unlike ID which changes on every load.
func (c Corpus) Key() string {
	sum := sha256.Sum256([]byte(c.Text))
	return c.Name + ":" + hex.EncodeToString(sum[:])
}

// Chars is the number of characters (code points) in the text.
func (c Corpus) Chars() int64 {
	return int64(utf8.RuneCountInString(c.Text))
}
