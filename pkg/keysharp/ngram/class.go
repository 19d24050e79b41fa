package ngram

import (
	"fmt"
	"strings"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
)

// Class identifies one of the four token classes counted by Extract.
type Class int

const (
	Monogram Class = iota
	Bigram
	Trigram
	Word
)

var classNames = [...]string{"monograms", "bigrams", "trigrams", "words"}

// Classes returns every token class in display order.
func Classes() []Class {
	return []Class{Monogram, Bigram, Trigram, Word}
}

func (c Class) String() string {
	if c < Monogram || c > Word {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classNames[c]
}

// ParseClass accepts the plural or singular class name, case-insensitively.
func ParseClass(s string) (Class, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range classNames {
		if name == n || name == strings.TrimSuffix(n, "s") {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("token class %q: %w", s, internalerr.ErrInvalidInput)
}
