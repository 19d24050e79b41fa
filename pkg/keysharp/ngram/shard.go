package ngram

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MinShardRunes is the smallest text, in runes, that ExtractSharded splits.
// Shorter input is counted in one pass.
const MinShardRunes = 1 << 14

// ExtractSharded produces the same tables as Extract, counting up to shards
// ranges of the text concurrently and summing the partial tables.
// The only possible error is ctx being cancelled.
func ExtractSharded(ctx context.Context, text string, shards int) (Counts, error) {
	runes := []rune(text)
	if shards <= 1 || len(runes) < MinShardRunes {
		counts := NewCounts()
		countRange(runes, 0, len(runes), counts)
		return counts, ctx.Err()
	}

	bounds := shardBounds(runes, shards)
	partials := make([]Counts, len(bounds)-1)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < len(bounds)-1; i++ {
		lo, hi := bounds[i], bounds[i+1]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partial := NewCounts()
			countRange(runes, lo, hi, partial)
			partials[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}

	out := NewCounts()
	for _, p := range partials {
		out.addAll(p)
	}
	return out, nil
}

// shardBounds returns ascending cut points starting at 0 and ending at
// len(runes). Every interior cut sits on a whitespace rune.
func shardBounds(runes []rune, shards int) []int {
	n := len(runes)
	bounds := []int{0}
	for i := 1; i < shards; i++ {
		cut := i * n / shards
		if cut <= bounds[len(bounds)-1] {
			cut = bounds[len(bounds)-1] + 1
		}
		for cut < n && !IsWhitespace(runes[cut]) {
			cut++
		}
		if cut >= n {
			break
		}
		bounds = append(bounds, cut)
	}
	return append(bounds, n)
}
