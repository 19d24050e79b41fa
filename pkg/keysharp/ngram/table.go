package ngram

// Table maps a sequence (or word) to its occurrence count.
// Tables are treated as immutable once returned by Extract.
type Table map[string]int64

// Total is the sum of all counts.
func (t Table) Total() int64 {
	var n int64
	for _, c := range t {
		n += c
	}
	return n
}

// Len returns the number of distinct sequences.
func (t Table) Len() int { return len(t) }

// Clone returns an independent copy.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// add folds other into t. Only used while a table is still being built.
func (t Table) add(other Table) {
	for k, v := range other {
		t[k] += v
	}
}

// Counts holds the raw, unfiltered, case-preserving tables for one text.
type Counts struct {
	Monograms Table
	Bigrams   Table
	Trigrams  Table
	Words     Table
}

// NewCounts returns a Counts with four empty tables.
func NewCounts() Counts {
	return Counts{
		Monograms: make(Table),
		Bigrams:   make(Table),
		Trigrams:  make(Table),
		Words:     make(Table),
	}
}

// Table returns the table for the given class.
func (c Counts) Table(class Class) Table {
	switch class {
	case Monogram:
		return c.Monograms
	case Bigram:
		return c.Bigrams
	case Trigram:
		return c.Trigrams
	case Word:
		return c.Words
	}
	return nil
}

// Merge returns the count-wise sum of c and other. Neither input is modified,
// and Merge(a, b) equals Merge(b, a).
func (c Counts) Merge(other Counts) Counts {
	out := NewCounts()
	out.addAll(c)
	out.addAll(other)
	return out
}

// addAll sums every table of other into c.
func (c Counts) addAll(other Counts) {
	for _, class := range Classes() {
		c.Table(class).add(other.Table(class))
	}
}
