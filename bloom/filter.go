// Package bloom provides probabilistic identity-key deduplication for a
// single extraction run. The model can emit the same article more than once
// in one response; testing a run-scoped Bloom filter is cheaper than a
// store lookup per repeat.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenFilter wraps a Bloom filter over article identity keys.
type SeenFilter struct {
	f *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected keys with the given
// false positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records an identity key.
func (f *SeenFilter) Add(key string) {
	f.f.AddString(key)
}

// Seen returns true if the key might have been added before.
// False positives are possible; false negatives are not.
func (f *SeenFilter) Seen(key string) bool {
	return f.f.TestString(key)
}
