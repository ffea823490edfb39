//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package ngram

// Counter is a multiset of n-grams. Keys are reported in first-insertion
// order so that any summation driven by Keys is reproducible.
type Counter struct {
	counts map[Key]int
	grams  map[Key]NGram
	keys   []Key
	total  int
}

// NewCounter returns a Counter holding the order-n n-grams of tokens.
func NewCounter(tokens []string, n int) *Counter {
	c := &Counter{
		counts: make(map[Key]int, Count(len(tokens), n)),
		grams:  make(map[Key]NGram, Count(len(tokens), n)),
	}
	for g := range Of(tokens, n) {
		c.Add(g)
	}
	return c
}

// Add increments the count of g by one.
func (c *Counter) Add(g NGram) {
	c.AddN(g, 1)
}

// AddN increments the count of g by n. Non-positive n is ignored.
func (c *Counter) AddN(g NGram, n int) {
	if n <= 0 {
		return
	}
	if c.counts == nil {
		c.counts = make(map[Key]int)
		c.grams = make(map[Key]NGram)
	}
	k := g.Key()
	if _, ok := c.counts[k]; !ok {
		c.keys = append(c.keys, k)
		c.grams[k] = append(NGram(nil), g...)
	}
	c.counts[k] += n
	c.total += n
}

// Count returns the count stored for k, zero when absent.
func (c *Counter) Count(k Key) int {
	if c == nil {
		return 0
	}
	return c.counts[k]
}

// Contains reports whether k has been added.
func (c *Counter) Contains(k Key) bool {
	if c == nil {
		return false
	}
	_, ok := c.counts[k]
	return ok
}

// NGram returns the tokens stored for k.
func (c *Counter) NGram(k Key) (NGram, bool) {
	if c == nil {
		return nil, false
	}
	g, ok := c.grams[k]
	return g, ok
}

// Keys returns the distinct keys in first-insertion order.
// The returned slice must not be modified.
func (c *Counter) Keys() []Key {
	if c == nil {
		return nil
	}
	return c.keys
}

// Len returns the number of distinct n-grams.
func (c *Counter) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	if c == nil {
		return 0
	}
	return c.total
}

// Intersect returns the clipped overlap of a and b: every n-gram present in
// both with the smaller of its two counts. Keys keep a's insertion order.
func Intersect(a, b *Counter) *Counter {
	out := &Counter{
		counts: make(map[Key]int),
		grams:  make(map[Key]NGram),
	}
	if a.Len() == 0 || b.Len() == 0 {
		return out
	}
	for _, k := range a.keys {
		bc, ok := b.counts[k]
		if !ok {
			continue
		}
		out.AddN(a.grams[k], min(a.counts[k], bc))
	}
	return out
}
