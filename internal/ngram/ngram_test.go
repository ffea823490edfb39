//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package ngram

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(tokens []string, n int) []string {
	var out []string
	for g := range Of(tokens, n) {
		out = append(out, strings.Join(g, " "))
	}
	return out
}

// TestOf_SlidingWindow verifies windows are contiguous, unpadded and in order.
func TestOf_SlidingWindow(t *testing.T) {
	tokens := strings.Fields("a b c d")
	assert.Equal(t, []string{"a", "b", "c", "d"}, collect(tokens, 1))
	assert.Equal(t, []string{"a b", "b c", "c d"}, collect(tokens, 2))
	assert.Equal(t, []string{"a b c d"}, collect(tokens, 4))
	assert.Empty(t, collect(tokens, 5))
	assert.Empty(t, collect(tokens, 0))
	assert.Empty(t, collect(nil, 1))
}

// TestOf_Restartable verifies the same sequence can be ranged over twice.
func TestOf_Restartable(t *testing.T) {
	seq := Of(strings.Fields("x y z"), 2)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

// TestOf_EarlyStop verifies breaking out of a range stops the generator.
func TestOf_EarlyStop(t *testing.T) {
	n := 0
	for range Of(strings.Fields("a b c d e"), 1) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

// TestNGram_KeyAndPrefix verifies structural identity and prefix extraction.
func TestNGram_KeyAndPrefix(t *testing.T) {
	a := NGram{"the", "party"}
	b := NGram(strings.Fields("the party"))
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, NGram{"the party"}.Key(), a.Key())
	assert.Equal(t, NGram{"the"}, a.Prefix())
	assert.Equal(t, 2, a.Order())
	assert.Empty(t, NGram{"x"}.Prefix())
	assert.Nil(t, NGram(nil).Prefix())
}

// TestCount verifies the closed-form window count.
func TestCount(t *testing.T) {
	assert.Equal(t, 16, Count(16, 1))
	assert.Equal(t, 12, Count(16, 5))
	assert.Equal(t, 0, Count(3, 4))
	assert.Equal(t, 0, Count(3, 0))
}

// TestCounter_InsertionOrder verifies counts and first-seen key order.
func TestCounter_InsertionOrder(t *testing.T) {
	c := NewCounter(strings.Fields("the cat the dog the"), 1)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 5, c.Total())
	assert.Equal(t, 3, c.Count(NGram{"the"}.Key()))
	assert.Equal(t, 0, c.Count(NGram{"bird"}.Key()))
	assert.Equal(t, []Key{"the", "cat", "dog"}, c.Keys())

	g, ok := c.NGram("dog")
	require.True(t, ok)
	assert.Equal(t, NGram{"dog"}, g)
	assert.True(t, c.Contains("cat"))
	assert.False(t, c.Contains("bird"))
}

// TestCounter_ZeroValueAndNil verifies the zero value is usable and nil is empty.
func TestCounter_ZeroValueAndNil(t *testing.T) {
	var c Counter
	c.Add(NGram{"a"})
	c.AddN(NGram{"a"}, 2)
	c.AddN(NGram{"b"}, 0)
	assert.Equal(t, 3, c.Count("a"))
	assert.Equal(t, 1, c.Len())

	var nilCounter *Counter
	assert.Equal(t, 0, nilCounter.Len())
	assert.Equal(t, 0, nilCounter.Total())
	assert.Nil(t, nilCounter.Keys())
}

// TestCounter_StoresCopies verifies stored n-grams do not alias the input.
func TestCounter_StoresCopies(t *testing.T) {
	tokens := strings.Fields("a b")
	c := NewCounter(tokens, 2)
	tokens[0] = "z"
	g, ok := c.NGram(NGram{"a", "b"}.Key())
	require.True(t, ok)
	assert.Equal(t, NGram{"a", "b"}, g)
}

// TestIntersect_ClipsCounts verifies min-count clipping and first-operand order.
func TestIntersect_ClipsCounts(t *testing.T) {
	hyp := NewCounter(strings.Fields("the the the cat sat"), 1)
	ref := NewCounter(strings.Fields("sat the cat the mat"), 1)
	overlap := Intersect(hyp, ref)
	assert.Equal(t, []Key{"the", "cat", "sat"}, overlap.Keys())
	assert.Equal(t, 2, overlap.Count("the"))
	assert.Equal(t, 1, overlap.Count("cat"))
	assert.Equal(t, 4, overlap.Total())
}

// TestIntersect_Empty verifies overlaps with empty multisets are empty.
func TestIntersect_Empty(t *testing.T) {
	hyp := NewCounter(strings.Fields("a b"), 3)
	ref := NewCounter(strings.Fields("a b c"), 3)
	assert.Equal(t, 0, Intersect(hyp, ref).Len())
	assert.Equal(t, 0, Intersect(ref, hyp).Total())
}
