//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package nist

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-mteval-go/internal/ngram"
)

func TestBuildFrequencyTable_SingleReference(t *testing.T) {
	ref := strings.Fields("the cat sat on the mat")
	freq := BuildFrequencyTable([][][]string{{ref}}, 3)

	assert.Equal(t, 6, freq.TotalWords())
	assert.Equal(t, 3, freq.MaxOrder())
	assert.Equal(t, 2, freq.Count(ngram.NGram{"the"}))
	assert.Equal(t, 1, freq.Count(ngram.NGram{"the", "cat"}))
	assert.Equal(t, 0, freq.Count(ngram.NGram{"cat", "the"}))
	// Occurrences per order are max(0, L-i+1): 6 + 5 + 4.
	assert.Equal(t, 15, freq.Total())

	unigrams, bigrams := 0, 0
	for _, k := range freq.counts.Keys() {
		g, _ := freq.counts.NGram(k)
		switch g.Order() {
		case 1:
			unigrams += freq.counts.Count(k)
		case 2:
			bigrams += freq.counts.Count(k)
		}
	}
	assert.Equal(t, 6, unigrams)
	assert.Equal(t, 5, bigrams)
}

func TestBuildFrequencyTable_DoesNotDeduplicateReferences(t *testing.T) {
	ref := strings.Fields("a b")
	freq := BuildFrequencyTable([][][]string{{ref, ref}, {ref}}, 2)
	assert.Equal(t, 3, freq.Count(ngram.NGram{"a"}))
	assert.Equal(t, 3, freq.Count(ngram.NGram{"a", "b"}))
	assert.Equal(t, 6, freq.TotalWords())
}

func TestBuildFrequencyTable_Empty(t *testing.T) {
	freq := BuildFrequencyTable(nil, 5)
	assert.Equal(t, 0, freq.Len())
	assert.Equal(t, 0, freq.TotalWords())
	assert.Equal(t, 0, BuildWeightTable(freq).Len())
}

func TestBuildWeightTable(t *testing.T) {
	freq := BuildFrequencyTable([][][]string{{strings.Fields("the cat sat on the mat")}}, 2)
	w := BuildWeightTable(freq)
	assert.Equal(t, freq.Len(), w.Len())

	want := map[string]float64{
		"the":     1.5849625007211563,
		"cat":     2.584962500721156,
		"mat":     2.584962500721156,
		"the cat": 1.0,
		"cat sat": 0.0,
		"the mat": 1.0,
	}
	for text, weight := range want {
		got, ok := w.Lookup(ngram.NGram(strings.Fields(text)))
		require.True(t, ok, text)
		assert.InDelta(t, weight, got, 1e-12, text)
	}
	_, ok := w.Lookup(ngram.NGram{"dog"})
	assert.False(t, ok)
	assert.Zero(t, w.Weight(ngram.NGram{"dog"}.Key()))
}

func TestBuildWeightTable_MissingPrefixFallsBackToTotal(t *testing.T) {
	freq := &FrequencyTable{maxOrder: 2, totalWords: 8}
	freq.counts.AddN(ngram.NGram{"x", "y"}, 2)
	w := BuildWeightTable(freq)
	assert.InDelta(t, 2.0, w.Weight(ngram.NGram{"x", "y"}.Key()), 1e-12)
}

func TestLengthPenalty(t *testing.T) {
	p, err := LengthPenalty(10, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	p, err = LengthPenalty(10, 25)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	p, err = LengthPenalty(10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	p, err = LengthPenalty(3, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	p, err = LengthPenalty(10, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.1319049988210938, p, 1e-12)

	p, err = LengthPenalty(10, 9)
	require.NoError(t, err)
	assert.InDelta(t, 0.9542753127345837, p, 1e-12)

	_, err = LengthPenalty(0, 4)
	assert.ErrorIs(t, err, ErrZeroReferenceLength)
}

func TestLengthPenalty_Monotonic(t *testing.T) {
	prev := 0.0
	for h := 0; h <= 20; h++ {
		p, err := LengthPenalty(20, h)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, prev)
		assert.False(t, math.IsNaN(p))
		prev = p
	}
}

func TestCandidateBetter(t *testing.T) {
	base := candidate{precision: 0.5, numerator: 2, denominator: 4, refLength: 10}

	higher := base
	higher.precision = 0.6
	assert.True(t, higher.better(base))
	assert.False(t, base.better(higher))

	numer := base
	numer.numerator = 3
	assert.True(t, numer.better(base))

	denom := base
	denom.denominator = 5
	assert.True(t, denom.better(base))

	longer := base
	longer.refLength = 11
	assert.True(t, longer.better(base))

	// Precision outranks every later field.
	lowPrecision := candidate{precision: 0.4, numerator: 100, denominator: 100, refLength: 100}
	assert.False(t, lowPrecision.better(base))

	assert.False(t, base.better(base))
}

func TestScoreCell_KeepsFirstOnFullTie(t *testing.T) {
	freq := BuildFrequencyTable([][][]string{{{"a", "b"}, {"a", "b"}}}, 1)
	w := BuildWeightTable(freq)
	c := scoreCell(w, [][]string{{"a", "b"}, {"a", "b"}}, []string{"a"}, 1)
	assert.Equal(t, 1, c.denominator)
	assert.Equal(t, 2, c.refLength)
	assert.Equal(t, 1, c.hypLength)
	assert.InDelta(t, 1.0, c.numerator, 1e-12)
}

func TestCreateCellPool_InvalidSize(t *testing.T) {
	_, err := createCellPool(0)
	require.Error(t, err)
}
