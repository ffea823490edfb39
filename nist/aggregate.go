//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package nist

import "trpc.group/trpc-go/trpc-mteval-go/internal/ngram"

// candidate is the outcome of scoring one hypothesis against one reference at
// one order.
type candidate struct {
	precision   float64
	numerator   float64
	denominator int
	refLength   int
	hypLength   int
}

// better reports whether c outranks o. Fields are compared in this priority,
// larger winning at the first difference:
//
//  1. precision
//  2. numerator
//  3. denominator
//  4. reference length
//
// A candidate equal to o on all four fields does not outrank it, so the
// earlier reference is kept. The hypothesis length takes no part because it
// is the same for every reference of an item.
func (c candidate) better(o candidate) bool {
	if c.precision != o.precision {
		return c.precision > o.precision
	}
	if c.numerator != o.numerator {
		return c.numerator > o.numerator
	}
	if c.denominator != o.denominator {
		return c.denominator > o.denominator
	}
	return c.refLength > o.refLength
}

// scoreCell scores one hypothesis against every reference of its item at the
// given order and returns the best candidate. refs must not be empty.
func scoreCell(weights *WeightTable, refs [][]string, hyp []string, order int) candidate {
	hypCounts := ngram.NewCounter(hyp, order)
	denominator := hypCounts.Total()
	var best candidate
	for j, ref := range refs {
		overlap := ngram.Intersect(hypCounts, ngram.NewCounter(ref, order))
		var numerator float64
		for _, k := range overlap.Keys() {
			numerator += weights.Weight(k) * float64(overlap.Count(k))
		}
		var precision float64
		if denominator > 0 {
			precision = numerator / float64(denominator)
		}
		c := candidate{
			precision:   precision,
			numerator:   numerator,
			denominator: denominator,
			refLength:   len(ref),
			hypLength:   len(hyp),
		}
		if j == 0 || c.better(best) {
			best = c
		}
	}
	return best
}

// accumulator holds the corpus-level running sums of one scoring call.
type accumulator struct {
	numerators   []float64
	denominators []int
	// refLength and hypLength grow once per (order, item) pair, so after N
	// orders they hold N passes over the corpus. The penalty is computed from
	// these totals.
	refLength int
	hypLength int
	// corpusRefLength and corpusHypLength hold a single pass (order 1 only).
	corpusRefLength int
	corpusHypLength int
}

func newAccumulator(maxOrder int) *accumulator {
	return &accumulator{
		numerators:   make([]float64, maxOrder),
		denominators: make([]int, maxOrder),
	}
}

// add folds the selected candidate of (order, item) into the sums. Calls must
// arrive in ascending order then item index.
func (a *accumulator) add(order int, c candidate) {
	a.numerators[order-1] += c.numerator
	a.denominators[order-1] += c.denominator
	a.refLength += c.refLength
	a.hypLength += c.hypLength
	if order == 1 {
		a.corpusRefLength += c.refLength
		a.corpusHypLength += c.hypLength
	}
}

// orders returns the per-order breakdown and the summed precision. An order
// whose summed denominator is zero contributes zero and is marked degenerate.
func (a *accumulator) orders() ([]OrderStat, float64) {
	stats := make([]OrderStat, len(a.numerators))
	var sum float64
	for i := range a.numerators {
		s := OrderStat{
			Order:       i + 1,
			Numerator:   a.numerators[i],
			Denominator: a.denominators[i],
		}
		if s.Denominator == 0 {
			s.Degenerate = true
		} else {
			s.Precision = s.Numerator / float64(s.Denominator)
			sum += s.Precision
		}
		stats[i] = s
	}
	return stats, sum
}
