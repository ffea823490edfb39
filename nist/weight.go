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

	"trpc.group/trpc-go/trpc-mteval-go/internal/ngram"
)

// WeightTable maps every n-gram of a FrequencyTable to its information weight
// log2(count(prefix) / count(ngram)). Unigrams, and any n-gram whose prefix is
// missing from the table, use the total reference word count in place of the
// prefix count.
type WeightTable struct {
	weights map[ngram.Key]float64
}

// BuildWeightTable derives the information weight of every n-gram in freq.
func BuildWeightTable(freq *FrequencyTable) *WeightTable {
	w := &WeightTable{weights: make(map[ngram.Key]float64, freq.Len())}
	total := float64(freq.totalWords)
	for _, k := range freq.counts.Keys() {
		g, _ := freq.counts.NGram(k)
		count := float64(freq.counts.Count(k))
		base := total
		if g.Order() > 1 {
			if prefix := g.Prefix().Key(); freq.counts.Contains(prefix) {
				base = float64(freq.counts.Count(prefix))
			}
		}
		w.weights[k] = math.Log2(base / count)
	}
	return w
}

// Weight returns the information weight of the n-gram with key k.
// N-grams absent from the reference corpus weigh zero.
func (w *WeightTable) Weight(k ngram.Key) float64 {
	return w.weights[k]
}

// Lookup returns the weight of g and whether g is in the table.
func (w *WeightTable) Lookup(g ngram.NGram) (float64, bool) {
	v, ok := w.weights[g.Key()]
	return v, ok
}

// Len returns the number of weighted n-grams.
func (w *WeightTable) Len() int {
	return len(w.weights)
}
