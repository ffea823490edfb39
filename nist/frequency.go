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

// FrequencyTable counts every n-gram of order 1..MaxOrder across all reference
// sentences of a corpus. References are not deduplicated: an n-gram occurring
// in two references of the same item is counted twice.
// A FrequencyTable is read-only once built.
type FrequencyTable struct {
	counts     ngram.Counter
	maxOrder   int
	totalWords int
}

// BuildFrequencyTable counts the n-grams of orders 1..maxOrder over every
// reference of every reference set. An empty corpus yields an empty table.
func BuildFrequencyTable(references [][][]string, maxOrder int) *FrequencyTable {
	t := &FrequencyTable{maxOrder: maxOrder}
	for _, refs := range references {
		for _, ref := range refs {
			t.totalWords += len(ref)
			for i := 1; i <= maxOrder; i++ {
				for g := range ngram.Of(ref, i) {
					t.counts.Add(g)
				}
			}
		}
	}
	return t
}

// Count returns the corpus count of g, zero when absent.
func (t *FrequencyTable) Count(g ngram.NGram) int {
	return t.counts.Count(g.Key())
}

// Contains reports whether g occurs in any reference.
func (t *FrequencyTable) Contains(g ngram.NGram) bool {
	return t.counts.Contains(g.Key())
}

// Len returns the number of distinct n-grams across all orders.
func (t *FrequencyTable) Len() int {
	return t.counts.Len()
}

// Total returns the number of n-gram occurrences across all orders.
func (t *FrequencyTable) Total() int {
	return t.counts.Total()
}

// TotalWords returns the summed length of every reference sentence.
func (t *FrequencyTable) TotalWords() int {
	return t.totalWords
}

// MaxOrder returns the highest order counted.
func (t *FrequencyTable) MaxOrder() int {
	return t.maxOrder
}
