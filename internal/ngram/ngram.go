//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package ngram generates n-grams from token sequences and counts them in
// insertion-ordered multisets.
package ngram

import (
	"iter"
	"strings"
)

// separator joins tokens into a Key. Tokens are assumed not to contain it.
const separator = "\x00"

// NGram is an ordered, fixed-length run of tokens.
type NGram []string

// Key identifies an n-gram structurally: equal token sequences share a key.
type Key string

// Key returns the structural key of g.
func (g NGram) Key() Key {
	return Key(strings.Join(g, separator))
}

// Order returns the number of tokens in g.
func (g NGram) Order() int {
	return len(g)
}

// Prefix returns the first len(g)-1 tokens. The prefix of a unigram is empty.
func (g NGram) Prefix() NGram {
	if len(g) == 0 {
		return nil
	}
	return g[:len(g)-1]
}

// Of returns the order-n n-grams of tokens using a sliding window without
// padding or wraparound. The sequence is empty when n <= 0 or n > len(tokens)
// and restarts from the first window every time it is ranged over.
// Yielded n-grams alias tokens and must not be modified.
func Of(tokens []string, n int) iter.Seq[NGram] {
	return func(yield func(NGram) bool) {
		if n <= 0 || n > len(tokens) {
			return
		}
		for i := 0; i+n <= len(tokens); i++ {
			if !yield(NGram(tokens[i : i+n : i+n])) {
				return
			}
		}
	}
}

// Count returns the number of order-n windows over a sequence of length
// length, i.e. max(0, length-n+1) for n >= 1.
func Count(length, n int) int {
	if n <= 0 || n > length {
		return 0
	}
	return length - n + 1
}
