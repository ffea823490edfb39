//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package nist defines a NIST scoring criterion over raw text.
package nist

import (
	"context"
	"errors"
	"fmt"

	inist "trpc.group/trpc-go/trpc-mteval-go/nist"
	"trpc.group/trpc-go/trpc-mteval-go/tokenizer"
)

// Tokenizer tokenizes text into a list of tokens.
type Tokenizer = tokenizer.Tokenizer

// NISTCriterion configures NIST scoring of a prediction against one or more
// target texts.
type NISTCriterion struct {
	// Ignore skips NIST scoring when true.
	Ignore bool `json:"ignore,omitempty"`
	// MaxOrder is the highest n-gram order and defaults to 5 when unset.
	MaxOrder int `json:"maxOrder,omitempty"`
	// Threshold is the minimum score required to pass.
	Threshold float64 `json:"threshold,omitempty"`
	// Lowercase folds case in the built-in tokenizer and is ignored when a custom tokenizer is used.
	Lowercase bool `json:"lowercase,omitempty"`
	// Tokenizer overrides the built-in mteval tokenizer when provided.
	Tokenizer Tokenizer `json:"-"`
}

// MatchResult holds NIST scoring output for a single comparison.
type MatchResult struct {
	// MaxOrder is the highest n-gram order used.
	MaxOrder int
	// Score is the NIST score.
	Score float64
	// Precision is the summed per-order information-weighted precision.
	Precision float64
	// Penalty is the length penalty applied to Precision.
	Penalty float64
	// Threshold is the configured pass threshold.
	Threshold float64
	// Passed reports whether Score meets Threshold.
	Passed bool
}

// Reason formats the scoring output for display.
func (r MatchResult) Reason() string {
	return fmt.Sprintf("nist%d score=%.6f precision=%.6f penalty=%.6f threshold=%.6f",
		r.MaxOrder, r.Score, r.Precision, r.Penalty, r.Threshold)
}

// Match scores prediction against a single target.
func (c *NISTCriterion) Match(ctx context.Context, target, prediction string) (*MatchResult, error) {
	return c.MatchMulti(ctx, []string{target}, prediction)
}

// MatchMulti scores prediction against several alternative targets.
func (c *NISTCriterion) MatchMulti(ctx context.Context, targets []string, prediction string) (*MatchResult, error) {
	if c == nil {
		return nil, errors.New("nist criterion is nil")
	}
	maxOrder := c.MaxOrder
	if maxOrder == 0 {
		maxOrder = inist.DefaultMaxOrder
	}
	if c.Ignore {
		return &MatchResult{MaxOrder: maxOrder, Threshold: c.Threshold, Passed: true}, nil
	}
	if len(targets) == 0 {
		return nil, errors.New("targets are empty")
	}
	tok := c.Tokenizer
	if tok == nil {
		tok = tokenizer.NewMTEval(tokenizer.WithLowercase(c.Lowercase))
	}
	refs := make([][]string, 0, len(targets))
	for _, target := range targets {
		refs = append(refs, tok.Tokenize(target))
	}
	res, err := inist.Evaluate(ctx, [][][]string{refs}, [][]string{tok.Tokenize(prediction)},
		inist.WithMaxOrder(maxOrder))
	if err != nil {
		return nil, fmt.Errorf("nist criterion: %w", err)
	}
	return &MatchResult{
		MaxOrder:  maxOrder,
		Score:     res.Score,
		Precision: res.Precision,
		Penalty:   res.Penalty,
		Threshold: c.Threshold,
		Passed:    res.Score >= c.Threshold,
	}, nil
}
