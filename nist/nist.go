//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package nist implements the NIST machine translation metric
// (Doddington 2002) at sentence and corpus level.
//
// The score sums, over n-gram orders 1..N, the information-weighted clipped
// n-gram precision of the hypotheses, and multiplies the sum by a length
// penalty. Information weights are derived from n-gram frequencies over the
// whole reference corpus, so a corpus score is not the mean of sentence
// scores. Results are bit-for-bit reproducible: every sum is accumulated in
// ascending order, then item index, then hypothesis n-gram first occurrence.
package nist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trpc.group/trpc-go/trpc-mteval-go/log"
	"trpc.group/trpc-go/trpc-mteval-go/telemetry/metric"
)

// OrderStat is the corpus-level breakdown of one n-gram order.
type OrderStat struct {
	// Order is the n-gram order.
	Order int `json:"order"`
	// Numerator is the summed information-weighted overlap of the selected references.
	Numerator float64 `json:"numerator"`
	// Denominator is the summed number of hypothesis n-grams of this order.
	Denominator int `json:"denominator"`
	// Precision is Numerator / Denominator, zero when Degenerate.
	Precision float64 `json:"precision"`
	// Degenerate reports a zero Denominator; the order then contributes zero.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Result is the outcome of a corpus scoring run.
type Result struct {
	// Score is Precision * Penalty.
	Score float64 `json:"score"`
	// Precision is the sum of the per-order precisions.
	Precision float64 `json:"precision"`
	// Penalty is the length penalty computed from RefLength and HypLength.
	Penalty float64 `json:"penalty"`
	// MaxOrder is the highest n-gram order scored.
	MaxOrder int `json:"maxOrder"`
	// Items is the number of corpus items.
	Items int `json:"items"`
	// RefLength is the selected reference length summed once per (order, item)
	// pair, i.e. MaxOrder passes over the corpus. It feeds the penalty.
	RefLength int `json:"refLength"`
	// HypLength is the hypothesis length summed once per (order, item) pair.
	HypLength int `json:"hypLength"`
	// CorpusRefLength is the order-1 selected reference length summed once per item.
	CorpusRefLength int `json:"corpusRefLength"`
	// CorpusHypLength is the hypothesis length summed once per item.
	CorpusHypLength int `json:"corpusHypLength"`
	// Orders holds the per-order breakdown in ascending order.
	Orders []OrderStat `json:"orders"`
}

// SentenceScore scores one hypothesis against its references. It is
// CorpusScore over a single-item corpus.
func SentenceScore(ctx context.Context, references [][]string, hypothesis []string, opt ...Option) (float64, error) {
	return CorpusScore(ctx, [][][]string{references}, [][]string{hypothesis}, opt...)
}

// CorpusScore returns the corpus-level NIST score of hypotheses against their
// reference sets. references[i] holds the references of hypotheses[i].
func CorpusScore(ctx context.Context, references [][][]string, hypotheses [][]string, opt ...Option) (float64, error) {
	res, err := Evaluate(ctx, references, hypotheses, opt...)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Evaluate scores the corpus and returns the full breakdown. Inputs are
// validated before any computation; no partial result is returned on error.
func Evaluate(ctx context.Context, references [][][]string, hypotheses [][]string, opt ...Option) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	opts := newOptions(opt...)
	start := time.Now()
	res, err := evaluate(ctx, references, hypotheses, opts)
	if opts.meterProvider != nil {
		recorder, rerr := metric.NewRecorder(opts.meterProvider)
		if rerr != nil {
			log.WarnfContext(ctx, "nist: create metric recorder: %v", rerr)
		} else {
			recorder.Record(ctx, metric.Run{
				MaxOrder: opts.maxOrder,
				Items:    len(hypotheses),
				Duration: time.Since(start),
				Err:      err,
			})
		}
	}
	return res, err
}

func evaluate(ctx context.Context, references [][][]string, hypotheses [][]string, opts *options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate(references, hypotheses, opts.maxOrder); err != nil {
		return nil, err
	}

	freq := BuildFrequencyTable(references, opts.maxOrder)
	weights := BuildWeightTable(freq)
	log.DebugfContext(ctx, "nist: %d items, %d distinct reference n-grams, %d reference words",
		len(hypotheses), freq.Len(), freq.TotalWords())

	acc := newAccumulator(opts.maxOrder)
	if opts.parallelism > 1 && len(hypotheses) > 0 {
		cells, err := scoreCellsParallel(ctx, opts.parallelism, weights, references, hypotheses, opts.maxOrder)
		if err != nil {
			return nil, err
		}
		for i, row := range cells {
			for _, c := range row {
				acc.add(i+1, c)
			}
		}
	} else {
		for i := 1; i <= opts.maxOrder; i++ {
			for j, hyp := range hypotheses {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				acc.add(i, scoreCell(weights, references[j], hyp, i))
			}
		}
	}

	stats, precision := acc.orders()
	penalty, err := LengthPenalty(acc.refLength, acc.hypLength)
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		log.Tracef("nist: order %d numerator=%g denominator=%d degenerate=%t",
			s.Order, s.Numerator, s.Denominator, s.Degenerate)
	}
	return &Result{
		Score:           precision * penalty,
		Precision:       precision,
		Penalty:         penalty,
		MaxOrder:        opts.maxOrder,
		Items:           len(hypotheses),
		RefLength:       acc.refLength,
		HypLength:       acc.hypLength,
		CorpusRefLength: acc.corpusRefLength,
		CorpusHypLength: acc.corpusHypLength,
		Orders:          stats,
	}, nil
}

func validate(references [][][]string, hypotheses [][]string, maxOrder int) error {
	if maxOrder < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxOrder, maxOrder)
	}
	if len(references) != len(hypotheses) {
		return fmt.Errorf("%w: %d reference sets, %d hypotheses",
			ErrLengthMismatch, len(references), len(hypotheses))
	}
	for i, refs := range references {
		if len(refs) == 0 {
			return fmt.Errorf("%w: item %d", ErrEmptyReferenceSet, i)
		}
	}
	return nil
}
