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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"trpc.group/trpc-go/trpc-mteval-go/telemetry/metric"
)

var (
	hypothesis1 = strings.Fields("It is a guide to action which ensures that the military always obeys the commands of the party")
	hypothesis2 = strings.Fields("It is to insure the troops forever hearing the activity guidebook that party direct")
	reference1  = strings.Fields("It is a guide to action that ensures that the military will forever heed Party commands")
	reference2  = strings.Fields("It is the guiding principle which guarantees the military forces always being under the command of the Party")
	reference3  = strings.Fields("It is the practical guide for the army always to heed the directions of the party")
	references  = [][]string{reference1, reference2, reference3}
)

// TestSentenceScore_ReferenceExamples verifies the two canonical hypotheses
// against the three-reference set.
func TestSentenceScore_ReferenceExamples(t *testing.T) {
	require.Len(t, hypothesis1, 18)
	require.Len(t, hypothesis2, 14)

	score, err := SentenceScore(context.Background(), references, hypothesis1)
	require.NoError(t, err)
	assert.InDelta(t, 3.3709935957649324, score, 1e-9)

	score, err = SentenceScore(context.Background(), references, hypothesis2)
	require.NoError(t, err)
	assert.InDelta(t, 1.4619035460750132, score, 1e-9)
}

// TestEvaluate_Breakdown verifies per-order sums and both length totals.
func TestEvaluate_Breakdown(t *testing.T) {
	res, err := Evaluate(context.Background(), [][][]string{references}, [][]string{hypothesis2})
	require.NoError(t, err)

	assert.Equal(t, 5, res.MaxOrder)
	assert.Equal(t, 1, res.Items)
	assert.Equal(t, 88, res.RefLength)
	assert.Equal(t, 70, res.HypLength)
	assert.Equal(t, 16, res.CorpusRefLength)
	assert.Equal(t, 14, res.CorpusHypLength)
	assert.InDelta(t, 1.823091938268837, res.Precision, 1e-9)
	assert.InDelta(t, 0.8018814166131416, res.Penalty, 1e-12)
	assert.InDelta(t, res.Precision*res.Penalty, res.Score, 1e-15)

	require.Len(t, res.Orders, 5)
	assert.InDelta(t, 25.52328713576372, res.Orders[0].Numerator, 1e-9)
	assert.Equal(t, 14, res.Orders[0].Denominator)
	for i, s := range res.Orders {
		assert.Equal(t, i+1, s.Order)
		assert.Equal(t, 14-i, s.Denominator)
		assert.False(t, s.Degenerate)
	}
	assert.Zero(t, res.Orders[1].Numerator)
}

// TestEvaluate_LengthTotalsAccumulatePerOrder verifies the penalty uses
// lengths summed once per (order, item) pair.
func TestEvaluate_LengthTotalsAccumulatePerOrder(t *testing.T) {
	res, err := Evaluate(context.Background(), [][][]string{references}, [][]string{hypothesis1})
	require.NoError(t, err)
	assert.Equal(t, 84, res.RefLength)
	assert.Equal(t, 90, res.HypLength)
	assert.Equal(t, 16, res.CorpusRefLength)
	assert.Equal(t, 18, res.CorpusHypLength)
	assert.Equal(t, 1.0, res.Penalty)
}

// TestCorpusScore_MultipleItems verifies corpus scores are not averages of
// sentence scores.
func TestCorpusScore_MultipleItems(t *testing.T) {
	refs := [][][]string{references, references}
	hyps := [][]string{hypothesis1, hypothesis2}

	score, err := CorpusScore(context.Background(), refs, hyps)
	require.NoError(t, err)
	assert.InDelta(t, 2.6375187380292515, score, 1e-9)

	score, err = CorpusScore(context.Background(), refs, hyps, WithMaxOrder(3))
	require.NoError(t, err)
	assert.InDelta(t, 2.677448753466498, score, 1e-9)
}

// TestSentenceScore_SmallCases verifies hand-checkable corpora.
func TestSentenceScore_SmallCases(t *testing.T) {
	cases := []struct {
		name     string
		refs     []string
		hyp      string
		maxOrder int
		want     float64
	}{
		{"unigram only", []string{strings.Join(reference1, " ")}, strings.Join(hypothesis1, " "), 1, 2.388888888888889},
		{"identical", []string{strings.Join(reference1, " ")}, strings.Join(reference1, " "), 5, 4.008333333333334},
		{"short hypothesis", []string{"a b c d"}, "a b", 2, 0.2638099976421876},
		{"long hypothesis", []string{"a b c"}, "a b c d e f", 2, 0.7924812503605781},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			refs := make([][]string, 0, len(tc.refs))
			for _, r := range tc.refs {
				refs = append(refs, strings.Fields(r))
			}
			score, err := SentenceScore(context.Background(), refs, strings.Fields(tc.hyp), WithMaxOrder(tc.maxOrder))
			require.NoError(t, err)
			assert.InDelta(t, tc.want, score, 1e-12)
		})
	}
}

// TestEvaluate_DegenerateOrderContributesZero verifies an order without
// hypothesis n-grams adds nothing and is flagged.
func TestEvaluate_DegenerateOrderContributesZero(t *testing.T) {
	res, err := Evaluate(
		context.Background(),
		[][][]string{{strings.Fields("the cat sat")}},
		[][]string{{"cat"}},
		WithMaxOrder(2),
	)
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	assert.True(t, res.Orders[1].Degenerate)
	assert.Zero(t, res.Orders[1].Precision)
	assert.InDelta(t, 1.5849625007211563, res.Precision, 1e-12)
	assert.Equal(t, 6, res.RefLength)
	assert.Equal(t, 2, res.HypLength)
	assert.InDelta(t, 0.00977286494181979, res.Score, 1e-12)
}

// TestEvaluate_EmptyHypothesis verifies a zero-token hypothesis scores zero.
func TestEvaluate_EmptyHypothesis(t *testing.T) {
	res, err := Evaluate(
		context.Background(),
		[][][]string{{strings.Fields("the cat sat on the mat")}},
		[][]string{{}},
		WithMaxOrder(3),
	)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 0.0, res.Penalty)
	assert.Equal(t, 18, res.RefLength)
	for _, s := range res.Orders {
		assert.True(t, s.Degenerate)
	}
}

// TestEvaluate_TieBreakByReferenceLength verifies equal precision, numerator
// and denominator resolve to the longer reference whatever the input order.
func TestEvaluate_TieBreakByReferenceLength(t *testing.T) {
	short := strings.Fields("a b")
	long := strings.Fields("a b c")
	for _, refs := range [][][]string{{short, long}, {long, short}} {
		res, err := Evaluate(context.Background(), [][][]string{refs}, [][]string{short}, WithMaxOrder(1))
		require.NoError(t, err)
		assert.Equal(t, 3, res.RefLength)
		assert.Equal(t, 2, res.HypLength)
		assert.InDelta(t, 0.6609640474436811, res.Score, 1e-12)
	}
}

// TestEvaluate_ReferenceOrderIndependent verifies strict maxima do not depend
// on reference order.
func TestEvaluate_ReferenceOrderIndependent(t *testing.T) {
	hyp := strings.Fields("the cat")
	a := strings.Fields("x y z")
	b := strings.Fields("the cat sat")
	first, err := Evaluate(context.Background(), [][][]string{{a, b}}, [][]string{hyp}, WithMaxOrder(2))
	require.NoError(t, err)
	second, err := Evaluate(context.Background(), [][][]string{{b, a}}, [][]string{hyp}, WithMaxOrder(2))
	require.NoError(t, err)
	assert.Equal(t, first.Score, second.Score)
	assert.InDelta(t, 1.2924812503605778, first.Score, 1e-12)
}

// TestEvaluate_ParallelMatchesSequential verifies worker pools do not change
// a single bit of the result.
func TestEvaluate_ParallelMatchesSequential(t *testing.T) {
	refs := [][][]string{references, references, {reference2}, {reference3, reference1}}
	hyps := [][]string{hypothesis1, hypothesis2, hypothesis1, hypothesis2}

	seq, err := Evaluate(context.Background(), refs, hyps)
	require.NoError(t, err)
	for _, workers := range []int{2, 3, 8} {
		par, err := Evaluate(context.Background(), refs, hyps, WithParallelism(workers))
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

// TestEvaluate_Errors verifies fatal input errors are reported before scoring.
func TestEvaluate_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Evaluate(ctx, [][][]string{references}, [][]string{hypothesis1, hypothesis2})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Evaluate(ctx, [][][]string{references}, [][]string{hypothesis1}, WithMaxOrder(0))
	assert.ErrorIs(t, err, ErrInvalidMaxOrder)

	_, err = Evaluate(ctx, [][][]string{references, {}}, [][]string{hypothesis1, hypothesis2})
	assert.ErrorIs(t, err, ErrEmptyReferenceSet)
	assert.Contains(t, err.Error(), "item 1")

	_, err = Evaluate(ctx, [][][]string{{{}}}, [][]string{{"a"}})
	assert.ErrorIs(t, err, ErrZeroReferenceLength)

	_, err = Evaluate(ctx, nil, nil)
	assert.ErrorIs(t, err, ErrZeroReferenceLength)

	score, err := CorpusScore(ctx, nil, [][]string{hypothesis1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Zero(t, score)
}

// TestEvaluate_Context verifies nil and cancelled contexts are rejected.
func TestEvaluate_Context(t *testing.T) {
	_, err := Evaluate(nil, [][][]string{references}, [][]string{hypothesis1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context is nil")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, [][][]string{references}, [][]string{hypothesis1})
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = Evaluate(ctx, [][][]string{references}, [][]string{hypothesis1}, WithParallelism(4))
	assert.True(t, errors.Is(err, context.Canceled))
}

// TestEvaluate_RecordsMetrics verifies runs are reported to the meter provider.
func TestEvaluate_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	_, err := Evaluate(context.Background(), [][][]string{references}, [][]string{hypothesis1}, WithMeterProvider(mp))
	require.NoError(t, err)
	_, err = Evaluate(context.Background(), nil, [][]string{hypothesis1}, WithMeterProvider(mp))
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	var requests int64
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != metric.MetricScoreRequests {
			continue
		}
		for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
			requests += dp.Value
		}
	}
	assert.Equal(t, int64(2), requests)
}
