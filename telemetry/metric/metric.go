//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package metric records scoring runs with OpenTelemetry instruments.
package metric

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	// MeterName is the instrumentation scope of every scoring instrument.
	MeterName = "trpc.mteval.nist"

	// MetricScoreRequests counts scoring runs.
	MetricScoreRequests = "nist.score.requests"
	// MetricScoreDuration records the wall time of a scoring run in seconds.
	MetricScoreDuration = "nist.score.duration"
	// MetricScoreItems counts corpus items scored.
	MetricScoreItems = "nist.score.items"

	// KeyStatus is the outcome attribute, either StatusOK or StatusError.
	KeyStatus = "status"
	// KeyMaxOrder is the highest n-gram order attribute.
	KeyMaxOrder = "nist.max_order"

	// StatusOK marks a run that produced a score.
	StatusOK = "ok"
	// StatusError marks a run that failed.
	StatusError = "error"
)

// Run describes one finished scoring run.
type Run struct {
	MaxOrder int
	Items    int
	Duration time.Duration
	Err      error
}

// Recorder holds the scoring instruments created from one MeterProvider.
type Recorder struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	items    metric.Int64Counter
}

// NewRecorder creates the scoring instruments on mp.
// A nil provider yields a recorder backed by the no-op provider.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	meter := mp.Meter(MeterName)
	r := &Recorder{}
	var err error
	if r.requests, err = meter.Int64Counter(
		MetricScoreRequests,
		metric.WithDescription("Total number of NIST scoring runs"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create metric %s: %w", MetricScoreRequests, err)
	}
	if r.duration, err = meter.Float64Histogram(
		MetricScoreDuration,
		metric.WithDescription("Duration of NIST scoring runs"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create metric %s: %w", MetricScoreDuration, err)
	}
	if r.items, err = meter.Int64Counter(
		MetricScoreItems,
		metric.WithDescription("Total number of corpus items scored"),
		metric.WithUnit("{item}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create metric %s: %w", MetricScoreItems, err)
	}
	return r, nil
}

// Record reports a finished run. Items are only counted for successful runs.
func (r *Recorder) Record(ctx context.Context, run Run) {
	if r == nil {
		return
	}
	status := StatusOK
	if run.Err != nil {
		status = StatusError
	}
	attrs := metric.WithAttributes(
		attribute.String(KeyStatus, status),
		attribute.String(KeyMaxOrder, strconv.Itoa(run.MaxOrder)),
	)
	r.requests.Add(ctx, 1, attrs)
	r.duration.Record(ctx, run.Duration.Seconds(), attrs)
	if run.Err == nil && run.Items > 0 {
		r.items.Add(ctx, int64(run.Items), attrs)
	}
}
