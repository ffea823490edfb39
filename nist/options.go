//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package nist

import "go.opentelemetry.io/otel/metric"

// DefaultMaxOrder is the highest n-gram order used when none is configured.
const DefaultMaxOrder = 5

// options holds the configuration of one scoring call.
type options struct {
	// maxOrder is the highest n-gram order scored.
	maxOrder int
	// parallelism is the number of workers evaluating (order, item) cells.
	parallelism int
	// meterProvider receives scoring metrics when set.
	meterProvider metric.MeterProvider
}

// newOptions applies functional options on top of the defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		maxOrder:    DefaultMaxOrder,
		parallelism: 1,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures NIST scoring.
type Option func(*options)

// WithMaxOrder sets the highest n-gram order. Values below one are rejected
// when scoring starts.
func WithMaxOrder(n int) Option {
	return func(o *options) {
		o.maxOrder = n
	}
}

// WithParallelism evaluates (order, item) cells on a worker pool of size n.
// Partial sums are merged in ascending order then item index, so the score
// does not depend on n. Values below two keep the sequential path.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithMeterProvider records every scoring run on mp.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}
