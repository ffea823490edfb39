//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package report persists NIST scoring runs.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-mteval-go/nist"
)

// Report is the stored outcome of one corpus scoring run.
type Report struct {
	// ID uniquely identifies the report.
	ID string `json:"id"`
	// Name labels the run, usually the corpus name.
	Name string `json:"name,omitempty"`
	// CreatedAt is when the report was built.
	CreatedAt time.Time `json:"createdAt"`
	// MaxOrder is the highest n-gram order scored.
	MaxOrder int `json:"maxOrder"`
	// Items is the number of scored segments.
	Items int `json:"items"`
	// Score is the corpus NIST score.
	Score float64 `json:"score"`
	// Precision is the summed per-order precision before the penalty.
	Precision float64 `json:"precision"`
	// Penalty is the length penalty.
	Penalty float64 `json:"penalty"`
	// RefLength is the reference length fed to the penalty.
	RefLength int `json:"refLength"`
	// HypLength is the hypothesis length fed to the penalty.
	HypLength int `json:"hypLength"`
	// Orders is the per-order breakdown.
	Orders []nist.OrderStat `json:"orders,omitempty"`
}

// Manager stores and retrieves reports.
type Manager interface {
	// Save stores a report and returns its ID. An empty ID is generated.
	Save(ctx context.Context, r *Report) (string, error)
	// Get loads a report by ID. Missing reports yield an error wrapping os.ErrNotExist.
	Get(ctx context.Context, id string) (*Report, error)
	// List returns every stored report.
	List(ctx context.Context) ([]*Report, error)
	// Close releases the underlying resources.
	Close() error
}

// FromResult builds a report from a scoring result.
func FromResult(name string, res *nist.Result) *Report {
	if res == nil {
		return nil
	}
	return &Report{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		MaxOrder:  res.MaxOrder,
		Items:     res.Items,
		Score:     res.Score,
		Precision: res.Precision,
		Penalty:   res.Penalty,
		RefLength: res.RefLength,
		HypLength: res.HypLength,
		Orders:    append([]nist.OrderStat(nil), res.Orders...),
	}
}

// Prepare checks r and fills in a generated ID and creation time when unset.
// Backends call it at the start of Save.
func Prepare(r *Report) error {
	if r == nil {
		return errors.New("report is nil")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}

// Clone returns a deep copy of r.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	c := *r
	c.Orders = append([]nist.OrderStat(nil), r.Orders...)
	return &c
}
