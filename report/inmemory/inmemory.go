//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory storage implementation for reports.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"trpc.group/trpc-go/trpc-mteval-go/report"
)

var _ report.Manager = (*Manager)(nil)

// Manager implements report.Manager with a map. Stored reports are copied on
// the way in and out.
type Manager struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
	order   []string
}

// NewManager creates an empty in-memory report manager.
func NewManager() *Manager {
	return &Manager{reports: make(map[string]*report.Report)}
}

// Save stores a copy of r.
func (m *Manager) Save(ctx context.Context, r *report.Report) (string, error) {
	if err := report.Prepare(r); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}
	m.reports[r.ID] = r.Clone()
	return r.ID, nil
}

// Get returns a copy of the report stored under id.
func (m *Manager) Get(ctx context.Context, id string) (*report.Report, error) {
	if id == "" {
		return nil, errors.New("report id is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, fmt.Errorf("report %s not found: %w", id, os.ErrNotExist)
	}
	return r.Clone(), nil
}

// List returns copies of all reports in first-save order.
func (m *Manager) List(ctx context.Context) ([]*report.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*report.Report, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.reports[id].Clone())
	}
	return out, nil
}

// Close is a no-op.
func (m *Manager) Close() error {
	return nil
}
