//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package local stores reports as JSON files in a directory.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"trpc.group/trpc-go/trpc-mteval-go/report"
)

const fileSuffix = ".nist_report.json"

var _ report.Manager = (*manager)(nil)

// manager implements report.Manager using one file per report.
type manager struct {
	baseDir string
	mu      sync.Mutex
}

// NewManager creates a local file report manager. Use report.WithBaseDir to
// override the default directory.
func NewManager(opt ...report.Option) report.Manager {
	opts := report.NewOptions(opt...)
	return &manager{baseDir: opts.BaseDir}
}

// Save writes r to <base>/<id>.nist_report.json through a temporary file.
func (m *manager) Save(ctx context.Context, r *report.Report) (string, error) {
	if err := report.Prepare(r); err != nil {
		return "", err
	}
	if err := checkID(r.ID); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return "", err
	}
	path := m.reportPath(r.ID)
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("encode report %s: %w", r.ID, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return r.ID, nil
}

// Get reads the report stored under id.
func (m *manager) Get(ctx context.Context, id string) (*report.Report, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(id)
}

// List reads every report file in the base directory, ordered by file name.
func (m *manager) List(ctx context.Context) ([]*report.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*report.Report{}, nil
		}
		return nil, err
	}
	reports := []*report.Report{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		r, err := m.load(strings.TrimSuffix(name, fileSuffix))
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Close is a no-op.
func (m *manager) Close() error {
	return nil
}

func (m *manager) reportPath(id string) string {
	return filepath.Join(m.baseDir, id+fileSuffix)
}

func (m *manager) load(id string) (*report.Report, error) {
	f, err := os.Open(m.reportPath(id))
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", id, err)
	}
	defer f.Close()
	var r report.Report
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &r, nil
}

// checkID rejects IDs that would escape the base directory.
func checkID(id string) error {
	if id == "" {
		return errors.New("report id is empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid report id %q", id)
	}
	return nil
}
