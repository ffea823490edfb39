//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package mysql stores reports in a MySQL table.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"trpc.group/trpc-go/trpc-mteval-go/report"
)

const sqlCreateReportsTable = `CREATE TABLE IF NOT EXISTS %s (
  id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  report_id VARCHAR(128) NOT NULL,
  name VARCHAR(255) NOT NULL DEFAULT '',
  max_order INT NOT NULL,
  items INT NOT NULL,
  score DOUBLE NOT NULL,
  payload JSON NOT NULL,
  created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
  updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
  PRIMARY KEY (id),
  UNIQUE KEY uniq_nist_reports_report_id (report_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

var _ report.Manager = (*manager)(nil)

type manager struct {
	db    Client
	table string
}

// New creates a MySQL-backed report manager and creates its table unless
// WithSkipDBInit is set.
func New(opt ...Option) (report.Manager, error) {
	opts := newOptions(opt...)
	db, err := GetClientBuilder()(opts.dsn)
	if err != nil {
		return nil, fmt.Errorf("create mysql client failed: %w", err)
	}
	m := &manager{
		db:    db,
		table: opts.tablePrefix + TableNameReports,
	}
	if !opts.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), opts.initTimeout)
		defer cancel()
		if _, err := db.ExecContext(ctx, fmt.Sprintf(sqlCreateReportsTable, m.table)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init database failed: %w", err)
		}
	}
	return m, nil
}

// Close implements report.Manager.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Save upserts a report keyed by its ID.
func (m *manager) Save(ctx context.Context, r *report.Report) (string, error) {
	if err := report.Prepare(r); err != nil {
		return "", err
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal report %s: %w", r.ID, err)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (report_id, name, max_order, items, score, payload)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   name = VALUES(name),
		   max_order = VALUES(max_order),
		   items = VALUES(items),
		   score = VALUES(score),
		   payload = VALUES(payload),
		   updated_at = CURRENT_TIMESTAMP(6)`,
		m.table,
	)
	if _, err := m.db.ExecContext(ctx, query, r.ID, r.Name, r.MaxOrder, r.Items, r.Score, payload); err != nil {
		return "", fmt.Errorf("store report %s: %w", r.ID, err)
	}
	return r.ID, nil
}

// Get loads a report by ID.
func (m *manager) Get(ctx context.Context, id string) (*report.Report, error) {
	if id == "" {
		return nil, errors.New("report id is empty")
	}
	query := fmt.Sprintf("SELECT payload FROM %s WHERE report_id = ?", m.table)
	var payload []byte
	if err := m.db.QueryRowContext(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("report %s not found: %w", id, os.ErrNotExist)
		}
		return nil, fmt.Errorf("load report %s: %w", id, err)
	}
	return decode(id, payload)
}

// List returns all reports, newest first.
func (m *manager) List(ctx context.Context) ([]*report.Report, error) {
	query := fmt.Sprintf("SELECT report_id, payload FROM %s ORDER BY created_at DESC, id DESC", m.table)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	reports := []*report.Report{}
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		r, err := decode(id, payload)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func decode(id string, payload []byte) (*report.Report, error) {
	var r report.Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", id, err)
	}
	return &r, nil
}
