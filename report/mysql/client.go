//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	driver "github.com/go-sql-driver/mysql"
)

// Client is the subset of *sql.DB used by the report manager.
type Client interface {
	// ExecContext executes a query without returning any rows.
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	// QueryContext executes a query that returns rows.
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// QueryRowContext executes a query that is expected to return at most one row.
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	// Close closes the database connection.
	Close() error
}

type clientBuilder func(dsn string) (Client, error)

var globalBuilder clientBuilder = DefaultClientBuilder

// SetClientBuilder replaces the builder used by New.
func SetClientBuilder(builder clientBuilder) {
	globalBuilder = builder
}

// GetClientBuilder returns the builder used by New.
func GetClientBuilder() clientBuilder {
	return globalBuilder
}

// DefaultClientBuilder opens a connection pool for dsn and pings it.
// Format: [username[:password]@][protocol[(address)]]/dbname[?param1=value1&...]
func DefaultClientBuilder(dsn string) (Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: dsn is empty")
	}
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dsn: %w", err)
	}
	cfg.ParseTime = true
	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: create connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping failed: %w", err)
	}
	return db, nil
}
