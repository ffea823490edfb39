//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package report

// DefaultBaseDir is the directory used by file-backed managers when none is configured.
const DefaultBaseDir = "nist_reports"

// Options holds the settings shared by report managers.
type Options struct {
	// BaseDir is the directory of file-backed managers.
	BaseDir string
}

// NewOptions applies opt on top of the defaults.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		BaseDir: DefaultBaseDir,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures a report manager.
type Option func(*Options)

// WithBaseDir overrides the directory used to store reports.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}
