//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package tokenizer

type options struct {
	// lowercase folds text to lower case before splitting.
	lowercase bool
	// nfkc applies Unicode NFKC normalization before splitting.
	nfkc bool
}

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the mteval tokenizer.
type Option func(*options)

// WithLowercase enables or disables lower-casing.
func WithLowercase(lowercase bool) Option {
	return func(o *options) {
		o.lowercase = lowercase
	}
}

// WithNFKC enables or disables NFKC normalization, which folds full-width
// forms and compatibility characters before tokenization.
func WithNFKC(nfkc bool) Option {
	return func(o *options) {
		o.nfkc = nfkc
	}
}
