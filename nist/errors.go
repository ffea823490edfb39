//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package nist

import "errors"

var (
	// ErrLengthMismatch is returned when the number of reference sets differs
	// from the number of hypotheses.
	ErrLengthMismatch = errors.New("nist: number of reference sets and hypotheses differ")
	// ErrZeroReferenceLength is returned when the accumulated reference length
	// is zero, which leaves the length ratio undefined.
	ErrZeroReferenceLength = errors.New("nist: accumulated reference length is zero")
	// ErrInvalidMaxOrder is returned when the highest n-gram order is below one.
	ErrInvalidMaxOrder = errors.New("nist: max order must be at least 1")
	// ErrEmptyReferenceSet is returned when a corpus item has no references.
	ErrEmptyReferenceSet = errors.New("nist: reference set is empty")
)
