//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package nist

import (
	"fmt"
	"math"
)

// beta makes the penalty exactly 0.5 when the hypothesis is 2/3 of the
// reference length: exp(beta * ln(2/3)^2) = 0.5.
var beta = math.Log(0.5) / (math.Log(1.5) * math.Log(1.5))

// LengthPenalty returns the NIST brevity penalty for accumulated reference
// and hypothesis lengths (Doddington 2002, eq. 3):
//
//	ratio <= 0     -> 0
//	ratio >= 1     -> 1
//	0 < ratio < 1  -> exp(beta * ln(ratio)^2)
//
// A zero reference length returns ErrZeroReferenceLength.
func LengthPenalty(refLen, hypLen int) (float64, error) {
	if refLen <= 0 {
		return 0, fmt.Errorf("%w: reference length %d", ErrZeroReferenceLength, refLen)
	}
	ratio := float64(hypLen) / float64(refLen)
	switch {
	case ratio <= 0:
		return 0, nil
	case ratio >= 1:
		return 1, nil
	}
	l := math.Log(ratio)
	return math.Exp(beta * (l * l)), nil
}
