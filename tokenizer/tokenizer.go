//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package tokenizer turns raw segments into the token sequences scored by
// package nist.
package tokenizer

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer names accepted by New.
const (
	KindWhitespace = "whitespace"
	KindMTEval     = "mteval"
)

// Tokenizer tokenizes text into a list of tokens.
type Tokenizer interface {
	// Tokenize splits input text into tokens.
	Tokenize(text string) []string
}

// New returns the tokenizer registered under kind. An empty kind selects
// the mteval tokenizer.
func New(kind string, opt ...Option) (Tokenizer, error) {
	switch kind {
	case "", KindMTEval:
		return NewMTEval(opt...), nil
	case KindWhitespace:
		return Whitespace{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer: %s", kind)
	}
}

// Whitespace splits text on Unicode whitespace without normalization.
type Whitespace struct{}

// Tokenize splits text on whitespace.
func (Whitespace) Tokenize(text string) []string {
	return strings.Fields(text)
}

var (
	// punctRE matches the ASCII punctuation padded by mteval-v13a:
	// { | } ~ [ \ ] ^ _ ` space ! " # $ % & ( ) * + : ; < = > ? @ /
	punctRE = regexp.MustCompile("([{-~\\[-` -&(-+:-@/])")
	// periodCommaBeforeRE matches a period or comma not preceded by a digit.
	periodCommaBeforeRE = regexp.MustCompile(`([^0-9])([.,])`)
	// periodCommaAfterRE matches a period or comma not followed by a digit.
	periodCommaAfterRE = regexp.MustCompile(`([.,])([^0-9])`)
	// digitDashRE matches a dash preceded by a digit.
	digitDashRE = regexp.MustCompile(`([0-9])(-)`)

	entityReplacer = strings.NewReplacer(
		"&quot;", `"`,
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// MTEval reproduces the segment normalization of the mteval-v13a script:
// markup cleanup, punctuation padding, and period/comma splitting that keeps
// numbers such as 3.14 and 1,000 intact.
type MTEval struct {
	lowercase bool
	nfkc      bool
}

// NewMTEval creates an mteval tokenizer. Case is preserved by default.
func NewMTEval(opt ...Option) *MTEval {
	opts := newOptions(opt...)
	return &MTEval{lowercase: opts.lowercase, nfkc: opts.nfkc}
}

// Tokenize normalizes text and splits it on whitespace.
func (t *MTEval) Tokenize(text string) []string {
	if t.nfkc {
		text = norm.NFKC.String(text)
	}
	text = strings.ReplaceAll(text, "<skipped>", "")
	text = strings.ReplaceAll(text, "-\n", "")
	text = strings.ReplaceAll(text, "\n", " ")
	text = entityReplacer.Replace(text)
	if t.lowercase {
		// Casers carry state and are not shared between calls.
		text = cases.Lower(language.Und).String(text)
	}
	text = " " + text + " "
	text = punctRE.ReplaceAllString(text, " ${1} ")
	text = periodCommaBeforeRE.ReplaceAllString(text, "${1} ${2} ")
	text = periodCommaAfterRE.ReplaceAllString(text, " ${1} ${2}")
	text = digitDashRE.ReplaceAllString(text, "${1} ${2} ")
	return strings.Fields(text)
}
