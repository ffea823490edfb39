//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Package corpus loads evaluation corpora of raw hypothesis and reference
// segments and converts them into token sequences.
package corpus

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"trpc.group/trpc-go/trpc-mteval-go/tokenizer"
)

// Item is one hypothesis segment with its alternative reference segments.
type Item struct {
	// ID identifies the item within the corpus.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// References holds the reference translations of the segment.
	References []string `json:"references" yaml:"references"`
	// Hypothesis is the system output being scored.
	Hypothesis string `json:"hypothesis" yaml:"hypothesis"`
}

// Corpus is an ordered list of items scored together.
type Corpus struct {
	// Name labels the corpus in reports.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Items holds the segments in scoring order.
	Items []*Item `json:"items" yaml:"items"`
}

// Validate reports every structural problem of the corpus at once.
func (c *Corpus) Validate() error {
	if c == nil {
		return errors.New("corpus is nil")
	}
	if len(c.Items) == 0 {
		return errors.New("corpus has no items")
	}
	var result *multierror.Error
	for i, item := range c.Items {
		if item == nil {
			result = multierror.Append(result, fmt.Errorf("item %d is nil", i))
			continue
		}
		if len(item.References) == 0 {
			result = multierror.Append(result, fmt.Errorf("item %d (%s) has no references", i, item.label(i)))
		}
	}
	return result.ErrorOrNil()
}

// Tokenize converts the corpus into reference sets and hypotheses aligned by
// index, the input shape of nist.Evaluate. Nil items become empty entries.
func (c *Corpus) Tokenize(tok tokenizer.Tokenizer) ([][][]string, [][]string) {
	references := make([][][]string, len(c.Items))
	hypotheses := make([][]string, len(c.Items))
	for i, item := range c.Items {
		if item == nil {
			continue
		}
		refs := make([][]string, 0, len(item.References))
		for _, ref := range item.References {
			refs = append(refs, tok.Tokenize(ref))
		}
		references[i] = refs
		hypotheses[i] = tok.Tokenize(item.Hypothesis)
	}
	return references, hypotheses
}

func (it *Item) label(i int) string {
	if it.ID != "" {
		return it.ID
	}
	return fmt.Sprintf("#%d", i+1)
}
