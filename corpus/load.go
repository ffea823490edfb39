//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Supported corpus file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// maxLineSize bounds a single segment in line-aligned files.
const maxLineSize = 1 << 20

// LoadFile reads a corpus file whose format is chosen by extension:
// .json, .yaml or .yml.
func LoadFile(path string) (*Corpus, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, fmt.Errorf("unsupported corpus file extension: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()
	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Decode reads a corpus in the given format from r.
func Decode(r io.Reader, format string) (*Corpus, error) {
	var c Corpus
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&c); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&c); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported corpus format: %s", format)
	}
	return &c, nil
}

// LoadParallel builds a corpus from line-aligned plain text files: line i of
// the hypothesis file is scored against line i of every reference file.
// Reference patterns may use doublestar globs such as "refs/**/*.txt"; the
// matches of each pattern are sorted and duplicates are dropped. All missing
// patterns and line count mismatches are reported together.
func LoadParallel(hypPath string, refPatterns ...string) (*Corpus, error) {
	if len(refPatterns) == 0 {
		return nil, fmt.Errorf("no reference files given for %s", hypPath)
	}
	hyps, err := readLines(hypPath)
	if err != nil {
		return nil, err
	}

	var result *multierror.Error
	seen := make(map[string]struct{})
	var refPaths []string
	for _, pattern := range refPatterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("reference pattern %q: %w", pattern, err))
			continue
		}
		if len(matches) == 0 {
			result = multierror.Append(result, fmt.Errorf("reference pattern %q matches no files", pattern))
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			refPaths = append(refPaths, m)
		}
	}

	refs := make([][]string, 0, len(refPaths))
	for _, path := range refPaths {
		lines, err := readLines(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if len(lines) != len(hyps) {
			result = multierror.Append(result, fmt.Errorf(
				"reference file %s has %d lines, hypothesis file %s has %d",
				path, len(lines), hypPath, len(hyps)))
			continue
		}
		refs = append(refs, lines)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	c := &Corpus{
		Name:  strings.TrimSuffix(filepath.Base(hypPath), filepath.Ext(hypPath)),
		Items: make([]*Item, len(hyps)),
	}
	for i, hyp := range hyps {
		item := &Item{
			ID:         strconv.Itoa(i + 1),
			Hypothesis: hyp,
			References: make([]string, 0, len(refs)),
		}
		for _, lines := range refs {
			item.References = append(item.References, lines[i])
		}
		c.Items[i] = item
	}
	return c, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
