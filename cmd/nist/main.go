//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

// Command nist scores machine translation output with the NIST metric.
//
// Usage:
//
//	nist -corpus news.yaml
//	nist -hyp sys.txt -ref ref0.txt -ref 'refs/**/*.txt' -max-order 4
//	nist -config nist.yaml -report local -report-dir reports
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"trpc.group/trpc-go/trpc-mteval-go/corpus"
	"trpc.group/trpc-go/trpc-mteval-go/log"
	"trpc.group/trpc-go/trpc-mteval-go/nist"
	"trpc.group/trpc-go/trpc-mteval-go/report"
	"trpc.group/trpc-go/trpc-mteval-go/report/local"
	reportmysql "trpc.group/trpc-go/trpc-mteval-go/report/mysql"
	"trpc.group/trpc-go/trpc-mteval-go/tokenizer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "nist: %v\n", err)
		os.Exit(1)
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("nist", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "YAML config file; flags override its values")
		corpusPath  = fs.String("corpus", "", "JSON or YAML corpus file")
		hyp         = fs.String("hyp", "", "hypothesis file, one segment per line")
		maxOrder    = fs.Int("max-order", nist.DefaultMaxOrder, "highest n-gram order")
		parallelism = fs.Int("parallelism", 1, "workers scoring (order, item) cells")
		tokKind     = fs.String("tokenizer", tokenizer.KindMTEval, "tokenizer: whitespace or mteval")
		lowercase   = fs.Bool("lowercase", false, "lowercase before tokenizing (mteval only)")
		nfkc        = fs.Bool("nfkc", false, "apply NFKC normalization (mteval only)")
		logLevel    = fs.String("log-level", log.LevelInfo, "log level: debug, info, warn, error")
		backend     = fs.String("report", backendNone, "save the report: none, local or mysql")
		reportDir   = fs.String("report-dir", report.DefaultBaseDir, "directory of the local report backend")
		reportDSN   = fs.String("report-dsn", "", "DSN of the mysql report backend")
		name        = fs.String("name", "", "report name, defaults to the corpus name")
		refs        stringList
	)
	fs.Var(&refs, "ref", "reference file or doublestar pattern aligned with -hyp (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg.Corpus = *corpusPath
		case "hyp":
			cfg.Hyp = *hyp
		case "ref":
			cfg.Refs = refs
		case "max-order":
			cfg.MaxOrder = *maxOrder
		case "parallelism":
			cfg.Parallelism = *parallelism
		case "tokenizer":
			cfg.Tokenizer.Kind = *tokKind
		case "lowercase":
			cfg.Tokenizer.Lowercase = *lowercase
		case "nfkc":
			cfg.Tokenizer.NFKC = *nfkc
		case "log-level":
			cfg.Log.Level = *logLevel
		case "report":
			cfg.Report.Backend = *backend
		case "report-dir":
			cfg.Report.Dir = *reportDir
		case "report-dsn":
			cfg.Report.DSN = *reportDSN
		case "name":
			cfg.Name = *name
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.SetOutput(cfg.Log.Format, os.Stderr)
	log.SetLevel(cfg.Log.Level)

	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	tok, err := tokenizer.New(cfg.Tokenizer.Kind,
		tokenizer.WithLowercase(cfg.Tokenizer.Lowercase),
		tokenizer.WithNFKC(cfg.Tokenizer.NFKC),
	)
	if err != nil {
		return err
	}
	references, hypotheses := c.Tokenize(tok)
	log.Infof("scoring %d segments of %q with %s tokenizer", len(hypotheses), c.Name, cfg.Tokenizer.Kind)

	res, err := nist.Evaluate(ctx, references, hypotheses,
		nist.WithMaxOrder(cfg.MaxOrder),
		nist.WithParallelism(cfg.Parallelism),
	)
	if err != nil {
		return err
	}
	if err := printResult(stdout, res); err != nil {
		return err
	}

	if cfg.Report.Backend == backendNone {
		return nil
	}
	mgr, err := newReportManager(cfg.Report)
	if err != nil {
		return err
	}
	defer mgr.Close()
	runName := cfg.Name
	if runName == "" {
		runName = c.Name
	}
	id, err := mgr.Save(ctx, report.FromResult(runName, res))
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	log.Infof("saved report %s to %s backend", id, cfg.Report.Backend)
	fmt.Fprintf(stdout, "report: %s\n", id)
	return nil
}

func loadCorpus(cfg Config) (*corpus.Corpus, error) {
	if cfg.Corpus != "" {
		return corpus.LoadFile(cfg.Corpus)
	}
	return corpus.LoadParallel(cfg.Hyp, cfg.Refs...)
}

func newReportManager(cfg ReportConfig) (report.Manager, error) {
	switch cfg.Backend {
	case backendLocal:
		return local.NewManager(report.WithBaseDir(cfg.Dir)), nil
	case backendMySQL:
		return reportmysql.New(
			reportmysql.WithDSN(cfg.DSN),
			reportmysql.WithTablePrefix(cfg.TablePrefix),
		)
	default:
		return nil, fmt.Errorf("unknown report backend %q", cfg.Backend)
	}
}

func printResult(w io.Writer, res *nist.Result) error {
	fmt.Fprintf(w, "NIST score = %.4f  precision = %.4f  penalty = %.4f\n", res.Score, res.Precision, res.Penalty)
	fmt.Fprintf(w, "items = %d  ref length = %d  hyp length = %d\n", res.Items, res.CorpusRefLength, res.CorpusHypLength)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "order\tnumerator\tdenominator\tprecision\t")
	for _, o := range res.Orders {
		note := ""
		if o.Degenerate {
			note = "degenerate"
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%d\t%.4f\t%s\n", o.Order, o.Numerator, o.Denominator, o.Precision, note)
	}
	return tw.Flush()
}
