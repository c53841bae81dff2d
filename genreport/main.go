// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command genreport generates a daily or weekly xlsx report,
// from CSV files or from sample data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/xlreport"
	"github.com/UNO-SOFT/xlreport/report"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("genreport", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagConfig := fs.String("config", "report_config.json", "configuration file (JSON, or YAML with .yaml extension); created when missing")
	flagOut := fs.String("out", "", "output directory (default: output_directory of the config)")
	flagCompany := fs.String("company", "", "company name (default: company_name of the config)")
	flagEnc := fs.String("charset", xlreport.EncName, "csv charset name")
	flagPDF := fs.Bool("pdf", false, "write a PDF next to the workbook")
	flagZip := fs.Bool("zip", false, "save the report files in one zip archive")
	flagCharts := fs.Bool("charts", false, "add a chart to the summary sheet")
	flagSeed := fs.Uint64("seed", 0, "seed of the sample data (0: random)")

	app := ffcli.Command{Name: "genreport", FlagSet: fs,
		ShortUsage: "genreport [flags] daily|weekly [[key:]file.csv ...]",
		LongHelp: `Generates a report workbook with a Summary sheet and one sheet per dataset.

Datasets are read from the CSV files; the key defaults to the file name
without extension ("sales_data.csv" -> sales_data).
Without files, sample data is generated.`,
		Options: []ff.Option{ff.WithEnvVarPrefix("XLREPORT")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("report type (daily or weekly) is required")
			}
			rt, err := xlreport.ParseReportType(args[0])
			if err != nil {
				return err
			}
			cfg, err := xlreport.LoadConfig(*flagConfig)
			if err != nil {
				return err
			}
			if *flagOut != "" {
				cfg.OutputDirectory = *flagOut
			}
			if *flagCompany != "" {
				cfg.CompanyName = *flagCompany
			}

			var bundle xlreport.Bundle
			for _, fn := range args[1:] {
				key := strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
				if i := strings.IndexByte(fn, ':'); i >= 0 {
					key, fn = fn[:i], fn[i+1:]
				}
				ds, err := xlreport.ReadCSV(key, fn, *flagEnc)
				if err != nil {
					return err
				}
				logger.Debug("dataset", "key", key, "file", fn, "rows", len(ds.Rows), "columns", len(ds.Columns))
				bundle = append(bundle, ds)
			}

			g := report.Generator{
				Config: cfg, Seed: *flagSeed,
				PDF: *flagPDF, Charts: *flagCharts,
				Logger: logger,
			}
			if *flagZip {
				g.Sink = report.ZipSink{Dir: cfg.OutputDirectory}
			}
			path, err := g.Generate(rt, bundle)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}
