// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package report generates report files: it obtains the datasets,
// assembles the workbook and hands it to a Sink.
package report

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/UNO-SOFT/xlreport"
	"github.com/UNO-SOFT/xlreport/pdf"
	"github.com/UNO-SOFT/xlreport/xlsx"
)

// Generator generates reports. It holds no per-report state,
// so one Generator may be used from several goroutines.
type Generator struct {
	Config xlreport.Config
	// Sink defaults to a DirSink on Config.OutputDirectory.
	Sink Sink
	// Now defaults to time.Now.
	Now func() time.Time
	// Seed of the sample data; 0 means random.
	Seed uint64
	// PDF adds a PDF rendering of the report next to the workbook.
	PDF bool
	// Charts adds a chart to the summary sheet.
	Charts bool
	Logger *slog.Logger
}

// Generate writes the report of type rt and returns its path.
// A nil bundle is replaced by the sample data of rt.
//
// Nothing is written when the workbook cannot be assembled.
func (g *Generator) Generate(rt xlreport.ReportType, bundle xlreport.Bundle) (string, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}
	if bundle == nil {
		seed := g.Seed
		if seed == 0 {
			seed = uint64(now.UnixNano())
		}
		bundle = rt.SampleData(now, rand.New(rand.NewPCG(seed, seed>>32)))
		logger.Debug("sample data", "report", rt.String(), "seed", seed)
	}

	dir := g.Config.OutputDirectory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &xlreport.PersistenceError{Path: dir, Err: err}
	}

	wb, err := xlsx.Build(rt, bundle, g.Config, xlsx.Options{Now: now, Charts: g.Charts, Logger: logger})
	if err != nil {
		return "", err
	}
	defer wb.Close()

	name := xlreport.FileName(rt, now)
	docs := []Document{{Name: name, Body: wb}}
	if g.PDF {
		generated, err := g.Config.FormatDate(now)
		if err != nil {
			return "", err
		}
		b, err := pdf.Render(rt, bundle, wb.Metrics(), g.Config, generated)
		if err != nil {
			return "", err
		}
		docs = append(docs, Document{
			Name: strings.TrimSuffix(name, ".xlsx") + ".pdf",
			Body: bytes.NewReader(b),
		})
	}

	sink := g.Sink
	if sink == nil {
		sink = DirSink{Dir: dir}
	}
	path, err := sink.Save(docs...)
	if err != nil {
		return "", err
	}
	logger.Info("report saved", "report", rt.String(), "path", path, "sheets", len(wb.Sheets()))
	return path, nil
}
