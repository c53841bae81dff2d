// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UNO-SOFT/xlreport"
	"github.com/xuri/excelize/v2"
)

// Options of Build.
type Options struct {
	// Now is the generation time printed on the summary sheet; zero means time.Now().
	Now time.Time
	// Charts adds the chart of the report type to the summary sheet.
	Charts bool
	Logger *slog.Logger
}

// Layout of the summary sheet.
const (
	titleCell       = "A1"
	titleLastCell   = "F1"
	generatedCell   = "A2"
	sectionCell     = "A4"
	metricsFirstRow = 6
	chartCell       = "D4"
)

// Build assembles the report workbook: a Summary sheet with the metrics of rt,
// then one styled sheet per dataset, in bundle order.
//
// Every dataset is validated and the metrics computed before any sheet is written.
func Build(rt xlreport.ReportType, bundle xlreport.Bundle, cfg xlreport.Config, opts Options) (*Workbook, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	names := make([]string, 0, 1+len(bundle))
	names = append(names, xlreport.SummarySheet)
	for _, ds := range bundle {
		if err := ds.Validate(); err != nil {
			return nil, err
		}
		name := xlreport.Humanize(ds.Key)
		if err := xlreport.CheckSheetName(name); err != nil {
			return nil, fmt.Errorf("dataset %q: %w", ds.Key, err)
		}
		for _, s := range names {
			if strings.EqualFold(s, name) {
				return nil, fmt.Errorf("%w: %q (dataset %q)", xlreport.ErrDuplicateSheet, name, ds.Key)
			}
		}
		names = append(names, name)
	}
	metrics, err := rt.ComputeMetrics(bundle)
	if err != nil {
		return nil, err
	}
	generated, err := cfg.FormatDate(opts.Now)
	if err != nil {
		return nil, fmt.Errorf("date_format %q: %w", cfg.DateFormat, err)
	}

	wb := NewWorkbook()
	wb.metrics = metrics
	if err := wb.summary(rt, cfg, generated, metrics); err != nil {
		wb.Close()
		return nil, err
	}
	logger.Debug("summary", "report", rt.String(), "metrics", len(metrics))

	for i, ds := range bundle {
		if err := wb.dataSheet(names[i+1], ds, cfg.Colors.Header); err != nil {
			wb.Close()
			return nil, fmt.Errorf("%s: %w", ds.Key, err)
		}
		logger.Debug("sheet", "name", names[i+1], "rows", len(ds.Rows), "columns", len(ds.Columns))
	}

	if opts.Charts {
		if err := wb.chart(rt.Chart(), bundle, logger); err != nil {
			wb.Close()
			return nil, err
		}
	}
	return wb, nil
}

func (wb *Workbook) summary(rt xlreport.ReportType, cfg xlreport.Config, generated string, metrics []xlreport.Metric) error {
	name := xlreport.SummarySheet
	if err := wb.NewSheet(name); err != nil {
		return err
	}
	cells := []struct {
		axis  string
		value string
		style xlreport.Style
	}{
		{titleCell, cfg.CompanyName + " - " + xlreport.Title(rt) + " Report Summary", xlreport.TitleStyle},
		{generatedCell, "Generated: " + generated, xlreport.GeneratedStyle},
		{sectionCell, "Key Metrics", xlreport.SectionStyle(cfg.Colors.Subheader)},
	}
	for _, c := range cells {
		if err := wb.xl.SetCellStr(name, c.axis, c.value); err != nil {
			return fmt.Errorf("%s[%s]: %w", name, c.axis, err)
		}
		if err := wb.setStyle(name, c.axis, c.axis, c.style); err != nil {
			return err
		}
	}
	if err := wb.xl.MergeCell(name, titleCell, titleLastCell); err != nil {
		return fmt.Errorf("%s[%s:%s]: %w", name, titleCell, titleLastCell, err)
	}

	grid := make([][]any, 0, len(metrics))
	for i, m := range metrics {
		row := metricsFirstRow + i
		if err := wb.SetRow(name, row, []any{m.Label, m.Value}); err != nil {
			return err
		}
		label, _ := excelize.CoordinatesToCellName(1, row)
		value, _ := excelize.CoordinatesToCellName(2, row)
		if err := wb.setStyle(name, label, label, xlreport.MetricLabelStyle); err != nil {
			return err
		}
		if err := wb.setStyle(name, value, value, xlreport.MetricValueStyle); err != nil {
			return err
		}
		grid = append(grid, []any{m.Label, m.Value})
	}
	return wb.AutoWidth(name, grid)
}

func (wb *Workbook) dataSheet(name string, ds xlreport.Dataset, headerColor string) error {
	if err := wb.NewSheet(name); err != nil {
		return err
	}
	header := make([]any, len(ds.Columns))
	types := make([]xlreport.ColumnType, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i], types[i] = c.Name, c.Type
	}
	grid := make([][]any, 0, 1+len(ds.Rows))
	grid = append(grid, header)
	grid = append(grid, ds.Rows...)
	for i, row := range grid {
		if err := wb.SetRow(name, i+1, row); err != nil {
			return err
		}
	}

	if err := wb.StyleHeaderRow(name, 1, len(header), headerColor); err != nil {
		return err
	}
	if err := wb.StyleDataRegion(name,
		Span{First: 2, Last: len(grid)}, Span{First: 1, Last: len(header)},
		types...,
	); err != nil {
		return err
	}
	return wb.AutoWidth(name, grid)
}

// chart adds the chart described by spec to the summary sheet.
// A missing dataset, column or an empty dataset only skips the chart.
func (wb *Workbook) chart(spec xlreport.ChartSpec, bundle xlreport.Bundle, logger *slog.Logger) error {
	ds, ok := bundle.Get(spec.Dataset)
	if !ok || len(ds.Rows) == 0 {
		logger.Info("skip chart", "title", spec.Title, "dataset", spec.Dataset)
		return nil
	}
	sheet := xlreport.Humanize(ds.Key)
	cat := ds.Index(spec.Category)
	if cat < 0 {
		logger.Info("skip chart", "title", spec.Title, "missing", spec.Category)
		return nil
	}
	last := len(ds.Rows) + 1
	ref := func(col, first, last int) string {
		h, _ := excelize.CoordinatesToCellName(col+1, first, true)
		v, _ := excelize.CoordinatesToCellName(col+1, last, true)
		if first == last {
			return fmt.Sprintf("'%s'!%s", sheet, h)
		}
		return fmt.Sprintf("'%s'!%s:%s", sheet, h, v)
	}

	chart := excelize.Chart{
		Type:  excelize.Line,
		Title: []excelize.RichTextRun{{Text: spec.Title}},
	}
	if spec.Kind == xlreport.ColumnChart {
		chart.Type = excelize.Col
	}
	for _, v := range spec.Values {
		i := ds.Index(v)
		if i < 0 {
			logger.Info("skip chart", "title", spec.Title, "missing", v)
			return nil
		}
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       ref(i, 1, 1),
			Categories: ref(cat, 2, last),
			Values:     ref(i, 2, last),
		})
	}
	if err := wb.xl.AddChart(xlreport.SummarySheet, chartCell, &chart); err != nil {
		return fmt.Errorf("chart %q: %w", spec.Title, err)
	}
	return nil
}
