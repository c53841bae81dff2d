// Copyright 2021, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package pdf renders a report as a PDF document with the layout of the workbook:
// summary first, then one banded table per dataset.
package pdf

import (
	"encoding/hex"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/UNO-SOFT/xlreport"
)

// gridSize is divisible by every column count up to 6, and by 10, 12, 15.
const gridSize = 60

// FontSize of table cells; headers are 1.375 times bigger.
var FontSize = 8.0

// Render returns the PDF form of the report.
// generated is the already formatted generation time.
func Render(rt xlreport.ReportType, bundle xlreport.Bundle, metrics []xlreport.Metric, cfg xlreport.Config, generated string) ([]byte, error) {
	headerColor, err := ParseColor(cfg.Colors.Header)
	if err != nil {
		return nil, fmt.Errorf("colors.header: %w", err)
	}
	grid := gridSize
	for _, ds := range bundle {
		grid = max(grid, len(ds.Columns))
	}
	m := maroto.New(config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		Build())

	m.AddRows(
		text.NewRow(12, cfg.CompanyName+" - "+xlreport.Title(rt)+" Report Summary",
			props.Text{Style: fontstyle.Bold, Size: 16, Align: align.Center}),
		text.NewRow(7, "Generated: "+generated, props.Text{Style: fontstyle.Italic, Size: FontSize}),
		text.NewRow(10, "Key Metrics", props.Text{Style: fontstyle.Bold, Size: 14, Top: 3}),
	)
	bordered := &props.Cell{BorderType: border.Full, BorderThickness: 0.1}
	labelSize := grid / 3
	for _, mt := range metrics {
		m.AddRows(row.New(6).Add(
			text.NewCol(labelSize, mt.Label, props.Text{Style: fontstyle.Bold, Size: FontSize, Left: 1}),
			text.NewCol(labelSize, mt.Value, props.Text{Size: FontSize, Left: 1}),
		).WithStyle(bordered))
	}

	for _, ds := range bundle {
		if err := ds.Validate(); err != nil {
			return nil, err
		}
		m.AddRows(text.NewRow(12, xlreport.Humanize(ds.Key),
			props.Text{Style: fontstyle.Bold, Size: 14, Top: 4}))
		m.AddRows(table(ds, grid, headerColor)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func table(ds xlreport.Dataset, grid int, headerColor *props.Color) []core.Row {
	sizes := gridSizes(len(ds.Columns), grid)
	white := &props.Color{Red: 255, Green: 255, Blue: 255}
	band, _ := ParseColor(xlreport.BandColor)

	rows := make([]core.Row, 0, 1+len(ds.Rows))
	header := make([]core.Col, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = text.NewCol(sizes[i], c.Name, props.Text{
			Style: fontstyle.Bold, Size: FontSize * 1.375, Align: align.Center, Color: white, Top: 1,
		})
	}
	rows = append(rows, row.New(8).Add(header...).WithStyle(&props.Cell{
		BackgroundColor: headerColor, BorderType: border.Full, BorderThickness: 0.1,
	}))

	for r, values := range ds.Rows {
		cols := make([]core.Col, len(values))
		for i, v := range values {
			s, _ := xlreport.CellString(v)
			cols[i] = text.NewCol(sizes[i], s, props.Text{Size: FontSize, Align: align.Center, Top: 1})
		}
		style := &props.Cell{BorderType: border.Full, BorderThickness: 0.1}
		// sheet row of data row r is r+2
		if xlreport.DataStyle(r+2, xlreport.String).Fill != "" {
			style.BackgroundColor = band
		}
		rows = append(rows, row.New(6).Add(cols...).WithStyle(style))
	}
	return rows
}

// gridSizes splits grid into n near equal column sizes.
func gridSizes(n, grid int) []int {
	sizes := make([]int, n)
	if n == 0 {
		return sizes
	}
	for i := range sizes {
		sizes[i] = grid / n
	}
	for i := 0; i < grid%n; i++ {
		sizes[i]++
	}
	return sizes
}

// ParseColor parses a RRGGBB hex color.
func ParseColor(s string) (*props.Color, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != 3 {
		return nil, fmt.Errorf("%q: want 3 bytes, got %d", s, len(b))
	}
	return &props.Color{Red: int(b[0]), Green: int(b[1]), Blue: int(b[2])}, nil
}
