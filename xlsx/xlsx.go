// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx builds report workbooks with excelize.
package xlsx

import (
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/UNO-SOFT/xlreport"
	"github.com/xuri/excelize/v2"
)

// Workbook is an in-memory xlsx document with named sheets.
//
// This collects everything in memory, so big sheets may impose problems.
type Workbook struct {
	xl      *excelize.File
	styles  map[xlreport.Style]int
	sheets  []string
	metrics []xlreport.Metric
}

// NewWorkbook returns an empty workbook: the first NewSheet call
// replaces the default sheet.
func NewWorkbook() *Workbook {
	return &Workbook{xl: excelize.NewFile()}
}

// Close releases the underlying file.
func (wb *Workbook) Close() error {
	if wb == nil || wb.xl == nil {
		return nil
	}
	xl := wb.xl
	wb.xl = nil
	return xl.Close()
}

// WriteTo writes the xlsx document to w.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	return wb.xl.WriteTo(w)
}

// SaveAs writes the xlsx document to the named file.
func (wb *Workbook) SaveAs(path string) error {
	return wb.xl.SaveAs(path)
}

// Sheets returns the sheet names in order.
func (wb *Workbook) Sheets() []string { return append([]string(nil), wb.sheets...) }

// Metrics returns the summary metrics written to the Summary sheet.
func (wb *Workbook) Metrics() []xlreport.Metric { return wb.metrics }

// NewSheet appends a sheet. Names are unique, case insensitively, as in Excel.
func (wb *Workbook) NewSheet(name string) error {
	for _, s := range wb.sheets {
		if strings.EqualFold(s, name) {
			return fmt.Errorf("%w: %q", xlreport.ErrDuplicateSheet, name)
		}
	}
	if len(wb.sheets) == 0 { // first
		if err := wb.xl.SetSheetName(wb.xl.GetSheetName(0), name); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	} else if _, err := wb.xl.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	wb.sheets = append(wb.sheets, name)
	return nil
}

// SetRow writes values into the 1-based row, from column A.
func (wb *Workbook) SetRow(sheet string, row int, values []any) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = cellValue(v)
	}
	if err = wb.xl.SetSheetRow(sheet, axis, &vals); err != nil {
		return fmt.Errorf("%s[%s]: %w", sheet, axis, err)
	}
	return nil
}

// cellValue converts v to a type excelize writes natively.
func cellValue(v any) any {
	if v == nil {
		return nil
	}
	if f, ok := v.(interface{ InexactFloat64() float64 }); ok { // decimal.Decimal
		return f.InexactFloat64()
	}
	if vr, ok := v.(driver.Valuer); ok {
		if vv, err := vr.Value(); err == nil {
			v = vv
		}
	}
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return x
	case fmt.Stringer:
		return x.String()
	}
	return v
}

// setStyle applies style to the cell range hCell:vCell.
func (wb *Workbook) setStyle(sheet, hCell, vCell string, style xlreport.Style) error {
	s, err := wb.getStyle(style)
	if err != nil {
		return err
	}
	if err = wb.xl.SetCellStyle(sheet, hCell, vCell, s); err != nil {
		return fmt.Errorf("%s[%s:%s]: %w", sheet, hCell, vCell, err)
	}
	return nil
}

func (wb *Workbook) getStyle(style xlreport.Style) (int, error) {
	if s, ok := wb.styles[style]; ok {
		return s, nil
	}
	var st excelize.Style
	if style.FontBold || style.FontItalic || style.FontSize != 0 || style.FontColor != "" {
		st.Font = &excelize.Font{Bold: style.FontBold, Italic: style.FontItalic,
			Size: style.FontSize, Color: style.FontColor}
	}
	if style.Fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{style.Fill}, Pattern: 1}
	}
	if style.Border {
		st.Border = thinBorder
	}
	if style.Center {
		st.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	}
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	}
	s, err := wb.xl.NewStyle(&st)
	if err != nil {
		return 0, fmt.Errorf("style %+v: %w", style, err)
	}
	if wb.styles == nil {
		wb.styles = make(map[xlreport.Style]int)
	}
	wb.styles[style] = s
	return s, nil
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}
