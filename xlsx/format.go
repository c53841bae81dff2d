// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"unicode/utf8"

	"github.com/UNO-SOFT/xlreport"
	"github.com/xuri/excelize/v2"
)

// Span is an inclusive range of 1-based row or column indexes.
// It is empty when Last < First.
type Span struct{ First, Last int }

// MaxColumnWidth caps auto width.
const MaxColumnWidth = 50

// StyleHeaderRow applies the header style to the first columnCount cells of row.
func (wb *Workbook) StyleHeaderRow(sheet string, row, columnCount int, fill string) error {
	if columnCount <= 0 {
		return nil
	}
	hCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vCell, err := excelize.CoordinatesToCellName(columnCount, row)
	if err != nil {
		return err
	}
	return wb.setStyle(sheet, hCell, vCell, xlreport.HeaderStyle(fill))
}

// StyleDataRegion borders and centers every cell of the region and
// fills the even sheet rows with xlreport.BandColor.
// types[i] is the type of column cols.First+i; Date columns get a date format.
func (wb *Workbook) StyleDataRegion(sheet string, rows, cols Span, types ...xlreport.ColumnType) error {
	for r := rows.First; r <= rows.Last; r++ {
		for c := cols.First; c <= cols.Last; c++ {
			typ := xlreport.String
			if i := c - cols.First; i < len(types) {
				typ = types[i]
			}
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err = wb.setStyle(sheet, cell, cell, xlreport.DataStyle(r, typ)); err != nil {
				return err
			}
		}
	}
	return nil
}

// AutoWidth sets the width of every column of grid (grid[0] is row 1)
// to ColumnWidth of its longest cell.
func (wb *Workbook) AutoWidth(sheet string, grid [][]any) error {
	for i, w := range ColumnWidths(grid) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err = wb.xl.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("%s[%s]: %w", sheet, col, err)
		}
	}
	return nil
}

// ColumnWidths returns the auto width of each column of grid.
func ColumnWidths(grid [][]any) []float64 {
	var maxLen []int
	for _, row := range grid {
		for i, v := range row {
			for len(maxLen) <= i {
				maxLen = append(maxLen, 0)
			}
			s, ok := cellString(v)
			if !ok {
				continue
			}
			if n := utf8.RuneCountInString(s); n > maxLen[i] {
				maxLen[i] = n
			}
		}
	}
	widths := make([]float64, len(maxLen))
	for i, n := range maxLen {
		widths[i] = ColumnWidth(n)
	}
	return widths
}

// ColumnWidth is the width of a column whose longest cell has n characters.
func ColumnWidth(n int) float64 {
	return float64(min(MaxColumnWidth, n+2))
}

// cellString is the displayed form of v; false for empty cells.
func cellString(v any) (string, bool) { return xlreport.CellString(cellValue(v)) }
