// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlreport

// Style is a style for a cell. It is comparable, so writers can
// cache the registered form of each distinct Style.
type Style struct {
	// Format is the number format
	Format string
	// FontBold is true if the font is bold
	FontBold   bool
	FontItalic bool
	// FontSize in points, 0 means the default.
	FontSize float64
	// FontColor and Fill are hex RGB without '#'; empty means none.
	FontColor string
	Fill      string
	Border    bool
	Center    bool
}

// BandColor is the fill of every even sheet row of a data region.
const BandColor = "F2F2F2"

// DateFormat is the number format of Date columns.
const DateFormat = "yyyy-mm-dd"

// HeaderStyle is the style of data sheet header cells.
func HeaderStyle(fill string) Style {
	return Style{FontBold: true, FontSize: 12, FontColor: "FFFFFF", Fill: fill, Border: true, Center: true}
}

// DataStyle is the style of a data cell in the given 1-based sheet row.
func DataStyle(row int, typ ColumnType) Style {
	st := Style{Border: true, Center: true}
	if row%2 == 0 {
		st.Fill = BandColor
	}
	if typ == Date {
		st.Format = DateFormat
	}
	return st
}

var (
	TitleStyle       = Style{FontBold: true, FontSize: 16, Center: true}
	GeneratedStyle   = Style{FontItalic: true}
	MetricLabelStyle = Style{FontBold: true, Border: true}
	MetricValueStyle = Style{Border: true}
)

// SectionStyle is the style of the "Key Metrics" header.
func SectionStyle(color string) Style {
	return Style{FontBold: true, FontSize: 14, FontColor: color}
}
