// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlreport holds the data model of the report generator:
// datasets with an explicit column schema, report types with their
// summary metrics, the style rules and the configuration.
package xlreport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ColumnType is the type of every value in a column.
type ColumnType uint8

const (
	String ColumnType = iota
	Number
	Date
)

func (t ColumnType) String() string {
	switch t {
	case Number:
		return "number"
	case Date:
		return "date"
	default:
		return "string"
	}
}

// Column is a named, typed column of a Dataset.
type Column struct {
	Name string
	Type ColumnType
}

// Dataset is a named table. Each row has exactly one value per column,
// in column order; nil is an empty cell.
type Dataset struct {
	Key     string
	Columns []Column
	Rows    [][]any
}

// Index returns the index of the named column, or -1.
func (ds Dataset) Index(name string) int {
	for i, c := range ds.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Header returns the column names.
func (ds Dataset) Header() []string {
	names := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks the schema: at least one column, unique non-empty
// column names and rows as wide as the header.
func (ds Dataset) Validate() error {
	if len(ds.Columns) == 0 {
		return &EmptyDatasetError{Dataset: ds.Key}
	}
	seen := make(map[string]struct{}, len(ds.Columns))
	for i, c := range ds.Columns {
		if c.Name == "" {
			return &SchemaError{Dataset: ds.Key, Row: -1, Msg: fmt.Sprintf("column %d has no name", i+1)}
		}
		if _, ok := seen[c.Name]; ok {
			return &SchemaError{Dataset: ds.Key, Column: c.Name, Row: -1, Msg: "duplicate column"}
		}
		seen[c.Name] = struct{}{}
	}
	for i, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			return &SchemaError{Dataset: ds.Key, Row: i,
				Msg: fmt.Sprintf("has %d values, want %d", len(row), len(ds.Columns))}
		}
	}
	return nil
}

// Bundle is the ordered set of datasets of one report.
type Bundle []Dataset

// Get returns the dataset with the given key.
func (b Bundle) Get(key string) (Dataset, bool) {
	for _, ds := range b {
		if ds.Key == key {
			return ds, true
		}
	}
	return Dataset{}, false
}

// Metric is a labeled, already formatted summary value.
type Metric struct {
	Label, Value string
}

// titleCase returns s in English title case.
// A cases.Caser is stateful, so each call gets its own.
func titleCase(s string) string { return cases.Title(language.English).String(s) }

// Humanize turns a dataset key into a sheet title: "sales_data" -> "Sales Data".
func Humanize(key string) string {
	return titleCase(strings.ReplaceAll(key, "_", " "))
}

// SummarySheet is the name of the first sheet of every report.
const SummarySheet = "Summary"

// FileName returns the name of the workbook generated at t.
func FileName(rt ReportType, t time.Time) string {
	return rt.String() + "_report_" + t.Format("20060102_150405") + ".xlsx"
}

var (
	// ErrDuplicateSheet is returned when two sheets of a workbook would get the same name.
	ErrDuplicateSheet = errors.New("duplicate sheet name")
	// ErrSheetName is returned for a sheet name Excel does not accept.
	ErrSheetName = errors.New("invalid sheet name")
)

// MaxSheetNameLength is the longest sheet name Excel accepts, in characters.
const MaxSheetNameLength = 31

// CheckSheetName returns ErrSheetName (wrapped) if name cannot be an Excel sheet name:
// empty, longer than MaxSheetNameLength, containing any of []:*?/\
// or starting or ending with an apostrophe.
func CheckSheetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrSheetName)
	case utf8.RuneCountInString(name) > MaxSheetNameLength:
		return fmt.Errorf("%w: %q is longer than %d characters", ErrSheetName, name, MaxSheetNameLength)
	case strings.ContainsAny(name, `[]:*?/\`):
		return fmt.Errorf("%w: %q contains one of []:*?/\\", ErrSheetName, name)
	case strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'"):
		return fmt.Errorf("%w: %q starts or ends with an apostrophe", ErrSheetName, name)
	}
	return nil
}

// MissingDataError is returned when a dataset or column required
// by a report type is absent.
type MissingDataError struct {
	Dataset string
	// Column is empty when the whole dataset is missing.
	Column string
}

func (e *MissingDataError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("missing dataset %q", e.Dataset)
	}
	return fmt.Sprintf("dataset %q: missing column %q", e.Dataset, e.Column)
}

// EmptyDatasetError is returned for a dataset without columns.
type EmptyDatasetError struct {
	Dataset string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("dataset %q has no columns", e.Dataset)
}

// SchemaError reports a dataset that does not match its own column schema.
type SchemaError struct {
	Dataset, Column string
	// Row is the 0-based data row, -1 for header problems.
	Row int
	Msg string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dataset %q", e.Dataset)
	if e.Row >= 0 {
		fmt.Fprintf(&b, " row %d", e.Row+1)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// PersistenceError is returned when a finished report cannot be written.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CellString returns the displayed form of a cell value; false for empty cells.
func CellString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return x.Format("2006-01-02"), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}
