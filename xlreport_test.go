// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlreport

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestHumanize(t *testing.T) {
	for in, want := range map[string]string{
		"sales_data":    "Sales Data",
		"customer_data": "Customer Data",
		"KPI_report":    "Kpi Report",
		"single":        "Single",
		"":              "",
	} {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q)=%q, wanted %q", in, got, want)
		}
	}
}

func TestHumanizeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				if got := Humanize("customer_data"); got != "Customer Data" {
					t.Errorf("got %q", got)
					return
				}
				if got := Title(Weekly); got != "Weekly" {
					t.Errorf("got %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCheckSheetName(t *testing.T) {
	for name, ok := range map[string]bool{
		"Sales Data":                        true,
		strings.Repeat("x", 31):             true,
		strings.Repeat("é", 31):             true,
		"":                                  false,
		strings.Repeat("x", 32):             false,
		"Sales/Returns":                     false,
		"Q1: Sales":                         false,
		"[Draft]":                           false,
		"What?":                             false,
		`A\B`:                               false,
		"'Quoted":                           false,
		"Customer Retention By Region 2026": false,
	} {
		err := CheckSheetName(name)
		if (err == nil) != ok {
			t.Errorf("%q: got %v", name, err)
		}
		if err != nil && !errors.Is(err, ErrSheetName) {
			t.Errorf("%q: got %v, wanted ErrSheetName", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	cols := []Column{{Name: "A", Type: String}, {Name: "B", Type: Number}}
	for _, tc := range []struct {
		Name   string
		DS     Dataset
		Empty  bool
		Schema bool
	}{
		{Name: "ok", DS: Dataset{Key: "k", Columns: cols, Rows: [][]any{{"x", 1}, {nil, nil}}}},
		{Name: "no rows", DS: Dataset{Key: "k", Columns: cols}},
		{Name: "no columns", DS: Dataset{Key: "k"}, Empty: true},
		{Name: "no columns but rows", DS: Dataset{Key: "k", Rows: [][]any{{}}}, Empty: true},
		{Name: "short row", DS: Dataset{Key: "k", Columns: cols, Rows: [][]any{{"x"}}}, Schema: true},
		{Name: "duplicate", DS: Dataset{Key: "k", Columns: []Column{{Name: "A"}, {Name: "A"}}}, Schema: true},
		{Name: "unnamed", DS: Dataset{Key: "k", Columns: []Column{{Name: ""}}}, Schema: true},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			err := tc.DS.Validate()
			var ede *EmptyDatasetError
			var se *SchemaError
			switch {
			case tc.Empty:
				if !errors.As(err, &ede) || ede.Dataset != "k" {
					t.Errorf("got %v, wanted EmptyDatasetError", err)
				}
			case tc.Schema:
				if !errors.As(err, &se) {
					t.Errorf("got %v, wanted SchemaError", err)
				}
			case err != nil:
				t.Errorf("got %+v", err)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 5, 7, 0, time.UTC)
	if got, want := FileName(Weekly, now), "weekly_report_20261019_090507.xlsx"; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
}

func TestCellString(t *testing.T) {
	for _, tc := range []struct {
		In   any
		Want string
		OK   bool
	}{
		{nil, "", false},
		{"abc", "abc", true},
		{42, "42", true},
		{0.825, "0.825", true},
		{time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "2026-01-02", true},
		{time.Time{}, "", false},
	} {
		got, ok := CellString(tc.In)
		if got != tc.Want || ok != tc.OK {
			t.Errorf("CellString(%#v)=%q,%t, wanted %q,%t", tc.In, got, ok, tc.Want, tc.OK)
		}
	}
}

func TestPersistenceError(t *testing.T) {
	inner := errors.New("disk full")
	err := error(&PersistenceError{Path: "reports/x.xlsx", Err: inner})
	if !errors.Is(err, inner) {
		t.Errorf("%v does not wrap %v", err, inner)
	}
}
