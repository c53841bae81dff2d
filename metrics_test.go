// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlreport

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dailyBundle() Bundle {
	sales := Dataset{Key: SalesData, Columns: []Column{
		{Name: "Date", Type: Date},
		{Name: "Product_A", Type: Number},
		{Name: "Product_B", Type: Number},
		{Name: "Product_C", Type: Number},
		{Name: "Total_Revenue", Type: Number},
	}}
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 31; i++ {
		sales.Rows = append(sales.Rows, []any{day.AddDate(0, 0, i), 100, 150, 20, 3000})
	}
	customers := Dataset{Key: CustomerData, Columns: []Column{
		{Name: "Customer_ID", Type: String},
		{Name: "Category", Type: String},
	}}
	for i := 0; i < 100; i++ {
		category := "Standard"
		if i%5 < 2 {
			category = "Premium"
		}
		customers.Rows = append(customers.Rows, []any{fmt.Sprintf("CUST_%04d", i+1), category})
	}
	return Bundle{sales, customers}
}

func weeklyBundle(retention ...float64) Bundle {
	sales := Dataset{Key: SalesData, Columns: []Column{
		{Name: "Week", Type: Date},
		{Name: "Actual_Sales", Type: Number},
		{Name: "New_Customers", Type: Number},
		{Name: "Customer_Retention", Type: Number},
	}}
	for i, r := range retention {
		sales.Rows = append(sales.Rows, []any{
			time.Date(2026, 1, 4+7*i, 0, 0, 0, 0, time.UTC), 10000.5, 25, r,
		})
	}
	departments := Dataset{Key: CustomerData, Columns: []Column{
		{Name: "Department", Type: String},
		{Name: "Performance_Score", Type: Number},
	}, Rows: [][]any{
		{"Sales", 0.7},
		{"Support", 0.9},
		{"Operations", 0.9},
		{"Marketing", 0.65},
	}}
	return Bundle{sales, departments}
}

func TestDailyMetrics(t *testing.T) {
	metrics, err := Daily.ComputeMetrics(dailyBundle())
	if err != nil {
		t.Fatal(err)
	}
	want := []Metric{
		{"Total Revenue", "$93,000.00"},
		{"Average Daily Revenue", "$3,000.00"},
		{"Top Product", "Product_B"},
		{"Total Customers", "100"},
		{"Premium Customers", "40"},
	}
	if !reflect.DeepEqual(metrics, want) {
		t.Errorf("got %v, wanted %v", metrics, want)
	}
}

func TestDailyMetricsTopProductTie(t *testing.T) {
	b := dailyBundle()
	sales := b[0]
	sales.Rows = make([][]any, 0, len(b[0].Rows))
	for _, row := range b[0].Rows {
		sales.Rows = append(sales.Rows, []any{row[0], 150, 150, 150, row[4]})
	}
	b[0] = sales
	metrics, err := Daily.ComputeMetrics(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := metrics[2]; got != (Metric{"Top Product", "Product_A"}) {
		t.Errorf("got %v, wanted Product_A", got)
	}

	// B and C tie, B comes first
	for _, row := range sales.Rows {
		row[1] = 10
	}
	if metrics, err = Daily.ComputeMetrics(b); err != nil {
		t.Fatal(err)
	}
	if got := metrics[2].Value; got != "Product_B" {
		t.Errorf("got %q, wanted Product_B", got)
	}
}

func TestWeeklyMetrics(t *testing.T) {
	for _, retention := range [][]float64{
		{0.8, 0.85},
		{0.75, 0.9},
		{0.825},
		{0.7, 0.95, 0.825, 0.825},
	} {
		metrics, err := Weekly.ComputeMetrics(weeklyBundle(retention...))
		if err != nil {
			t.Fatalf("%v: %+v", retention, err)
		}
		if got := metrics[1]; got != (Metric{"Average Retention Rate", "82.5%"}) {
			t.Errorf("%v: got %v", retention, got)
		}
	}

	metrics, err := Weekly.ComputeMetrics(weeklyBundle(0.8, 0.85))
	if err != nil {
		t.Fatal(err)
	}
	want := []Metric{
		{"Total Sales", "$20,001.00"},
		{"Average Retention Rate", "82.5%"},
		{"Total New Customers", "50"},
		// first of the tied maximums
		{"Best Department", "Support"},
	}
	if !reflect.DeepEqual(metrics, want) {
		t.Errorf("got %v, wanted %v", metrics, want)
	}
}

func TestMetricsMissingData(t *testing.T) {
	daily := dailyBundle()
	noRevenue := dailyBundle()
	noRevenue[0].Columns[4].Name = "Revenue"
	weekly := weeklyBundle(0.8)
	noDepartments := weeklyBundle(0.8)
	noDepartments[1].Rows = nil

	for _, tc := range []struct {
		Name            string
		RT              ReportType
		Bundle          Bundle
		Dataset, Column string
	}{
		{"no customers", Daily, daily[:1], CustomerData, ""},
		{"no sales", Daily, Bundle{daily[1]}, SalesData, ""},
		{"no revenue", Daily, noRevenue, SalesData, "Total_Revenue"},
		{"daily shape for weekly", Weekly, daily, SalesData, "Actual_Sales"},
		{"weekly shape for daily", Daily, weekly, SalesData, "Total_Revenue"},
		{"no departments", Weekly, noDepartments, CustomerData, "Performance_Score"},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := tc.RT.ComputeMetrics(tc.Bundle)
			var mde *MissingDataError
			if !errors.As(err, &mde) {
				t.Fatalf("got %v, wanted MissingDataError", err)
			}
			if mde.Dataset != tc.Dataset || mde.Column != tc.Column {
				t.Errorf("got %+v, wanted %s/%s", mde, tc.Dataset, tc.Column)
			}
		})
	}
}

func TestMetricsNotANumber(t *testing.T) {
	b := dailyBundle()
	b[0].Rows[3][4] = "lots"
	_, err := Daily.ComputeMetrics(b)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, wanted SchemaError", err)
	}
	if se.Row != 3 || se.Column != "Total_Revenue" {
		t.Errorf("got %+v", se)
	}
}

func TestMetricsDeterministic(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	for _, rt := range ReportTypes {
		b := rt.SampleData(now, rand.New(rand.NewPCG(1, 2)))
		first, err := rt.ComputeMetrics(b)
		if err != nil {
			t.Fatalf("%s: %+v", rt, err)
		}
		for _, other := range ReportTypes {
			other.ComputeMetrics(other.SampleData(now, rand.New(rand.NewPCG(3, 4))))
		}
		for i := 0; i < 3; i++ {
			again, err := rt.ComputeMetrics(b)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(first, again) {
				t.Errorf("%s: got %v, wanted %v", rt, again, first)
			}
		}
	}
}

func TestSampleData(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	for _, tc := range []struct {
		RT                ReportType
		Sales, Customers int
		Metrics          int
	}{
		{Daily, 31, 100, 5},
		{Weekly, 12, 4, 4},
	} {
		b := tc.RT.SampleData(now, rand.New(rand.NewPCG(42, 42)))
		if len(b) != 2 || b[0].Key != SalesData || b[1].Key != CustomerData {
			t.Fatalf("%s: got keys %v", tc.RT, b)
		}
		for _, ds := range b {
			if err := ds.Validate(); err != nil {
				t.Errorf("%s: %+v", tc.RT, err)
			}
		}
		if got := len(b[0].Rows); got != tc.Sales {
			t.Errorf("%s: got %d sales rows, wanted %d", tc.RT, got, tc.Sales)
		}
		if got := len(b[1].Rows); got != tc.Customers {
			t.Errorf("%s: got %d customer rows, wanted %d", tc.RT, got, tc.Customers)
		}
		metrics, err := tc.RT.ComputeMetrics(b)
		if err != nil {
			t.Fatalf("%s: %+v", tc.RT, err)
		}
		if len(metrics) != tc.Metrics {
			t.Errorf("%s: got %d metrics", tc.RT, len(metrics))
		}
	}
}

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		Got, Want string
	}{
		{Currency(decimal.NewFromInt(93000)), "$93,000.00"},
		{Currency(decimal.RequireFromString("1234567.891")), "$1,234,567.89"},
		{Currency(decimal.RequireFromString("999.995")), "$1,000.00"},
		{Currency(decimal.Zero), "$0.00"},
		{Currency(decimal.RequireFromString("-1234.5")), "-$1,234.50"},
		{Currency(decimal.RequireFromString("123456789012345678.905")), "$123,456,789,012,345,678.91"},
		{Currency(decimal.RequireFromString("100")), "$100.00"},
		{Percent(decimal.RequireFromString("0.825")), "82.5%"},
		{Percent(decimal.RequireFromString("1")), "100.0%"},
		{Integer(decimal.NewFromInt(12345)), "12345"},
		{Count(40), "40"},
	} {
		if tc.Got != tc.Want {
			t.Errorf("got %q, wanted %q", tc.Got, tc.Want)
		}
	}
}

func TestParseReportType(t *testing.T) {
	for _, tc := range []struct {
		In   string
		Want ReportType
	}{
		{"daily", Daily}, {"Weekly", Weekly}, {"DAILY", Daily}, {"monthly", nil},
	} {
		got, err := ParseReportType(tc.In)
		if tc.Want == nil {
			if err == nil {
				t.Errorf("%q: wanted error, got %v", tc.In, got)
			}
			continue
		}
		if err != nil || got != tc.Want {
			t.Errorf("%q: got %v, %v", tc.In, got, err)
		}
	}
	if got := Title(Weekly); got != "Weekly" {
		t.Errorf("Title(Weekly)=%q", got)
	}
}
