// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlreport

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Dataset keys the report types read.
const (
	SalesData    = "sales_data"
	CustomerData = "customer_data"
)

// ReportType selects the summary metrics, the sample data shape and the chart of a report.
//
// The set is closed: Daily and Weekly.
type ReportType interface {
	fmt.Stringer
	// ComputeMetrics returns the summary metrics, in display order.
	ComputeMetrics(Bundle) ([]Metric, error)
	// SampleData returns demonstration datasets dated up to now.
	SampleData(now time.Time, rnd *rand.Rand) Bundle
	// Chart describes the summary chart.
	Chart() ChartSpec
	reportType()
}

var (
	Daily  ReportType = dailyReport{}
	Weekly ReportType = weeklyReport{}
)

// ReportTypes lists every report type.
var ReportTypes = []ReportType{Daily, Weekly}

// ParseReportType returns the report type named s (case insensitive).
func ParseReportType(s string) (ReportType, error) {
	for _, rt := range ReportTypes {
		if strings.EqualFold(rt.String(), s) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("unknown report type %q (must be daily or weekly)", s)
}

// Title returns the title-cased name of the report type: "Daily".
func Title(rt ReportType) string { return titleCase(rt.String()) }

// ChartKind is the kind of the summary chart.
type ChartKind uint8

const (
	LineChart ChartKind = iota
	ColumnChart
)

// ChartSpec describes a chart over the columns of one dataset.
type ChartSpec struct {
	Title    string
	Kind     ChartKind
	Dataset  string
	Category string
	Values   []string
}

type dailyReport struct{}

func (dailyReport) String() string { return "daily" }
func (dailyReport) reportType()    {}

func (dailyReport) Chart() ChartSpec {
	return ChartSpec{Title: "Daily Revenue", Kind: LineChart,
		Dataset: SalesData, Category: "Date", Values: []string{"Total_Revenue"}}
}

// products are the candidates of the "Top Product" metric, in tie-break order.
var products = []string{"Product_A", "Product_B", "Product_C"}

func (dailyReport) ComputeMetrics(b Bundle) ([]Metric, error) {
	sales, err := dataset(b, SalesData)
	if err != nil {
		return nil, err
	}
	customers, err := dataset(b, CustomerData)
	if err != nil {
		return nil, err
	}
	revenue, err := sumColumn(sales, "Total_Revenue")
	if err != nil {
		return nil, err
	}
	top, err := maxSumColumn(sales, products)
	if err != nil {
		return nil, err
	}
	premium, err := countEqual(customers, "Category", "Premium")
	if err != nil {
		return nil, err
	}
	return []Metric{
		{Label: "Total Revenue", Value: Currency(revenue.Sum)},
		{Label: "Average Daily Revenue", Value: Currency(revenue.Mean())},
		{Label: "Top Product", Value: top},
		{Label: "Total Customers", Value: Count(len(customers.Rows))},
		{Label: "Premium Customers", Value: Count(premium)},
	}, nil
}

func (dailyReport) SampleData(now time.Time, rnd *rand.Rand) Bundle {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sales := Dataset{Key: SalesData, Columns: []Column{
		{Name: "Date", Type: Date},
		{Name: "Product_A", Type: Number},
		{Name: "Product_B", Type: Number},
		{Name: "Product_C", Type: Number},
		{Name: "Total_Revenue", Type: Number},
	}}
	for d := today.AddDate(0, 0, -30); !d.After(today); d = d.AddDate(0, 0, 1) {
		sales.Rows = append(sales.Rows, []any{d,
			between(rnd, 50, 200), between(rnd, 30, 150), between(rnd, 20, 100),
			between(rnd, 1000, 5000),
		})
	}

	categories := []string{"Premium", "Standard", "Basic"}
	customers := Dataset{Key: CustomerData, Columns: []Column{
		{Name: "Customer_ID", Type: String},
		{Name: "Customer_Name", Type: String},
		{Name: "Total_Orders", Type: Number},
		{Name: "Total_Spent", Type: Number},
		{Name: "Category", Type: String},
	}}
	for i := 1; i <= 100; i++ {
		customers.Rows = append(customers.Rows, []any{
			fmt.Sprintf("CUST_%04d", i), fmt.Sprintf("Customer %d", i),
			between(rnd, 1, 20), between(rnd, 100, 10000),
			categories[rnd.IntN(len(categories))],
		})
	}
	return Bundle{sales, customers}
}

type weeklyReport struct{}

func (weeklyReport) String() string { return "weekly" }
func (weeklyReport) reportType()    {}

func (weeklyReport) Chart() ChartSpec {
	return ChartSpec{Title: "Weekly Sales vs Target", Kind: ColumnChart,
		Dataset: SalesData, Category: "Week", Values: []string{"Sales_Target", "Actual_Sales"}}
}

func (weeklyReport) ComputeMetrics(b Bundle) ([]Metric, error) {
	sales, err := dataset(b, SalesData)
	if err != nil {
		return nil, err
	}
	departments, err := dataset(b, CustomerData)
	if err != nil {
		return nil, err
	}
	actual, err := sumColumn(sales, "Actual_Sales")
	if err != nil {
		return nil, err
	}
	retention, err := sumColumn(sales, "Customer_Retention")
	if err != nil {
		return nil, err
	}
	newCustomers, err := sumColumn(sales, "New_Customers")
	if err != nil {
		return nil, err
	}
	best, err := labelOfMax(departments, "Performance_Score", "Department")
	if err != nil {
		return nil, err
	}
	return []Metric{
		{Label: "Total Sales", Value: Currency(actual.Sum)},
		{Label: "Average Retention Rate", Value: Percent(retention.Mean())},
		{Label: "Total New Customers", Value: Integer(newCustomers.Sum)},
		{Label: "Best Department", Value: best},
	}, nil
}

func (weeklyReport) SampleData(now time.Time, rnd *rand.Rand) Bundle {
	start := now.AddDate(0, 0, -7*12)
	// weeks end on Sunday
	week := start.AddDate(0, 0, (7-int(start.Weekday()))%7)
	sales := Dataset{Key: SalesData, Columns: []Column{
		{Name: "Week", Type: Date},
		{Name: "Sales_Target", Type: Number},
		{Name: "Actual_Sales", Type: Number},
		{Name: "New_Customers", Type: Number},
		{Name: "Customer_Retention", Type: Number},
	}}
	for ; !week.After(now); week = week.AddDate(0, 0, 7) {
		sales.Rows = append(sales.Rows, []any{
			time.Date(week.Year(), week.Month(), week.Day(), 0, 0, 0, 0, week.Location()),
			between(rnd, 10000, 20000), between(rnd, 8000, 22000), between(rnd, 20, 100),
			0.7 + 0.25*rnd.Float64(),
		})
	}

	departments := Dataset{Key: CustomerData, Columns: []Column{
		{Name: "Department", Type: String},
		{Name: "Budget", Type: Number},
		{Name: "Actual_Spend", Type: Number},
		{Name: "Performance_Score", Type: Number},
		{Name: "Team_Size", Type: Number},
	}}
	for _, d := range []struct {
		name           string
		budget, people int
	}{
		{"Sales", 50000, 10},
		{"Marketing", 30000, 8},
		{"Support", 25000, 12},
		{"Operations", 40000, 15},
	} {
		departments.Rows = append(departments.Rows, []any{
			d.name, d.budget, between(rnd, 20000, 55000), 0.6 + 0.4*rnd.Float64(), d.people,
		})
	}
	return Bundle{sales, departments}
}

// between returns a random int in [lo, hi).
func between(rnd *rand.Rand, lo, hi int) int { return lo + rnd.IntN(hi-lo) }
