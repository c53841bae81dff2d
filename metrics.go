// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlreport

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Currency formats d as "$93,000.00", exactly at any magnitude.
func Currency(d decimal.Decimal) string {
	d = d.Round(2)
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// Percent formats the ratio d as "82.5%".
func Percent(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(1) + "%"
}

// Integer formats d rounded to a plain integer, without grouping.
func Integer(d decimal.Decimal) string { return d.StringFixed(0) }

// Count formats n as a plain integer.
func Count(n int) string { return strconv.Itoa(n) }

// aggregate is the sum and the number of non-empty values of a column.
type aggregate struct {
	Sum decimal.Decimal
	N   int
}

// Mean of the summed values; zero for an empty column.
func (a aggregate) Mean() decimal.Decimal {
	if a.N == 0 {
		return decimal.Zero
	}
	return a.Sum.Div(decimal.NewFromInt(int64(a.N)))
}

func dataset(b Bundle, key string) (Dataset, error) {
	ds, ok := b.Get(key)
	if !ok {
		return ds, &MissingDataError{Dataset: key}
	}
	return ds, nil
}

func column(ds Dataset, name string) (int, error) {
	if i := ds.Index(name); i >= 0 {
		return i, nil
	}
	return -1, &MissingDataError{Dataset: ds.Key, Column: name}
}

func sumColumn(ds Dataset, name string) (aggregate, error) {
	var a aggregate
	i, err := column(ds, name)
	if err != nil {
		return a, err
	}
	for r, row := range ds.Rows {
		if i >= len(row) || row[i] == nil {
			continue
		}
		d, ok := ToDecimal(row[i])
		if !ok {
			return a, &SchemaError{Dataset: ds.Key, Column: name, Row: r,
				Msg: fmt.Sprintf("%v (%T) is not a number", row[i], row[i])}
		}
		a.Sum = a.Sum.Add(d)
		a.N++
	}
	return a, nil
}

// maxSumColumn returns the candidate column with the largest sum,
// the first one on ties.
func maxSumColumn(ds Dataset, candidates []string) (string, error) {
	var best string
	var most decimal.Decimal
	for _, name := range candidates {
		a, err := sumColumn(ds, name)
		if err != nil {
			return "", err
		}
		if best == "" || a.Sum.GreaterThan(most) {
			best, most = name, a.Sum
		}
	}
	return best, nil
}

func countEqual(ds Dataset, name, value string) (int, error) {
	i, err := column(ds, name)
	if err != nil {
		return 0, err
	}
	var n int
	for _, row := range ds.Rows {
		if i < len(row) && fmt.Sprint(row[i]) == value {
			n++
		}
	}
	return n, nil
}

// labelOfMax returns the label column of the row with the largest score,
// the first such row on ties.
func labelOfMax(ds Dataset, score, label string) (string, error) {
	si, err := column(ds, score)
	if err != nil {
		return "", err
	}
	li, err := column(ds, label)
	if err != nil {
		return "", err
	}
	best := -1
	var most decimal.Decimal
	for r, row := range ds.Rows {
		if si >= len(row) || li >= len(row) || row[si] == nil {
			continue
		}
		d, ok := ToDecimal(row[si])
		if !ok {
			return "", &SchemaError{Dataset: ds.Key, Column: score, Row: r,
				Msg: fmt.Sprintf("%v (%T) is not a number", row[si], row[si])}
		}
		if best < 0 || d.GreaterThan(most) {
			best, most = r, d
		}
	}
	if best < 0 {
		return "", &MissingDataError{Dataset: ds.Key, Column: score}
	}
	if v := ds.Rows[best][li]; v != nil {
		return fmt.Sprint(v), nil
	}
	return "", nil
}

// ToDecimal converts a Number cell value.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int8:
		return decimal.NewFromInt(int64(x)), true
	case int16:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint, uint8, uint16, uint32, uint64:
		d, err := decimal.NewFromString(fmt.Sprint(x))
		return d, err == nil
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	}
	return decimal.Zero, false
}
