// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlreport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncName is the default charset of CSV files, taken from $LANG.
var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

// GetEncoding returns the named encoding, nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// ReadCSV reads the CSV file fn ("-" is stdin) as the dataset key.
// The separator is sniffed from the header, the first record names the columns.
func ReadCSV(key, fn, encName string) (Dataset, error) {
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return Dataset{}, err
		}
		defer fh.Close()
	}
	enc, err := GetEncoding(encName)
	if err != nil {
		return Dataset{}, err
	}
	ds, err := DecodeCSV(key, fh, enc)
	if err != nil {
		return ds, fmt.Errorf("%s: %w", fn, err)
	}
	return ds, nil
}

// DecodeCSV reads a dataset from r, decoding it with enc if not nil.
func DecodeCSV(key string, r io.Reader, enc encoding.Encoding) (Dataset, error) {
	ds := Dataset{Key: key}
	// A leading BOM (as Excel writes it) selects UTF-8/16 over enc.
	var fallback transform.Transformer = transform.Nop
	if enc != nil {
		fallback = enc.NewDecoder()
	}
	r = transform.NewReader(r, xunicode.BOMOverride(fallback))
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		if errors.Is(err, io.EOF) {
			return ds, &EmptyDatasetError{Dataset: key}
		}
		return ds, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '"' || r == '_' || r == ' ' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.Comma = sep
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ds, &EmptyDatasetError{Dataset: key}
		}
		return ds, err
	}
	records, err := cr.ReadAll()
	if err != nil {
		return ds, err
	}

	ds.Columns = make([]Column, len(header))
	for i, name := range header {
		ds.Columns[i] = Column{Name: strings.TrimSpace(name), Type: inferType(records, i)}
	}
	ds.Rows = make([][]any, len(records))
	for r, rec := range records {
		row := make([]any, len(header))
		for i, s := range rec {
			if i >= len(row) {
				break
			}
			row[i] = parseCell(ds.Columns[i].Type, s)
		}
		ds.Rows[r] = row
	}
	return ds, nil
}

const csvDateLayout = "2006-01-02"

func inferType(records [][]string, i int) ColumnType {
	isNumber, isDate, seen := true, true, false
	for _, rec := range records {
		if i >= len(rec) || rec[i] == "" {
			continue
		}
		seen = true
		if isNumber {
			_, err := strconv.ParseFloat(rec[i], 64)
			isNumber = err == nil
		}
		if isDate {
			_, err := time.Parse(csvDateLayout, rec[i])
			isDate = err == nil
		}
		if !isNumber && !isDate {
			return String
		}
	}
	switch {
	case !seen:
		return String
	case isNumber:
		return Number
	case isDate:
		return Date
	}
	return String
}

func parseCell(typ ColumnType, s string) any {
	if s == "" {
		return nil
	}
	switch typ {
	case Number:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		f, _ := strconv.ParseFloat(s, 64)
		return f
	case Date:
		t, _ := time.Parse(csvDateLayout, s)
		return t
	}
	return s
}
