package loader

import (
	"strconv"

	"github.com/vvka-141/catload/pkg/catload"
)

// BuildTable converts raw records into a typed table.
// Empty cells become null. A column is integer when every non-null cell parses
// as int64, real when every non-null cell parses as float64, and text otherwise.
func BuildTable(header []string, records [][]string) *catload.Table {
	t := &catload.Table{
		Columns: make([]catload.Column, len(header)),
		Rows:    make([][]catload.Value, len(records)),
	}
	for i := range t.Rows {
		t.Rows[i] = make([]catload.Value, len(header))
	}

	for col, name := range header {
		kind := inferKind(records, col)
		t.Columns[col] = catload.Column{Name: name, Kind: kind}
		for row, rec := range records {
			t.Rows[row][col] = convert(rec[col], kind)
		}
	}
	return t
}

func inferKind(records [][]string, col int) catload.Kind {
	allInt, allReal, seen := true, true, false
	for _, rec := range records {
		s := rec[col]
		if s == "" {
			continue
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				allInt = false
			}
		}
		if !allInt {
			if _, err := strconv.ParseFloat(s, 64); err != nil || !isDecimal(s) {
				allReal = false
				break
			}
		}
	}

	switch {
	case !seen:
		return catload.KindText
	case allInt:
		return catload.KindInteger
	case allReal:
		return catload.KindReal
	}
	return catload.KindText
}

func convert(s string, kind catload.Kind) catload.Value {
	if s == "" {
		return catload.Null()
	}
	switch kind {
	case catload.KindInteger:
		n, _ := strconv.ParseInt(s, 10, 64)
		return catload.Int(n)
	case catload.KindReal:
		f, _ := strconv.ParseFloat(s, 64)
		return catload.Real(f)
	}
	return catload.Text(s)
}

// isDecimal reports whether s is written in plain decimal notation.
// ParseFloat also accepts NaN, Inf and hex floats, which stay text here.
func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}
