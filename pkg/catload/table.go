package catload

import (
	"fmt"
	"strconv"
)

// Kind is the storage class of a column or a single value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a single table cell.
// The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInteger, i: v} }

// Real returns a floating point value.
func Real(v float64) Value { return Value{kind: KindReal, f: v} }

// Text returns a text value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer payload; ok is false for non-integer values.
func (v Value) Int64() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// String renders the value the way it appeared in a text source.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	}
	return ""
}

// Key returns a canonical, kind-tagged encoding of the value.
// Two values have equal keys exactly when they are equal.
func (v Value) Key() string {
	switch v.kind {
	case KindInteger:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindReal:
		return "r:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return "t:" + v.s
	}
	return "n:"
}

// SQL returns the value as a database/sql driver value.
func (v Value) SQL() any {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindReal:
		return v.f
	case KindText:
		return v.s
	}
	return nil
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Table is an in-memory relation: an ordered column schema and rows whose
// cells line up with it.
type Table struct {
	Columns []Column
	Rows    [][]Value
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]Column(nil), t.Columns...),
		Rows:    make([][]Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]Value(nil), row...)
	}
	return out
}

// RowKey returns the canonical encoding of a whole row, used for duplicate detection.
func RowKey(row []Value) string {
	n := 0
	keys := make([]string, len(row))
	for i, v := range row {
		keys[i] = v.Key()
		n += len(keys[i]) + 8
	}
	b := make([]byte, 0, n)
	for _, k := range keys {
		// Length prefix keeps "a|b" and "a" + "|b" apart.
		b = strconv.AppendInt(b, int64(len(k)), 10)
		b = append(b, ':')
		b = append(b, k...)
	}
	return string(b)
}

// Validate checks that every row matches the column schema: same width,
// and every non-null cell has its column's kind (integers are accepted in
// real columns).
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table has no columns")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values, schema has %d columns", i+1, len(row), len(t.Columns))
		}
		for j, v := range row {
			if v.IsNull() {
				continue
			}
			want := t.Columns[j].Kind
			if v.kind == want || (want == KindReal && v.kind == KindInteger) {
				continue
			}
			return fmt.Errorf("row %d column %q: %s value in %s column", i+1, t.Columns[j].Name, v.kind, want)
		}
	}
	return nil
}
