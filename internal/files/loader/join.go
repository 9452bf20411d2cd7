package loader

import (
	"fmt"

	"github.com/vvka-141/catload/pkg/catload"
)

// LeftJoin joins right onto left on the key column.
//
// Output columns are left's columns followed by right's non-key columns.
// Non-key names present on both sides get catload.LeftSuffix and
// catload.RightSuffix. Keys compare by their text form, so an integer id
// matches the same id stored as text. Null keys never match.
func LeftJoin(left, right *catload.Table, key string) (*catload.Table, error) {
	li := left.ColumnIndex(key)
	if li < 0 {
		return nil, fmt.Errorf("left table has no %q column: %w", key, catload.ErrParse)
	}
	ri := right.ColumnIndex(key)
	if ri < 0 {
		return nil, fmt.Errorf("right table has no %q column: %w", key, catload.ErrParse)
	}

	leftNames := make(map[string]bool, len(left.Columns))
	for _, c := range left.Columns {
		leftNames[c.Name] = true
	}
	rightNames := make(map[string]bool, len(right.Columns))
	for i, c := range right.Columns {
		if i != ri {
			rightNames[c.Name] = true
		}
	}

	out := &catload.Table{}
	for _, c := range left.Columns {
		if c.Name != key && rightNames[c.Name] {
			c.Name += catload.LeftSuffix
		}
		out.Columns = append(out.Columns, c)
	}
	var rightCols []int
	for i, c := range right.Columns {
		if i == ri {
			continue
		}
		if leftNames[c.Name] {
			c.Name += catload.RightSuffix
		}
		out.Columns = append(out.Columns, c)
		rightCols = append(rightCols, i)
	}

	matches := make(map[string][]int)
	for i, row := range right.Rows {
		k := row[ri]
		if k.IsNull() {
			continue
		}
		matches[k.String()] = append(matches[k.String()], i)
	}

	for _, lrow := range left.Rows {
		var hits []int
		if k := lrow[li]; !k.IsNull() {
			hits = matches[k.String()]
		}
		if len(hits) == 0 {
			row := make([]catload.Value, 0, len(out.Columns))
			row = append(row, lrow...)
			for range rightCols {
				row = append(row, catload.Null())
			}
			out.Rows = append(out.Rows, row)
			continue
		}
		for _, h := range hits {
			row := make([]catload.Value, 0, len(out.Columns))
			row = append(row, lrow...)
			for _, c := range rightCols {
				row = append(row, right.Rows[h][c])
			}
			out.Rows = append(out.Rows, row)
		}
	}

	return out, nil
}
