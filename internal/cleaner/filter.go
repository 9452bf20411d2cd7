package cleaner

import "github.com/vvka-141/catload/pkg/catload"

// filterValue drops every row whose column holds the integer value.
// ok is false when the column does not exist; the table is then returned as is.
func filterValue(t *catload.Table, column string, value int64) (out *catload.Table, dropped int, ok bool) {
	idx := t.ColumnIndex(column)
	if column == "" || idx < 0 {
		return t, 0, false
	}

	out = &catload.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if n, isInt := row[idx].Int64(); isInt && n == value {
			dropped++
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out, dropped, true
}
