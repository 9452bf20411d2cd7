package cleaner

import "github.com/vvka-141/catload/pkg/catload"

// dedupe drops exact full-row duplicates, keeping the first occurrence
// and the relative order of the survivors.
func dedupe(t *catload.Table) (*catload.Table, int) {
	seen := make(map[string]struct{}, len(t.Rows))
	out := &catload.Table{Columns: t.Columns, Rows: make([][]catload.Value, 0, len(t.Rows))}
	dropped := 0
	for _, row := range t.Rows {
		key := catload.RowKey(row)
		if _, dup := seen[key]; dup {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		out.Rows = append(out.Rows, row)
	}
	return out, dropped
}
