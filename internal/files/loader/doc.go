// Package loader reads the messages and categories sources and left-joins
// them into a single table.
//
// Sources are comma-separated text with a header row, or .xlsx workbooks
// (first sheet, first row is the header). Empty cells load as null and each
// column's kind is inferred from its non-null cells: integer, then real,
// then text.
//
// The join keeps every message row in source order. A message whose id has
// several category rows yields one joined row per match; a message with no
// match carries null in every category-side column.
package loader
