package cleaner

import (
	"fmt"
	"strings"

	"github.com/vvka-141/catload/pkg/catload"
)

// token is one decoded name-value pair.
type token struct {
	name  string
	value int64
}

// parseToken splits "name-v" into its name and single-digit value.
func parseToken(raw string) (token, error) {
	if len(raw) < 3 {
		return token{}, fmt.Errorf("token %q is too short", raw)
	}
	if raw[len(raw)-2] != '-' {
		return token{}, fmt.Errorf("token %q has no '-' before its value", raw)
	}
	d := raw[len(raw)-1]
	if d < '0' || d > '9' {
		return token{}, fmt.Errorf("token %q has non-numeric value %q", raw, string(d))
	}
	return token{name: raw[:len(raw)-2], value: int64(d - '0')}, nil
}

// splitTokens parses a whole categories field.
func splitTokens(field, sep string) ([]token, error) {
	parts := strings.Split(field, sep)
	out := make([]token, len(parts))
	for i, p := range parts {
		tok, err := parseToken(p)
		if err != nil {
			return nil, err
		}
		out[i] = tok
	}
	return out, nil
}

// CategoryNames derives the column names from one categories field.
func CategoryNames(field, sep string) ([]string, error) {
	toks, err := splitTokens(field, sep)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, catload.ErrParse)
	}
	names := make([]string, len(toks))
	seen := make(map[string]struct{}, len(toks))
	for i, tok := range toks {
		if _, dup := seen[tok.name]; dup {
			return nil, fmt.Errorf("category %q appears twice: %w", tok.name, catload.ErrParse)
		}
		seen[tok.name] = struct{}{}
		names[i] = tok.name
	}
	return names, nil
}

// decode replaces column ci with one integer column per category.
// The category set is fixed by the first non-null field; every other
// non-null field must carry the same names in the same order.
func decode(t *catload.Table, ci int, sep string) (*catload.Table, []string, error) {
	var names []string
	for i, row := range t.Rows {
		if row[ci].IsNull() {
			continue
		}
		var err error
		names, err = CategoryNames(row[ci].String(), sep)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		break
	}

	out := &catload.Table{}
	retained := make(map[string]bool, len(t.Columns))
	for i, col := range t.Columns {
		if i == ci {
			continue
		}
		out.Columns = append(out.Columns, col)
		retained[col.Name] = true
	}
	for _, name := range names {
		if retained[name] {
			return nil, nil, fmt.Errorf("category %q collides with an existing column: %w", name, catload.ErrParse)
		}
		out.Columns = append(out.Columns, catload.Column{Name: name, Kind: catload.KindInteger})
	}

	out.Rows = make([][]catload.Value, len(t.Rows))
	for i, row := range t.Rows {
		newRow := make([]catload.Value, 0, len(out.Columns))
		for j, v := range row {
			if j != ci {
				newRow = append(newRow, v)
			}
		}

		if row[ci].IsNull() {
			for range names {
				newRow = append(newRow, catload.Null())
			}
			out.Rows[i] = newRow
			continue
		}

		toks, err := splitTokens(row[ci].String(), sep)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %v: %w", i+1, err, catload.ErrParse)
		}
		if len(toks) != len(names) {
			return nil, nil, fmt.Errorf("row %d: expected %d category tokens, got %d: %w",
				i+1, len(names), len(toks), catload.ErrParse)
		}
		for k, tok := range toks {
			if tok.name != names[k] {
				return nil, nil, fmt.Errorf("row %d: token %d is %q, expected %q: %w",
					i+1, k+1, tok.name, names[k], catload.ErrParse)
			}
			newRow = append(newRow, catload.Int(tok.value))
		}
		out.Rows[i] = newRow
	}

	return out, names, nil
}
