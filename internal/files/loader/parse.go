package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/vvka-141/catload/pkg/catload"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseCSV splits comma-separated content into a header and records.
// Every record must have as many fields as the header.
func parseCSV(content []byte) ([]string, [][]string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return nil, nil, fmt.Errorf("content is not valid UTF-8: %w", catload.ErrParse)
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = 0

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("missing header row: %w", catload.ErrParse)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", err, catload.ErrParse)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%v: %w", err, catload.ErrParse)
		}
		records = append(records, rec)
	}

	return header, records, nil
}

// parseXLSX reads the first sheet of a workbook. The first non-empty row is the header.
// Short rows are padded with empty cells; rows wider than the header are rejected.
func parseXLSX(content []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %v: %w", err, catload.ErrParse)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets: %w", catload.ErrParse)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %v: %w", sheets[0], err, catload.ErrParse)
	}

	var header []string
	var records [][]string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		if len(row) > len(header) {
			return nil, nil, fmt.Errorf("sheet %q row %d has %d cells, header has %d: %w",
				sheets[0], i+1, len(row), len(header), catload.ErrParse)
		}
		rec := make([]string, len(header))
		copy(rec, row)
		records = append(records, rec)
	}

	if header == nil {
		return nil, nil, fmt.Errorf("missing header row: %w", catload.ErrParse)
	}
	return header, records, nil
}
