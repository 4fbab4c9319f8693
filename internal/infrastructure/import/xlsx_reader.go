package csvimport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readFirstSheet decodes the first worksheet of a workbook into a header
// row and raw data records. Trailing empty cells are not padded here.
func readFirstSheet(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoSheets
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil, ErrMissingHeader
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) == 0 {
		return nil, nil, ErrMissingHeader
	}
	return header, records[1:], nil
}

// parseSpreadsheet converts the first sheet into rows. Missing cells read
// as "", completely empty rows are skipped but still count for line numbers.
func parseSpreadsheet(data []byte) ([]*Row, error) {
	header, records, err := readFirstSheet(data)
	if err != nil {
		return nil, err
	}

	rows := make([]*Row, 0, len(records))
	for i, record := range records {
		values := make([]string, len(record))
		for j, v := range record {
			values[j] = strings.TrimSpace(v)
		}
		row := NewRow(i+2, header, values)
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
