package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"insightflow/pkg/contracts/domain"
)

// ParseXLSX parses the first sheet of an Excel workbook. The first row is the
// header; cells follow the same numeric coercion as CSV. A workbook without
// sheets or with an empty first sheet yields zero records.
func ParseXLSX(data []byte) ([]domain.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("sheet %q: %w", sheets[0], err)}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := domain.NewRecord(headers...)
		for i, header := range headers {
			if i >= len(row) {
				break
			}
			rec.Set(header, coerceCell(strings.TrimSpace(row[i])))
		}
		records = append(records, rec)
	}
	return records, nil
}
