package importer

import (
	"strconv"
	"strings"

	"insightflow/pkg/contracts/domain"
)

// ParseCSV parses comma-separated text. The first line is the header row
// defining column names; tokens are trimmed. Each data cell is coerced to a
// number when it parses as one, else kept as a string.
//
// Cells are split on plain commas: a comma inside a quoted field is NOT
// handled. That is a documented limitation of the import format, not a bug.
// Column counts are not validated either; rows shorter than the header leave
// the trailing columns missing.
func ParseCSV(data []byte) ([]domain.Record, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	headers := splitRow(lines[0])

	records := make([]domain.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := splitRow(line)
		rec := domain.NewRecord(headers...)
		for i, header := range headers {
			if i >= len(cells) {
				break
			}
			rec.Set(header, coerceCell(cells[i]))
		}
		records = append(records, rec)
	}
	return records, nil
}

// splitRow splits a line on commas and trims each token.
func splitRow(line string) []string {
	parts := strings.Split(strings.TrimRight(line, "\r"), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// coerceCell turns a trimmed cell into a numeric value when it parses as a
// float, else a string value.
func coerceCell(cell string) domain.Value {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return domain.Number(f)
	}
	return domain.String(cell)
}
