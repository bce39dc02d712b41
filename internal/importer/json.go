package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"insightflow/pkg/contracts/domain"
)

// ParseJSON parses a JSON array of flat objects, one record per object.
// Values are preserved as-is with no coercion: JSON strings stay strings even
// when they look numeric. Empty input yields zero records. Anything that is
// not an array of objects is a ParseError.
func ParseJSON(data []byte) ([]domain.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, &ParseError{Format: FormatJSON, Err: err}
	}

	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		rec := domain.NewRecord()
		// JSON object keys carry no order; sort them for determinism.
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, err := jsonValue(row[k])
			if err != nil {
				return nil, &ParseError{Format: FormatJSON, Err: fmt.Errorf("row %d, key %q: %w", i, k, err)}
			}
			rec.Set(k, v)
		}
		records = append(records, rec)
	}
	return records, nil
}

func jsonValue(raw any) (domain.Value, error) {
	switch v := raw.(type) {
	case nil:
		return domain.Missing, nil
	case string:
		return domain.String(v), nil
	case bool:
		if v {
			return domain.String("true"), nil
		}
		return domain.String("false"), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return domain.Missing, err
		}
		return domain.Number(f), nil
	default:
		return domain.Missing, fmt.Errorf("unsupported value type %T (objects must be flat)", raw)
	}
}
