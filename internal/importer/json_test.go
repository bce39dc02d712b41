package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightflow/pkg/contracts/domain"
)

func TestParseJSON(t *testing.T) {
	t.Run("array of flat objects", func(t *testing.T) {
		records, err := ParseJSON([]byte(`[
			{"date": "2024-01-01", "revenue": 25000, "users": 1200},
			{"date": "2024-01-02", "revenue": 28000, "users": 1350}
		]`))
		require.NoError(t, err)
		require.Len(t, records, 2)

		first := records[0]
		assert.Equal(t, "2024-01-01", first.Get("date").Str)
		assert.Equal(t, float64(25000), first.Get("revenue").Num)
		assert.Equal(t, float64(1200), first.Get("users").Num)
	})

	t.Run("no coercion of numeric-looking strings", func(t *testing.T) {
		records, err := ParseJSON([]byte(`[{"revenue": "25000"}]`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		// A JSON string stays a string; downstream numeric interpretation
		// is the transformer's call, not the parser's.
		assert.Equal(t, domain.KindString, records[0].Get("revenue").Kind)
		assert.Equal(t, "25000", records[0].Get("revenue").Str)
	})

	t.Run("columns are sorted for determinism", func(t *testing.T) {
		records, err := ParseJSON([]byte(`[{"z": 1, "a": 2, "m": 3}]`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"a", "m", "z"}, records[0].Columns())
	})

	t.Run("null and bool values", func(t *testing.T) {
		records, err := ParseJSON([]byte(`[{"a": null, "b": true, "c": false}]`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Get("a").IsMissing())
		assert.Equal(t, "true", records[0].Get("b").Str)
		assert.Equal(t, "false", records[0].Get("c").Str)
	})

	t.Run("empty input yields zero records", func(t *testing.T) {
		records, err := ParseJSON(nil)
		require.NoError(t, err)
		assert.Empty(t, records)

		records, err = ParseJSON([]byte("  \n "))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty array yields zero records", func(t *testing.T) {
		records, err := ParseJSON([]byte("[]"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("malformed JSON is a parse error", func(t *testing.T) {
		_, err := ParseJSON([]byte(`{"not": "an array"}`))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, FormatJSON, parseErr.Format)
	})

	t.Run("nested objects are rejected", func(t *testing.T) {
		_, err := ParseJSON([]byte(`[{"nested": {"a": 1}}]`))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, err.Error(), "flat")
	})
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{filename: "data.csv", want: FormatCSV},
		{filename: "Data.CSV", want: FormatCSV},
		{filename: "export.json", want: FormatJSON},
		{filename: "book.xlsx", want: FormatXLSX},
		{filename: "notes.txt", wantErr: true},
		{filename: "noextension", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse(Format("yaml"), []byte("a: 1"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
