package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"insightflow/pkg/contracts/domain"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	t.Run("first sheet with header row", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"date", "revenue", "users"},
			{"2024-01-01", 25000, 1200},
			{"2024-01-02", 28000, 1350},
		})

		records, err := ParseXLSX(data)
		require.NoError(t, err)
		require.Len(t, records, 2)

		first := records[0]
		assert.Equal(t, []string{"date", "revenue", "users"}, first.Columns())
		assert.Equal(t, "2024-01-01", first.Get("date").Str)
		assert.Equal(t, domain.KindNumber, first.Get("revenue").Kind)
		assert.Equal(t, float64(25000), first.Get("revenue").Num)
	})

	t.Run("empty sheet yields zero records", func(t *testing.T) {
		data := buildWorkbook(t, nil)
		records, err := ParseXLSX(data)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("short rows leave trailing columns missing", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"a", "b", "c"},
			{1, 2},
		})

		records, err := ParseXLSX(data)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, float64(2), records[0].Get("b").Num)
		assert.True(t, records[0].Get("c").IsMissing())
	})

	t.Run("not a workbook is a parse error", func(t *testing.T) {
		_, err := ParseXLSX([]byte("definitely not a zip"))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, FormatXLSX, parseErr.Format)
	})
}
