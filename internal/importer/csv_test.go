package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightflow/pkg/contracts/domain"
)

func TestParseCSV(t *testing.T) {
	t.Run("sample template", func(t *testing.T) {
		records, err := ParseCSV([]byte(domain.TemplateCSV))
		require.NoError(t, err)
		require.Len(t, records, 5)

		first := records[0]
		assert.Equal(t, []string{"date", "revenue", "users", "conversion_rate"}, first.Columns())
		assert.Equal(t, domain.KindString, first.Get("date").Kind)
		assert.Equal(t, "2024-01-01", first.Get("date").Str)
		assert.Equal(t, domain.KindNumber, first.Get("revenue").Kind)
		assert.Equal(t, float64(25000), first.Get("revenue").Num)
		assert.Equal(t, float64(0.045), first.Get("conversion_rate").Num)
	})

	t.Run("empty input yields zero records", func(t *testing.T) {
		records, err := ParseCSV(nil)
		require.NoError(t, err)
		assert.Empty(t, records)

		records, err = ParseCSV([]byte("   \n  \n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("header only yields zero records", func(t *testing.T) {
		records, err := ParseCSV([]byte("date,revenue"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("tokens are trimmed", func(t *testing.T) {
		records, err := ParseCSV([]byte(" name , value \n  widget ,  12  "))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"name", "value"}, records[0].Columns())
		assert.Equal(t, "widget", records[0].Get("name").Str)
		assert.Equal(t, float64(12), records[0].Get("value").Num)
	})

	t.Run("windows line endings", func(t *testing.T) {
		records, err := ParseCSV([]byte("a,b\r\n1,2\r\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, float64(2), records[0].Get("b").Num)
	})

	t.Run("short rows leave trailing columns missing", func(t *testing.T) {
		records, err := ParseCSV([]byte("a,b,c\n1,2"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, float64(1), records[0].Get("a").Num)
		assert.Equal(t, float64(2), records[0].Get("b").Num)
		assert.True(t, records[0].Get("c").IsMissing())
		assert.False(t, records[0].Has("c"))
	})

	t.Run("numeric coercion per cell", func(t *testing.T) {
		records, err := ParseCSV([]byte("v\n-12.5\nabc\n1e3"))
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, domain.KindNumber, records[0].Get("v").Kind)
		assert.Equal(t, -12.5, records[0].Get("v").Num)
		assert.Equal(t, domain.KindString, records[1].Get("v").Kind)
		assert.Equal(t, domain.KindNumber, records[2].Get("v").Kind)
		assert.Equal(t, float64(1000), records[2].Get("v").Num)
	})

	t.Run("quoted fields are split on their commas", func(t *testing.T) {
		// Quoting is not interpreted; a comma inside quotes shifts columns.
		records, err := ParseCSV([]byte("name,value\n\"Acme, Inc\",5"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, `"Acme`, records[0].Get("name").Str)
		assert.Equal(t, `Inc"`, records[0].Get("value").Str)
	})
}
