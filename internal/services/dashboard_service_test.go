package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightflow/internal/dashboard"
	"insightflow/internal/importer"
	"insightflow/internal/transform"
	"insightflow/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDashboardService(t *testing.T) (*DashboardService, *dashboard.Store) {
	t.Helper()
	store := dashboard.NewStore(domain.DefaultDataset(), time.Hour, testLogger())
	svc := NewDashboardService(store, transform.New(transform.DefaultKeyPriority()), testLogger())
	return svc, store
}

func TestImportFileCSV(t *testing.T) {
	svc, store := newDashboardService(t)

	summary, err := svc.ImportFile(context.Background(), "s1", "data.csv", []byte(domain.TemplateCSV))
	require.NoError(t, err)

	assert.Equal(t, "csv", summary.Format)
	assert.Equal(t, 5, summary.RecordCount)
	assert.Equal(t, 1, summary.MetricCount)

	ds := store.Get("s1")
	assert.Equal(t, domain.SourceFile, ds.Source)
	require.Len(t, ds.Metrics, 1)
	assert.Equal(t, "Total Revenue", ds.Metrics[0].Title)
	assert.Equal(t, float64(149000), ds.Metrics[0].Value)
	assert.Len(t, ds.Charts.Revenue, 5)
	assert.Len(t, ds.Raw, 5)
	// The default layout travels along so the capture view stays arranged.
	assert.Len(t, ds.Widgets, 5)
}

func TestImportFileJSON(t *testing.T) {
	svc, store := newDashboardService(t)

	summary, err := svc.ImportFile(context.Background(), "s1", "data.json",
		[]byte(`[{"date":"2024-01-01","revenue":25000}]`))
	require.NoError(t, err)
	assert.Equal(t, "json", summary.Format)
	assert.Equal(t, 1, summary.RecordCount)
	assert.Equal(t, domain.SourceFile, store.Get("s1").Source)
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	svc, store := newDashboardService(t)

	_, err := svc.ImportFile(context.Background(), "s1", "data.txt", []byte("whatever"))
	assert.True(t, errors.Is(err, importer.ErrUnsupportedFormat))
	assert.Equal(t, domain.SourceMock, store.Get("s1").Source)
}

// A failed import must leave the previous dataset untouched, whether that is
// the default or an earlier successful import.
func TestImportFileFailureKeepsLastGood(t *testing.T) {
	svc, store := newDashboardService(t)

	_, err := svc.ImportFile(context.Background(), "s1", "good.csv", []byte(domain.TemplateCSV))
	require.NoError(t, err)
	imported := store.Get("s1")

	_, err = svc.ImportFile(context.Background(), "s1", "bad.json", []byte("{not json"))
	var parseErr *importer.ParseError
	require.ErrorAs(t, err, &parseErr)

	assert.Equal(t, imported.ImportedAt, store.Get("s1").ImportedAt)
	assert.Equal(t, imported.Metrics, store.Get("s1").Metrics)
}

func TestImportManual(t *testing.T) {
	svc, store := newDashboardService(t)

	summary, err := svc.ImportManual(context.Background(), "s1", []transform.ManualEntry{
		{Date: "2024-01-01", Revenue: 25000, Users: 1200},
	})
	require.NoError(t, err)
	assert.Equal(t, "manual", summary.Format)
	assert.Equal(t, 2, summary.MetricCount)
	assert.Equal(t, domain.SourceManual, store.Get("s1").Source)
}

func TestImportManualEmpty(t *testing.T) {
	svc, _ := newDashboardService(t)

	_, err := svc.ImportManual(context.Background(), "s1", nil)
	assert.True(t, errors.Is(err, ErrNoEntries))
}

func TestTemplate(t *testing.T) {
	svc, _ := newDashboardService(t)
	assert.Equal(t, []byte(domain.TemplateCSV), svc.Template())
}

func TestSetDateRange(t *testing.T) {
	svc, _ := newDashboardService(t)

	ds, err := svc.SetDateRange(context.Background(), "s1", "30d")
	require.NoError(t, err)
	assert.Equal(t, "30d", ds.DateRange)

	_, err = svc.SetDateRange(context.Background(), "s1", "1y")
	assert.True(t, errors.Is(err, ErrInvalidDateRange))
}

func TestDashboardAppliesFilter(t *testing.T) {
	svc, _ := newDashboardService(t)

	ds := svc.Dashboard(context.Background(), "s1")
	// Default range 7d trims the 12-month default series to 7 points.
	assert.Len(t, ds.Charts.Revenue, 7)
}
