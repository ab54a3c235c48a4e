package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_DomainCounters(t *testing.T) {
	c := NewCollector("vetmed")

	c.ObserveCalculation(true)
	c.ObserveCalculation(false)
	c.ObserveCalculation(false)
	c.ObserveScan(false)
	c.ObserveConflict()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.DosageCalculations.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.DosageCalculations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BarcodeScans.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BarcodeConflicts))
}

func TestCollector_ObserveRequest(t *testing.T) {
	c := NewCollector("vetmed")
	c.ObserveRequest("GET", "/api/medications/{id}", 404, 3*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.RequestsTotal.WithLabelValues("GET", "/api/medications/{id}", "404")))
}

func TestCollector_NilIsSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveCalculation(true)
		c.ObserveScan(true)
		c.ObserveConflict()
		c.ObserveRequest("GET", "/", 200, time.Second)
	})
}

func TestCollector_TwoInstancesDoNotCollide(t *testing.T) {
	a := NewCollector("vetmed")
	b := NewCollector("vetmed")
	a.ObserveConflict()

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "vetmed_barcode_conflicts_total 0")
}
