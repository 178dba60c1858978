package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordExport(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector("test", registry)

	c.RecordExport("csv", "file", 3, 42, 10*time.Millisecond)
	c.RecordExport("csv", "file", 2, 8, time.Millisecond)
	c.RecordExport("dsv", "html", 0, 0, time.Millisecond)

	if got := testutil.ToFloat64(c.exports.WithLabelValues("csv", "file")); got != 2 {
		t.Errorf("Expected 2 csv file exports, got %v", got)
	}
	if got := testutil.ToFloat64(c.exports.WithLabelValues("dsv", "html")); got != 1 {
		t.Errorf("Expected 1 dsv link, got %v", got)
	}
	if got := testutil.ToFloat64(c.rows.WithLabelValues("csv")); got != 5 {
		t.Errorf("Expected 5 rows, got %v", got)
	}
	if got := testutil.ToFloat64(c.bytes.WithLabelValues("csv")); got != 50 {
		t.Errorf("Expected 50 bytes, got %v", got)
	}
	if got := testutil.CollectAndCount(c.rows); got != 1 {
		t.Errorf("Expected links not to create row series, got %d series", got)
	}
	if got := testutil.CollectAndCount(c.duration); got != 2 {
		t.Errorf("Expected 2 duration series, got %d", got)
	}
}

func TestCollector_RecordFailure(t *testing.T) {
	c := NewCollector("", nil)
	c.RecordFailure("csv", "params")
	c.RecordFailure("csv", "params")

	if got := testutil.ToFloat64(c.failures.WithLabelValues("csv", "params")); got != 2 {
		t.Errorf("Expected 2 failures, got %v", got)
	}
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	c.RecordExport("csv", "file", 1, 1, time.Second)
	c.RecordFailure("csv", "scan")
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("qprint", nil)
	c.RecordExport("dsv", "file", 1, 10, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `qprint_exports_total{format="dsv",mode="file"} 1`) {
		t.Errorf("Expected exports counter in body:\n%s", body)
	}
}
