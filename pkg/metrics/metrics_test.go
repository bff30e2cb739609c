package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/pkg/metrics"
)

func TestMetrics_NilEsSeguro(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordFollowupOperation("created")
		m.ObserveHTTP("GET", "/api/clients", 200, time.Millisecond)
		m.TrackDBOperation("followup_insert")(time.Now())
		m.RecordExport("debtors", "csv")
	})
}

func TestMetrics_HandlerExponeContadores(t *testing.T) {
	m := metrics.New("cobranza_test")
	m.RecordFollowupOperation("created")
	m.RecordFollowupOperation("created")
	m.RecordExport("debtors", "csv")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `cobranza_test_followup_operations_total{operation="created"} 2`)
	assert.Contains(t, string(body), `cobranza_test_exports_total{format="csv",report="debtors"} 1`)
}
