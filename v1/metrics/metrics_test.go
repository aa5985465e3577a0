package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

func TestNewMetricsDefaults(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "qdrant-sink"})
	assert.Equal(t, DefaultMetricsAddress, m.Server.Addr)
	require.NotNil(t, m.Registry)
}

func TestRecordOperation(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "qdrant-sink", Namespace: "qdrant_sink"})

	m.RecordOperation("qdrant", "upsert", 20*time.Millisecond, 12, nil)
	m.RecordOperation("qdrant", "upsert", 30*time.Millisecond, 5, errors.New("unavailable"))
	m.RecordOperation("sink", "skip", 0, 1, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("qdrant", "upsert", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("qdrant", "upsert", statusError)))
	assert.Equal(t, 17.0, testutil.ToFloat64(m.operationItems.WithLabelValues("qdrant", "upsert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationItems.WithLabelValues("sink", "skip")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
}

func TestSinkObserver(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "qdrant-sink"})
	var observer observability.Observer = NewSinkObserver(m)

	observer.ObserveOperation(observability.OperationContext{
		Component: "sink",
		Operation: "reject",
		Size:      1,
		Error:     errors.New("bad vector"),
		Metadata:  map[string]string{"kind": "invalid_vector"},
	})
	observer.ObserveOperation(observability.OperationContext{
		Component: "sink",
		Operation: "reject",
		Size:      1,
	})
	observer.ObserveOperation(observability.OperationContext{
		Component: "kafka",
		Operation: "consume_batch",
		Duration:  time.Second,
		Size:      500,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejectedRecords.WithLabelValues("invalid_vector")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejectedRecords.WithLabelValues("unknown")))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.operationItems.WithLabelValues("kafka", "consume_batch")))
}

func TestCreateDynamicMetrics(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "qdrant-sink", Namespace: "qdrant_sink"})

	counter := m.CreateCounter("dead_letters_total", "Dead letters", []string{"topic"})
	counter.WithLabelValues("dlq").Add(2)
	gauge := m.CreateGauge("batch_size", "Batch size", []string{"topic"})
	gauge.WithLabelValues("embeddings").Set(500)
	hist := m.CreateHistogram("commit_seconds", "Commit latency", []string{"topic"}, []float64{0.1, 1})
	hist.WithLabelValues("embeddings").Observe(0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(counter.WithLabelValues("dlq")))
	assert.Equal(t, 500.0, testutil.ToFloat64(gauge.WithLabelValues("embeddings")))
	assert.Panics(t, func() { m.CreateCounter("dead_letters_total", "Dead letters", []string{"topic"}) })
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "qdrant-sink", Namespace: "qdrant_sink"})
	m.RecordOperation("qdrant", "upsert", time.Millisecond, 3, nil)

	server := httptest.NewServer(m.Server.Handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `qdrant_sink_operations_total{component="qdrant",operation="upsert",service="qdrant-sink",status="success"} 1`)
}
