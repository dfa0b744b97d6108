package metrics

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var collectorNamespaceSeq uint64

func nextTestNamespace() string {
	seq := atomic.AddUint64(&collectorNamespaceSeq, 1)
	return fmt.Sprintf("test_%d", seq)
}

func TestNewCollector(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.httpRequestsTotal)
	assert.NotNil(t, collector.turnsTotal)
	assert.NotNil(t, collector.selectionsTotal)
	assert.NotNil(t, collector.completionFailures)
	assert.NotNil(t, collector.llmRequestsTotal)
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordHTTPRequest("POST", "/v1/groups/{id}/messages", 200, 100*time.Millisecond)
	collector.RecordHTTPRequest("POST", "/v1/groups/{id}/messages", 400, 5*time.Millisecond)

	count := testutil.CollectAndCount(collector.httpRequestsTotal)
	assert.Equal(t, 2, count)
}

func TestCollector_ObserveTurn(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.ObserveTurn("marketing-team", 2, 3*time.Second)
	collector.ObserveTurn("marketing-team", 1, time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(collector.turnsTotal.WithLabelValues("marketing-team")), 0.001)
}

func TestCollector_RecordSelection(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordSelection("mention")
	collector.RecordSelection("arbiter")
	collector.RecordSelection("arbiter")

	assert.InDelta(t, 1, testutil.ToFloat64(collector.selectionsTotal.WithLabelValues("mention")), 0.001)
	assert.InDelta(t, 2, testutil.ToFloat64(collector.selectionsTotal.WithLabelValues("arbiter")), 0.001)
}

func TestCollector_RecordCompletionFailure(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordCompletionFailure("reply")
	assert.InDelta(t, 1, testutil.ToFloat64(collector.completionFailures.WithLabelValues("reply")), 0.001)
}

func TestCollector_RecordLLMRequest(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordLLMRequest("mistral", "mistral-small-latest", "success", 500*time.Millisecond, 100, 50)

	assert.InDelta(t, 1, testutil.ToFloat64(collector.llmRequestsTotal.WithLabelValues("mistral", "mistral-small-latest", "success")), 0.001)
	assert.InDelta(t, 100, testutil.ToFloat64(collector.llmTokensUsed.WithLabelValues("mistral", "mistral-small-latest", "prompt")), 0.001)
	assert.InDelta(t, 50, testutil.ToFloat64(collector.llmTokensUsed.WithLabelValues("mistral", "mistral-small-latest", "completion")), 0.001)
}

func TestCollector_RecordStoreOperation(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordStoreOperation("append", 2*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(collector.storeOperationDuration))
}
