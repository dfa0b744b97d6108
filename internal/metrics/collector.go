package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector owns the service's Prometheus metrics. It satisfies
// group.TurnMetrics so the orchestrator can report without importing this
// package.
type Collector struct {
	// HTTP surface
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// group turns
	turnsTotal         *prometheus.CounterVec
	turnDuration       *prometheus.HistogramVec
	turnResponders     *prometheus.HistogramVec
	selectionsTotal    *prometheus.CounterVec
	completionFailures *prometheus.CounterVec

	// completion provider
	llmRequestsTotal   *prometheus.CounterVec
	llmRequestDuration *prometheus.HistogramVec
	llmTokensUsed      *prometheus.CounterVec

	// conversation log backend
	storeOperationDuration *prometheus.HistogramVec

	logger *zap.Logger
}

// NewCollector registers all metrics under namespace on the default
// registry.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	c.httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	c.turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "group_turns_total",
			Help:      "Total number of processed group turns",
		},
		[]string{"group_id"},
	)

	c.turnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "group_turn_duration_seconds",
			Help:      "End-to-end group turn duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"group_id"},
	)

	c.turnResponders = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "group_turn_responders",
			Help:      "Number of responders per group turn",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		},
		[]string{"group_id"},
	)

	c.selectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responder_selections_total",
			Help:      "Total responder selections by outcome",
		},
		[]string{"outcome"}, // mention, arbiter, fallback
	)

	c.completionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_failures_total",
			Help:      "Total completion failures by pipeline stage",
		},
		[]string{"stage"}, // arbiter, reply
	)

	c.llmRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of LLM requests",
		},
		[]string{"provider", "model", "status"},
	)

	c.llmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider", "model"},
	)

	c.llmTokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_used_total",
			Help:      "Total number of tokens used",
		},
		[]string{"provider", "model", "type"}, // type: prompt, completion
	)

	c.storeOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Conversation log operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, statusCode(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveTurn records one completed group turn.
func (c *Collector) ObserveTurn(groupID string, responders int, d time.Duration) {
	c.turnsTotal.WithLabelValues(groupID).Inc()
	c.turnDuration.WithLabelValues(groupID).Observe(d.Seconds())
	c.turnResponders.WithLabelValues(groupID).Observe(float64(responders))
}

// RecordSelection records how a turn's responders were chosen.
func (c *Collector) RecordSelection(outcome string) {
	c.selectionsTotal.WithLabelValues(outcome).Inc()
}

// RecordCompletionFailure records a degraded completion call.
func (c *Collector) RecordCompletionFailure(stage string) {
	c.completionFailures.WithLabelValues(stage).Inc()
}

// RecordLLMRequest records one completion provider call.
func (c *Collector) RecordLLMRequest(provider, model, status string, duration time.Duration, promptTokens, completionTokens int) {
	c.llmRequestsTotal.WithLabelValues(provider, model, status).Inc()
	c.llmRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
	c.llmTokensUsed.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
	c.llmTokensUsed.WithLabelValues(provider, model, "completion").Add(float64(completionTokens))
}

// RecordStoreOperation records one conversation log call.
func (c *Collector) RecordStoreOperation(operation string, duration time.Duration) {
	c.storeOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// statusCode buckets an HTTP status for the label.
func statusCode(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
