// Package metrics counts and times tool calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	integral "github.com/JpHernandez277/Pendientes-John"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "integral_requests_total",
			Help: "Tool calls by operation, method and outcome.",
		}, []string{"operation", "method", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "integral_duration_seconds",
			Help:    "Tool call latency by operation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"operation"}),
	}
}

// Observe records one call. outcome is "ok" or an integral.ErrorKind.
func (m *Metrics) Observe(operation, method, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(operation, method, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// operations are the tool names used as label values; any other requested
// name is counted as "unknown".
var operations = map[string]bool{
	"normalize":           true,
	"definite_integral":   true,
	"indefinite_integral": true,
	"sample":              true,
	"examples":            true,
	"tool_spec":           true,
}

// Operation returns the label value for a requested tool name.
func Operation(tool string) string {
	if operations[tool] {
		return tool
	}
	return "unknown"
}

// Handle runs req through en and records it. A nil *Metrics records
// nothing.
func (m *Metrics) Handle(en *integral.Engine, req integral.ToolRequest) integral.ToolResponse {
	if m == nil {
		return en.HandleToolCall(req)
	}
	start := time.Now()
	resp := en.HandleToolCall(req)
	method := ""
	if req.Tool == "definite_integral" {
		method = integral.MethodNumeric.String()
		if s, ok := req.Params["method"].(string); ok {
			if mm, err := integral.ParseMethod(s); err == nil {
				method = mm.String()
			}
		}
	}
	m.Observe(Operation(req.Tool), method, Outcome(resp), time.Since(start))
	return resp
}

// Outcome labels a response: "ok", the failure kind of an integration
// error, or "invalid" for a rejected request.
func Outcome(resp integral.ToolResponse) string {
	switch {
	case resp.Error == "":
		return "ok"
	case resp.Kind != "":
		return resp.Kind
	}
	return "invalid"
}
