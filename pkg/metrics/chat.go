package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ChatMetrics counts completion outcomes of the chat pipeline.
type ChatMetrics struct {
	completions *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
}

// NewChatMetrics registers the chat pipeline metrics on the provided registerer.
func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	if reg == nil {
		return &ChatMetrics{}
	}
	completions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_completions_total",
		Help: "Successful chat completions by query type.",
	}, []string{"query_type"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_fallbacks_total",
		Help: "Chat fallback responses by failure reason.",
	}, []string{"reason"})
	reg.MustRegister(completions, fallbacks)
	return &ChatMetrics{
		completions: completions,
		fallbacks:   fallbacks,
	}
}

// IncCompletion counts a successful completion for the classified query type.
func (c *ChatMetrics) IncCompletion(queryType string) {
	if c == nil || c.completions == nil {
		return
	}
	c.completions.WithLabelValues(normalizeLabel(queryType)).Inc()
}

// IncFallback counts a fallback response for the given failure reason.
func (c *ChatMetrics) IncFallback(reason string) {
	if c == nil || c.fallbacks == nil {
		return
	}
	c.fallbacks.WithLabelValues(normalizeLabel(reason)).Inc()
}
