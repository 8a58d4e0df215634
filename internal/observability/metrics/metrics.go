package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the conversation flows.
type ChatMetrics struct {
	turnsTotal      *prometheus.CounterVec
	llmFailures     prometheus.Counter
	llmLatency      prometheus.Histogram
	extractionTotal *prometheus.CounterVec
	riskTotal       *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ashadidi",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total chat turns served",
		}, []string{"intent", "emergency"}),
		llmFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ashadidi",
			Subsystem: "llm",
			Name:      "failures_total",
			Help:      "Total LLM calls that ended in the fallback message",
		}),
		llmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ashadidi",
			Subsystem: "llm",
			Name:      "latency_seconds",
			Help:      "Latency of LLM completions",
			Buckets:   prometheus.DefBuckets,
		}),
		extractionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ashadidi",
			Subsystem: "visits",
			Name:      "extractions_total",
			Help:      "Total visit-note extractions",
		}, []string{"status"}),
		riskTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ashadidi",
			Subsystem: "risk",
			Name:      "assessments_total",
			Help:      "Total symptom risk assessments",
		}, []string{"status", "red_flag"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.llmFailures, m.llmLatency, m.extractionTotal, m.riskTotal)
	return m
}

func (m *ChatMetrics) ObserveTurn(intent string, emergency bool) {
	if m == nil {
		return
	}
	label := "false"
	if emergency {
		label = "true"
	}
	m.turnsTotal.WithLabelValues(intent, label).Inc()
}

func (m *ChatMetrics) ObserveLLMFailure() {
	if m == nil {
		return
	}
	m.llmFailures.Inc()
}

func (m *ChatMetrics) ObserveLLMLatency(seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.Observe(seconds)
}

func (m *ChatMetrics) ObserveExtraction(status string) {
	if m == nil {
		return
	}
	m.extractionTotal.WithLabelValues(status).Inc()
}

func (m *ChatMetrics) ObserveRiskAssessment(status string, redFlag bool) {
	if m == nil {
		return
	}
	label := "false"
	if redFlag {
		label = "true"
	}
	m.riskTotal.WithLabelValues(status, label).Inc()
}
