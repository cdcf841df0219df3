package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HistogramBuckets are latency buckets in milliseconds.
var HistogramBuckets = []float64{
	5, 10, 25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000,
}

// Metric describes a collector by name, help text, type and label names.
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric builds the prometheus.Collector matching m.Type.
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case "counter_vec":
		return prometheus.NewCounterVec(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "counter":
		return prometheus.NewCounter(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	case "histogram_vec":
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets}, m.Args)
	case "summary_vec":
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "gauge_vec":
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	}
	return nil
}

// Webhook outcomes reported by the ingestion service.
const (
	WebhookResultProcessed   = "processed"
	WebhookResultNotApproved = "not_approved"
	WebhookResultFailed      = "failed"
)

var (
	webhookTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "lovelyapp",
		Name:      "webhook_total",
		Help:      "Perfect Pay webhook calls partitioned by outcome.",
	}, []string{"result"})

	webhookDur = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "lovelyapp",
		Name:      "webhook_dur_ms",
		Help:      "Perfect Pay webhook processing latency in milliseconds.",
		Buckets:   HistogramBuckets,
	}, []string{"result"})

	loginTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "lovelyapp",
		Name:      "login_total",
		Help:      "Login attempts partitioned by outcome.",
	}, []string{"result"})
)

func ObserveWebhook(result string, start time.Time) {
	webhookTotal.WithLabelValues(result).Inc()
	webhookDur.WithLabelValues(result).Observe(MillisecondsSince(start))
}

func ObserveLogin(ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	loginTotal.WithLabelValues(result).Inc()
}

func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
