package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	paymentIntentsTotal *prometheus.CounterVec
	webhookEventsTotal  *prometheus.CounterVec
	emailsTotal         *prometheus.CounterVec
}

// New регистрирует метрики в дефолтном registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		paymentIntentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_intents_total",
			Help:        "Payment intent operations by result",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),

		webhookEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "webhook_events_total",
			Help:        "Processed webhook events by type and outcome",
			ConstLabels: constLabels,
		}, []string{"type", "outcome"}),

		emailsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_emails_total",
			Help:        "Notification emails by kind and result",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
	}
}

// RecordHTTPRequest записывает метрики одного HTTP запроса
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPaymentIntent записывает операцию с payment intent (create/update/cancel)
func (m *Metrics) RecordPaymentIntent(operation, result string) {
	m.paymentIntentsTotal.WithLabelValues(operation, result).Inc()
}

// RecordWebhookEvent записывает обработанное webhook-событие
func (m *Metrics) RecordWebhookEvent(eventType, outcome string) {
	m.webhookEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// RecordEmail записывает отправку письма
func (m *Metrics) RecordEmail(kind, result string) {
	m.emailsTotal.WithLabelValues(kind, result).Inc()
}
