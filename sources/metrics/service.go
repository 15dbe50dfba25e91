package metrics

import (
	"taskprovision/sources/tracing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService struct {
	log *tracing.Logger
}

var (
	requestsHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskprovision_requests_handled_total",
			Help: "Total number of API requests handled",
		},
		[]string{"route", "status"},
	)

	requestsThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taskprovision_requests_throttled_total",
			Help: "Total number of API requests rejected by the throttler",
		},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskprovision_request_duration_seconds",
			Help:    "Duration of API request handling",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	generationsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskprovision_generations_completed_total",
			Help: "Total number of code generations completed",
		},
		[]string{"language", "status"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskprovision_generation_duration_seconds",
			Help:    "Duration of full generation pipelines",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"language"},
	)

	qualityScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taskprovision_quality_scores",
			Help:    "Quality scores of delivered generations",
			Buckets: []float64{10, 25, 50, 75, 90, 95, 100},
		},
	)

	tokenUsage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskprovision_token_usage_total",
			Help: "Total number of tokens used",
		},
		[]string{"model", "type"},
	)

	costUsage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskprovision_cost_usage_total",
			Help: "Total cost incurred",
		},
		[]string{"model", "type"},
	)

	aiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskprovision_ai_request_duration_seconds",
			Help:    "Duration of AI provider requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	leadsMined = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskprovision_leads_mined_total",
			Help: "Total number of leads mined from GitHub",
		},
		[]string{"priority"},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskprovision_emails_sent_total",
			Help: "Total number of outreach emails sent",
		},
		[]string{"sequence", "status"},
	)

	stripeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskprovision_stripe_events_total",
			Help: "Total number of Stripe webhook events processed",
		},
		[]string{"event", "status"},
	)

	statsTotalAccounts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskprovision_stats_total_accounts",
			Help: "Total number of accounts",
		},
	)

	statsTotalGenerations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskprovision_stats_total_generations",
			Help: "Total number of stored generations",
		},
	)

	statsAverageQuality = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskprovision_stats_average_quality",
			Help: "Average quality score across stored generations",
		},
	)

	statsTotalLeads = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskprovision_stats_total_leads",
			Help: "Total number of mined leads",
		},
	)

	statsTasksByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taskprovision_stats_tasks",
			Help: "Number of tasks per status",
		},
		[]string{"status"},
	)

	statsEmailsLastDay = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskprovision_stats_emails_last_day",
			Help: "Outreach emails sent within the last 24h",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsHandled)
	prometheus.MustRegister(requestsThrottled)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(generationsCompleted)
	prometheus.MustRegister(generationDuration)
	prometheus.MustRegister(qualityScores)
	prometheus.MustRegister(tokenUsage)
	prometheus.MustRegister(costUsage)
	prometheus.MustRegister(aiRequestDuration)
	prometheus.MustRegister(leadsMined)
	prometheus.MustRegister(emailsSent)
	prometheus.MustRegister(stripeEvents)
	prometheus.MustRegister(statsTotalAccounts)
	prometheus.MustRegister(statsTotalGenerations)
	prometheus.MustRegister(statsAverageQuality)
	prometheus.MustRegister(statsTotalLeads)
	prometheus.MustRegister(statsTasksByStatus)
	prometheus.MustRegister(statsEmailsLastDay)
}

func NewMetricsService(log *tracing.Logger) *MetricsService {
	return &MetricsService{
		log: log,
	}
}

func (s *MetricsService) RecordRequestHandled(route string, status string) {
	requestsHandled.WithLabelValues(route, status).Inc()
}

func (s *MetricsService) RecordRequestThrottled() {
	requestsThrottled.Inc()
}

func (s *MetricsService) RecordRequestDuration(route string, duration time.Duration) {
	requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (s *MetricsService) RecordGeneration(language string, status string) {
	generationsCompleted.WithLabelValues(language, status).Inc()
}

func (s *MetricsService) RecordGenerationDuration(language string, duration time.Duration) {
	generationDuration.WithLabelValues(language).Observe(duration.Seconds())
}

func (s *MetricsService) RecordQualityScore(score float64) {
	qualityScores.Observe(score)
}

func (s *MetricsService) RecordUsage(tokens int, cost float64, model string, usageType string) {
	tokenUsage.WithLabelValues(model, usageType).Add(float64(tokens))
	costUsage.WithLabelValues(model, usageType).Add(cost)
}

func (s *MetricsService) RecordAIRequestDuration(duration time.Duration, model string) {
	aiRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

func (s *MetricsService) RecordLeadMined(priority string) {
	leadsMined.WithLabelValues(priority).Inc()
}

func (s *MetricsService) RecordEmailSent(sequence string, status string) {
	emailsSent.WithLabelValues(sequence, status).Inc()
}

func (s *MetricsService) RecordStripeEvent(event string, status string) {
	stripeEvents.WithLabelValues(event, status).Inc()
}

func (s *MetricsService) SetTotalAccounts(count float64) {
	statsTotalAccounts.Set(count)
}

func (s *MetricsService) SetTotalGenerations(count float64) {
	statsTotalGenerations.Set(count)
}

func (s *MetricsService) SetAverageQuality(score float64) {
	statsAverageQuality.Set(score)
}

func (s *MetricsService) SetTotalLeads(count float64) {
	statsTotalLeads.Set(count)
}

func (s *MetricsService) SetTasksByStatus(status string, count float64) {
	statsTasksByStatus.WithLabelValues(status).Set(count)
}

func (s *MetricsService) SetEmailsLastDay(count float64) {
	statsEmailsLastDay.Set(count)
}
