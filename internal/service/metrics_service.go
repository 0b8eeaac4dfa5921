package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the admissions API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	conversionsTotal    prometheus.Counter
	conversionFailures  prometheus.Counter
	feeRecordsGenerated prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	conversionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enquiry_conversions_total",
		Help: "Enquiries successfully converted to students",
	})

	conversionFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enquiry_conversion_failures_total",
		Help: "Enquiries that failed to convert within a batch",
	})

	feeRecordsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fee_records_generated_total",
		Help: "Fee records generated by batch conversions",
	})

	registry.MustRegister(requestDuration, requestTotal, conversionsTotal, conversionFailures, feeRecordsGenerated)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		conversionsTotal:    conversionsTotal,
		conversionFailures:  conversionFailures,
		feeRecordsGenerated: feeRecordsGenerated,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one request observation.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordConversion implements ConversionObserver.
func (s *MetricsService) RecordConversion(converted, failed, feesGenerated int) {
	s.conversionsTotal.Add(float64(converted))
	s.conversionFailures.Add(float64(failed))
	s.feeRecordsGenerated.Add(float64(feesGenerated))
}
