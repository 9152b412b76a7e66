package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collections   map[string]RecordCounter

	// OTel meters and instruments
	meter           metric.Meter
	recordGauge     metric.Int64ObservableGauge
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with
// Prometheus format. The collections map keys are entity names used as
// the gauge attribute.
func NewOTelExporter(collections map[string]RecordCounter) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"bookstore-catalog",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collections:   collections,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.recordGauge, err = oe.meter.Int64ObservableGauge(
		"catalog.records.count",
		metric.WithDescription("Number of stored records per entity"),
		metric.WithUnit("{records}"),
		metric.WithInt64Callback(oe.observeRecordCounts),
	)
	if err != nil {
		return fmt.Errorf("creating record count gauge: %w", err)
	}

	oe.requestCount, err = oe.meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests handled"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	oe.requestDuration, err = oe.meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request handling duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("creating request duration histogram: %w", err)
	}

	return nil
}

// observeRecordCounts is a callback that reports stored record counts
func (oe *OTelExporter) observeRecordCounts(ctx context.Context, observer metric.Int64Observer) error {
	for entity, counter := range oe.collections {
		n, err := counter.Count(ctx)
		if err != nil {
			return err
		}
		observer.Observe(n, metric.WithAttributes(
			attribute.String("catalog.entity", entity),
		))
	}
	return nil
}

// resourceSegment extracts the resource name from an /api/<resource>[/...]
// path. Anything else reports as "other" to keep cardinality bounded.
func resourceSegment(path string) string {
	const prefix = "/api/"
	if !strings.HasPrefix(path, prefix) {
		return "other"
	}
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "other"
	}
	return rest
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Middleware records the request counter and duration histogram for every
// handled request.
func (oe *OTelExporter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		attrs := metric.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.Int("http.response.status_code", sw.status),
			attribute.String("catalog.resource", resourceSegment(r.URL.Path)),
		)
		oe.requestCount.Add(r.Context(), 1, attrs)
		oe.requestDuration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000.0, attrs)
	})
}

// Handler serves Prometheus-formatted metrics
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
