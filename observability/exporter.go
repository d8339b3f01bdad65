package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"errors"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/multierr"
)

type MetricsFormat string

const (
	ConsoleMetrics    MetricsFormat = "console"
	PrometheusMetrics MetricsFormat = "prometheus"
)

var ErrUnknownMetricsFormat = errors.New("[observability] unknown metrics format")

// MetricsExporter binds a meter provider to the writer the metrics are
// dumped into. Shutdown flushes the metrics collected so far.
type MetricsExporter struct {
	provider *metric.MeterProvider
	flush    func(ctx context.Context) error
}

func (e *MetricsExporter) Provider() *metric.MeterProvider {
	return e.provider
}

func (e *MetricsExporter) Shutdown(ctx context.Context) error {
	var err error
	if e.flush != nil {
		err = e.flush(ctx)
	}
	return multierr.Append(err, e.provider.Shutdown(ctx))
}

func NewMetricsExporter(format MetricsFormat, w io.Writer) (*MetricsExporter, error) {
	switch format {
	case ConsoleMetrics:
		return newConsoleMetricsExporter(time.Minute, 5*time.Second,
			stdoutmetric.WithWriter(w),
			stdoutmetric.WithPrettyPrint(),
		)
	case PrometheusMetrics:
		return newPrometheusMetricsExporter(w)
	default:
	}
	return nil, ErrUnknownMetricsFormat
}

// Serves for test/dev environment.
// The periodic reader exports once more on shutdown.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (*MetricsExporter, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	otel.SetMeterProvider(mp)
	return &MetricsExporter{provider: mp}, nil
}

// Serves for the product environment. The metrics are gathered from
// a private registry and written in the text exposition format.
func newPrometheusMetricsExporter(w io.Writer) (*MetricsExporter, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return &MetricsExporter{
		provider: mp,
		flush: func(ctx context.Context) error {
			families, err := registry.Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
					return err
				}
			}
			return nil
		},
	}, nil
}
