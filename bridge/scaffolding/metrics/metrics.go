// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backoffice"

// Registry holds every collector exposed on the metrics endpoint.
var Registry = prometheus.NewRegistry()

// This holds the single instance of the metrics value needed for collecting
// metrics. Prometheus collectors are safe for concurrent use.
var m = newMetrics(Registry)

type metrics struct {
	goroutines   prometheus.Gauge
	requests     prometheus.Counter
	errors       prometheus.Counter
	panics       prometheus.Counter
	duration     *prometheus.HistogramVec
	listDuration *prometheus.HistogramVec
	dbDuration   *prometheus.HistogramVec
	requestCount atomic.Int64
}

func newMetrics(reg prometheus.Registerer) *metrics {
	mt := &metrics{
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Number of goroutines sampled every thousand requests",
		}),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of HTTP requests that returned an error",
		}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_total",
			Help:      "Total number of recovered panics",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		listDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "list_query_duration_seconds",
			Help:      "List query latency in seconds per resource",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "outcome"}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database statement latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		mt.goroutines,
		mt.requests,
		mt.errors,
		mt.panics,
		mt.duration,
		mt.listDuration,
		mt.dbDuration,
	)

	return mt
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

type ctxKeyMetric int

const (
	key        ctxKeyMetric = 1
	queryStart ctxKeyMetric = 2
)

// Set sets the metrics data into the context.
func Set(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, m)
}

func get(ctx context.Context) *metrics {
	v, _ := ctx.Value(key).(*metrics)
	return v
}

// AddGoroutines refreshes the goroutine metric.
func AddGoroutines(ctx context.Context) int64 {
	v := get(ctx)
	if v == nil {
		return 0
	}
	g := int64(runtime.NumGoroutine())
	v.goroutines.Set(float64(g))
	return g
}

// AddRequests increments the request metric by 1 and returns the number of
// requests seen by this process.
func AddRequests(ctx context.Context) int64 {
	v := get(ctx)
	if v == nil {
		return 0
	}
	v.requests.Inc()
	return v.requestCount.Add(1)
}

// AddErrors increments the errors metric by 1.
func AddErrors(ctx context.Context) {
	if v := get(ctx); v != nil {
		v.errors.Inc()
	}
}

// AddPanics increments the panics metric by 1.
func AddPanics(ctx context.Context) {
	if v := get(ctx); v != nil {
		v.panics.Inc()
	}
}

// ObserveRequest records the latency of a request for route and status.
func ObserveRequest(ctx context.Context, route string, status int, d time.Duration) {
	if v := get(ctx); v != nil {
		v.duration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
	}
}

// ObserveList records the latency of a list query for resource.
func ObserveList(ctx context.Context, resource string, d time.Duration, err error) {
	v := get(ctx)
	if v == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	v.listDuration.WithLabelValues(resource, outcome).Observe(d.Seconds())
}

// QueryTracer is a pgx.QueryTracer recording the latency of every database
// statement.
type QueryTracer struct{}

// NewQueryTracer returns a tracer bound to the process registry.
func NewQueryTracer() QueryTracer {
	return QueryTracer{}
}

func (QueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStart, time.Now())
}

func (QueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStart).(time.Time)
	if !ok {
		return
	}
	outcome := "ok"
	if data.Err != nil {
		outcome = "error"
	}
	m.dbDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
