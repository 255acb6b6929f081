package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/jrazmi/backoffice/bridge/scaffolding/metrics"
	"github.com/jrazmi/backoffice/infrastructure/web"
)

// Metrics updates program counters.
func Metrics() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = metrics.Set(ctx)
			start := time.Now()

			resp := next(ctx, r)

			n := metrics.AddRequests(ctx)

			if n%1000 == 0 {
				metrics.AddGoroutines(ctx)
			}

			if isError(resp) != nil {
				metrics.AddErrors(ctx)
			}

			metrics.ObserveRequest(ctx, routeOf(r), statusOf(resp), time.Since(start))

			return resp
		}
	}
}

// routeOf returns the matched mux pattern so raw paths with ids never
// become label values.
func routeOf(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}
