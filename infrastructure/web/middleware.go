package web

import (
	"context"
	"net/http"
	"strings"
)

func (wh *WebHandler) buildHandlerChain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	allMiddleware := make([]Middleware, 0, len(wh.globalMiddleware)+len(middleware))
	allMiddleware = append(allMiddleware, wh.globalMiddleware...)
	allMiddleware = append(allMiddleware, middleware...)

	final := handler
	for i := len(allMiddleware) - 1; i >= 0; i-- {
		final = allMiddleware[i](final)
	}

	return final
}

// registerPreflight adds a single OPTIONS route per path.
func (wh *WebHandler) registerPreflight(path string) {
	if wh.preflight[path] {
		return
	}
	wh.preflight[path] = true
	wh.Handle(http.MethodOptions, path, func(ctx context.Context, r *http.Request) Encoder {
		return NewNoResponse()
	})
}

func (wh *WebHandler) corsMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, r *http.Request) Encoder {
			w := GetWriter(ctx)
			if w == nil {
				return NewError("response writer not available")
			}

			origin := r.Header.Get("Origin")
			for _, allowedOrigin := range wh.corsOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
					break
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
			}, ", "))
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", HeaderTraceID)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return NewNoResponse()
			}

			return next(ctx, r)
		}
	}
}
