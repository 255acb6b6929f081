package web_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTelemetry struct{}

type traceKey struct{}

func (stubTelemetry) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey{}, "trace-123")
}

func (stubTelemetry) GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceKey{}).(string)
	return v
}

func hello(ctx context.Context, r *http.Request) web.Encoder {
	return web.NewJSONResponse(map[string]string{"hello": web.Param(r, "name")})
}

func TestHandleRespondsJSON(t *testing.T) {
	wh := web.NewWebHandler(
		web.WithTelemetry(stubTelemetry{}),
		web.WithDefaultHeaders(map[string]string{"X-Service": "backoffice"}),
	)
	wh.GET("/hello/{name}", hello)

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello/alice", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hello":"alice"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "trace-123", rec.Header().Get(web.HeaderTraceID))
	assert.Equal(t, "backoffice", rec.Header().Get("X-Service"))
}

func TestHandleStatusFromEncoder(t *testing.T) {
	wh := web.NewWebHandler()
	wh.POST("/things", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponseWithStatus(map[string]int{"id": 1}, http.StatusCreated)
	})
	wh.DELETE("/things", func(ctx context.Context, r *http.Request) web.Encoder {
		return nil
	})
	wh.PUT("/things", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewError("boom")
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/things", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/things", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/things", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"boom"}`, rec.Body.String())
}

func TestMiddlewareOrder(t *testing.T) {
	var calls []string
	trace := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				calls = append(calls, name)
				return next(ctx, r)
			}
		}
	}

	wh := web.NewWebHandler(web.WithGlobalMiddleware(trace("global")))
	api := wh.Group("/api/v1/", trace("group"))
	api.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		calls = append(calls, "handler")
		return web.NewJSONResponse("pong")
	}, trace("route"))

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"global", "group", "route", "handler"}, calls)
}

func TestCORSPreflight(t *testing.T) {
	wh := web.NewWebHandler(web.WithCORS([]string{"https://admin.test"}))
	wh.GET("/users", hello)
	wh.POST("/users", hello)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "https://admin.test")
	wh.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://admin.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	assert.Equal(t, web.HeaderTraceID, rec.Header().Get("Access-Control-Expose-Headers"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "https://evil.test")
	wh.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSFromEnv(t *testing.T) {
	wh, err := web.NewWebHandlerFromEnv("WEBTEST")
	require.NoError(t, err)
	wh.GET("/users", hello)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "https://anywhere.test")
	wh.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleRaw(t *testing.T) {
	wh := web.NewWebHandler(web.WithCORS([]string{"*"}))
	wh.HandleRaw("GET /metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("WEBTEST_PORT", ":9999")

	cfg, err := web.LoadServerConfig("WEBTEST")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIRoute)

	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)

	errorLog := log.New(io.Discard, "", 0)
	handler := http.NotFoundHandler()

	srv := web.NewServer(cfg, web.WithHandler(handler), web.WithErrorLog(errorLog))
	assert.Equal(t, ":9999", srv.Addr)
	assert.Equal(t, 30*time.Second, srv.ReadTimeout)
	assert.Equal(t, cfg, srv.Config)
	assert.Same(t, errorLog, srv.ErrorLog)
	assert.NotNil(t, srv.Handler)
}
