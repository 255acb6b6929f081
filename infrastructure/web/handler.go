package web

import (
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"strings"

	"github.com/jrazmi/backoffice/sdk/environment"
)

// HeaderTraceID is set on every response handled through a WebHandler with
// telemetry configured.
const HeaderTraceID = "X-Trace-Id"

type WebHandler struct {
	mux       *http.ServeMux
	log       *slog.Logger
	telemetry Telemetry

	// Configuration
	corsOrigins    []string
	defaultHeaders map[string]string

	// Middleware stacks
	globalMiddleware []Middleware

	// paths with an OPTIONS route
	preflight map[string]bool
}

// HandlerOptions is the exportable configuration struct
type HandlerOptions struct {
	CORSOrigins    []string `env:"CORS_ORIGINS" default:"*" separator:","`
	DefaultHeaders map[string]string
}

type HandlerOption func(*handlerOptions)

// internal options struct for additional runtime configuration
type handlerOptions struct {
	log              *slog.Logger
	telemetry        Telemetry
	corsOrigins      []string
	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

// WithLogging sets the logger
func WithLogging(log *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(o *handlerOptions) {
		o.telemetry = tel
	}
}

// WithCORS sets CORS origins
func WithCORS(origins []string) HandlerOption {
	return func(o *handlerOptions) {
		o.corsOrigins = origins
	}
}

// WithDefaultHeaders sets default headers
func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(o *handlerOptions) {
		if o.defaultHeaders == nil {
			o.defaultHeaders = make(map[string]string)
		}
		maps.Copy(o.defaultHeaders, headers)
	}
}

// WithGlobalMiddleware adds global middleware
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// NewWebHandlerFromEnv creates a new WebHandler from environment variables
func NewWebHandlerFromEnv(prefix string, opts ...HandlerOption) (*WebHandler, error) {
	var options HandlerOptions
	if err := environment.ParseEnvTags(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing webhandler config: %w", err)
	}
	return newWebHandler(options, opts...), nil
}

// NewWebHandler creates a WebHandler configured only through opts.
func NewWebHandler(opts ...HandlerOption) *WebHandler {
	return newWebHandler(HandlerOptions{}, opts...)
}

func newWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	internalOpts := &handlerOptions{
		corsOrigins:      cfg.CORSOrigins,
		defaultHeaders:   make(map[string]string),
		globalMiddleware: make([]Middleware, 0),
	}
	maps.Copy(internalOpts.defaultHeaders, cfg.DefaultHeaders)

	for _, opt := range opts {
		opt(internalOpts)
	}

	handler := &WebHandler{
		mux:              http.NewServeMux(),
		log:              internalOpts.log,
		telemetry:        internalOpts.telemetry,
		corsOrigins:      internalOpts.corsOrigins,
		defaultHeaders:   internalOpts.defaultHeaders,
		globalMiddleware: internalOpts.globalMiddleware,
		preflight:        make(map[string]bool),
	}

	// CORS runs before every other middleware.
	if len(handler.corsOrigins) > 0 {
		handler.globalMiddleware = append([]Middleware{handler.corsMiddleware()}, handler.globalMiddleware...)
	}

	return handler
}

func (wh *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := wh.buildHandlerChain(handler, middleware...)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if wh.telemetry != nil {
			ctx = wh.telemetry.SetTraceID(ctx)
			w.Header().Set(HeaderTraceID, wh.telemetry.GetTraceID(ctx))
		}
		ctx = setWriter(ctx, w)

		for k, v := range wh.defaultHeaders {
			w.Header().Set(k, v)
		}

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && wh.log != nil {
			wh.log.ErrorContext(ctx, "respond error", "error", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)
	wh.mux.HandleFunc(pattern, httpHandler)

	// Preflight requests are answered by the CORS middleware.
	if len(wh.corsOrigins) > 0 && !strings.EqualFold(method, http.MethodOptions) {
		wh.registerPreflight(path)
	}
}

// HandleRaw registers a plain http.Handler. Global middleware is not applied.
func (wh *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	wh.mux.Handle(pattern, handler)
}

func (wh *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wh.mux.ServeHTTP(w, r)
}
