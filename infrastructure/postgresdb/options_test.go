package postgresdb

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

type countingTracer struct {
	starts int
}

func (c *countingTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	c.starts++
	return ctx
}

func (c *countingTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {}

func TestOptions(t *testing.T) {
	tracer := &countingTracer{}
	opts := &options{databaseURL: "postgres://env", maxConns: 25}

	for _, opt := range []Option{
		WithDatabaseURL("postgres://flag"),
		WithMaxConns(2),
		WithConnectTimeout(3 * time.Second),
		WithLogQueries(true),
		WithTracer(tracer),
	} {
		opt(opts)
	}

	assert.Equal(t, "postgres://flag", opts.databaseURL)
	assert.Equal(t, 2, opts.maxConns)
	assert.Equal(t, 3*time.Second, opts.connectTimeout)
	assert.True(t, opts.logQueries)
	assert.Same(t, tracer, opts.tracer)
}

func TestComposeTracer(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	tracer := &countingTracer{}

	assert.Nil(t, composeTracer(&options{logger: log}))
	assert.Same(t, tracer, composeTracer(&options{logger: log, tracer: tracer}))
	assert.IsType(t, &LoggingQueryTracer{}, composeTracer(&options{logger: log, logQueries: true}))

	multi, ok := composeTracer(&options{logger: log, tracer: tracer, logQueries: true}).(*MultiQueryTracer)
	if assert.True(t, ok) {
		assert.Len(t, multi.Tracers, 2)
		multi.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		multi.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
		assert.Equal(t, 1, tracer.starts)
	}
}
