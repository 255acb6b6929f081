package postgresdb

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// https://github.com/jackc/pgx/discussions/1677#discussioncomment-8815982
type MultiQueryTracer struct {
	Tracers []pgx.QueryTracer
}

func NewMultiQueryTracer(tracers ...pgx.QueryTracer) *MultiQueryTracer {
	return &MultiQueryTracer{Tracers: tracers}
}

func (m *MultiQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range m.Tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (m *MultiQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range m.Tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

type traceKey int

const queryStartKey traceKey = iota + 1

// LoggingQueryTracer logs every statement with its bound args and duration.
type LoggingQueryTracer struct {
	logger *slog.Logger
}

func NewLoggingQueryTracer(logger *slog.Logger) *LoggingQueryTracer {
	return &LoggingQueryTracer{logger: logger}
}

var (
	replaceSpacesAfterOpeningParens  = regexp.MustCompile(`\(\s+`)
	replaceSpacesBeforeClosingParens = regexp.MustCompile(`\s+\)`)
	replaceSpaces                    = regexp.MustCompile(`\s+`)
)

// prettyPrintSQL collapses whitespace so statements log on one line.
func prettyPrintSQL(sql string) string {
	pretty := replaceSpaces.ReplaceAllString(sql, " ")
	pretty = replaceSpacesAfterOpeningParens.ReplaceAllString(pretty, "(")
	pretty = replaceSpacesBeforeClosingParens.ReplaceAllString(pretty, ")")
	return strings.TrimSpace(pretty)
}

func (l *LoggingQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	l.logger.DebugContext(ctx, "query start",
		slog.String("sql", prettyPrintSQL(data.SQL)),
		slog.Any("args", data.Args),
	)
	return context.WithValue(ctx, queryStartKey, time.Now())
}

func (l *LoggingQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	attrs := []any{slog.String("command_tag", data.CommandTag.String())}
	if start, ok := ctx.Value(queryStartKey).(time.Time); ok {
		attrs = append(attrs, slog.Duration("duration", time.Since(start)))
	}

	if data.Err != nil {
		attrs = append(attrs, slog.String("error", data.Err.Error()))
		l.logger.ErrorContext(ctx, "query end", attrs...)
		return
	}

	l.logger.DebugContext(ctx, "query end", attrs...)
}
