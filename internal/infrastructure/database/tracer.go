package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lmittmann/tint"
)

const (
	tintAttrCodeDuration = 214
	tintAttrCodeQuery    = 2
)

type traceStartKey struct{}

type traceStart struct {
	at  time.Time
	sql string
}

// QueryTracer logs failed and slow queries; every query at debug level.
type QueryTracer struct {
	logger        *slog.Logger
	slowThreshold time.Duration
	now           func() time.Time
}

var _ pgx.QueryTracer = (*QueryTracer)(nil)

// NewQueryTracer returns a tracer; slowThreshold 0 disables slow query warnings.
func NewQueryTracer(logger *slog.Logger, slowThreshold time.Duration) *QueryTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryTracer{
		logger:        logger.With("component", "database"),
		slowThreshold: slowThreshold,
		now:           time.Now,
	}
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, traceStart{at: t.now(), sql: data.SQL})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(traceStartKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)

	log := t.logger.With(
		tint.Attr(tintAttrCodeDuration, slog.String("duration", elapsed.String())),
		tint.Attr(tintAttrCodeQuery, slog.String("query", start.sql)),
		slog.Int64("rows", data.CommandTag.RowsAffected()),
	)

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows):
		log.ErrorContext(ctx, "❌ query failed", "error", data.Err)
	case t.slowThreshold > 0 && elapsed >= t.slowThreshold:
		log.WarnContext(ctx, "⚠️ slow query", "threshold", t.slowThreshold.String())
	default:
		log.DebugContext(ctx, "query executed")
	}
}
