package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

// FilteredTracer forwards query traces to inner except inserts into the log
// table. Every other statement touching that table, such as its migration or
// a read, is still traced.
type FilteredTracer struct {
	inner      pgx.QueryTracer
	skipPrefix string
}

type skipCtxKey struct{}

// NewFilteredTracer wraps inner so that `INSERT INTO <table>` statements are not traced
func NewFilteredTracer(inner pgx.QueryTracer, table string) *FilteredTracer {
	return &FilteredTracer{
		inner:      inner,
		skipPrefix: "insert into " + strings.ToLower(table),
	}
}

// normalizeSQL lowercases and collapses whitespace so formatting does not matter
func normalizeSQL(sql string) string {
	return strings.ToLower(strings.Join(strings.Fields(sql), " "))
}

func (t *FilteredTracer) skips(sql string) bool {
	normalized := normalizeSQL(sql)
	if !strings.HasPrefix(normalized, t.skipPrefix) {
		return false
	}
	// service_logs must not match service_logs_archive
	rest := normalized[len(t.skipPrefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '('
}

func (t *FilteredTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if t.skips(data.SQL) {
		return context.WithValue(ctx, skipCtxKey{}, true)
	}

	return t.inner.TraceQueryStart(ctx, conn, data)
}

func (t *FilteredTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	if ctx.Value(skipCtxKey{}) != nil {
		return
	}

	t.inner.TraceQueryEnd(ctx, conn, data)
}
