package sheets

import (
	"context"
	"time"

	"frontdesk-backend/internal/metrics"

	"github.com/rs/zerolog/log"
)

type instrumented struct {
	next Store
}

// WithMetrics records latency, outcome and a debug log line for every call.
func WithMetrics(next Store) Store {
	return &instrumented{next: next}
}

func observe(table, op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	elapsed := time.Since(start)
	metrics.StoreCallsTotal.WithLabelValues(table, op, outcome).Inc()
	metrics.StoreCallDuration.WithLabelValues(table, op).Observe(elapsed.Seconds())

	ev := log.Debug()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("table", table).Str("op", op).Dur("elapsed", elapsed).Msg("[Sheets] call")
}

func (i *instrumented) ReadAll(ctx context.Context, table string) (t *Table, err error) {
	defer func(start time.Time) { observe(table, "read", start, err) }(time.Now())
	return i.next.ReadAll(ctx, table)
}

func (i *instrumented) Append(ctx context.Context, table string, values []string) (err error) {
	defer func(start time.Time) { observe(table, "append", start, err) }(time.Now())
	return i.next.Append(ctx, table, values)
}

func (i *instrumented) UpdateAt(ctx context.Context, table string, index int, values []string) (err error) {
	defer func(start time.Time) { observe(table, "update", start, err) }(time.Now())
	return i.next.UpdateAt(ctx, table, index, values)
}

func (i *instrumented) DeleteAt(ctx context.Context, table string, index int) (err error) {
	defer func(start time.Time) { observe(table, "delete", start, err) }(time.Now())
	return i.next.DeleteAt(ctx, table, index)
}

func (i *instrumented) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { observe("", "ping", start, err) }(time.Now())
	return i.next.Ping(ctx)
}
