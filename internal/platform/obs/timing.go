package obs

import (
	"context"
	"fmt"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID attaches a request id to ctx for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "-".
func RequestID(ctx context.Context) string {
	if id, _ := ctx.Value(RequestIDKey).(string); id != "" {
		return id
	}
	return "-"
}

// Logf writes a log line prefixed with the request id from ctx.
func Logf(ctx context.Context, format string, args ...any) {
	log.Printf("req_id=%s %s", RequestID(ctx), fmt.Sprintf(format, args...))
}

// Time logs the duration of an operation and its error, if any.
//
//	defer obs.Time(ctx, "route.plan")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
