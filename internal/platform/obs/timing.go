package obs

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

var requestCounter atomic.Uint64

// NewRequestID returns a process-unique request identifier for log correlation.
func NewRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixMilli(), requestCounter.Add(1))
}

// WithRequestID stores a request identifier in the context for Time to pick up.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
