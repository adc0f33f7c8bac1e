// Package reqctx carries a per-request id through contexts, logs and responses.
package reqctx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// HeaderRequestID is echoed back on every API response
const HeaderRequestID = "X-Request-Id"

type key int

const requestKey key = 0

type RequestContext struct {
	RequestID string
	StartTime time.Time
}

// WithRequestContext attaches a fresh request id to ctx
func WithRequestContext(ctx context.Context) context.Context {
	return WithRequestID(ctx, xid.New().String())
}

// WithRequestID attaches the given id, generating one when it is empty
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = xid.New().String()
	}
	return context.WithValue(ctx, requestKey, &RequestContext{
		RequestID: id,
		StartTime: time.Now(),
	})
}

func GetRequestContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestKey).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{
		RequestID: "unknown",
		StartTime: time.Now(),
	}
}

// Middleware reuses an inbound X-Request-Id or mints one, stores it on the
// request context and the request logger, and echoes it in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithRequestID(r.Context(), r.Header.Get(HeaderRequestID))
		rc := GetRequestContext(ctx)

		logger := zerolog.Ctx(ctx)
		if logger.GetLevel() != zerolog.Disabled {
			logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", rc.RequestID)
			})
		}

		w.Header().Set(HeaderRequestID, rc.RequestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestError wraps an error with request context
type RequestError struct {
	RequestID string
	Err       error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("[%s] %v", e.RequestID, e.Err)
}

// Unwrap returns the underlying error
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a new RequestError from context
func NewRequestError(ctx context.Context, err error) error {
	rc := GetRequestContext(ctx)
	return &RequestError{
		RequestID: rc.RequestID,
		Err:       err,
	}
}
