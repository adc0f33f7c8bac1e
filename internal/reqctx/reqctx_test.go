package reqctx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestContext_Missing(t *testing.T) {
	rc := GetRequestContext(context.Background())
	assert.Equal(t, "unknown", rc.RequestID)
}

func TestWithRequestContext_GeneratesID(t *testing.T) {
	a := GetRequestContext(WithRequestContext(context.Background()))
	b := GetRequestContext(WithRequestContext(context.Background()))

	assert.Len(t, a.RequestID, 20)
	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.False(t, a.StartTime.IsZero())
}

func TestMiddleware_EchoesInboundID(t *testing.T) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestContext(r.Context()).RequestID
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(HeaderRequestID, "abc123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "abc123", rec.Header().Get(HeaderRequestID))
}

func TestMiddleware_MintsID(t *testing.T) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestContext(r.Context()).RequestID
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

func TestNewRequestError(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	cause := errors.New("boom")

	err := NewRequestError(ctx, cause)
	assert.EqualError(t, err, "[req-1] boom")
	assert.ErrorIs(t, err, cause)
}
