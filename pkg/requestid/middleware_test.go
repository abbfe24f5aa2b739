package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotx/contactrelay/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, incoming string) (ctxID, headerID string) {
	t.Helper()

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()

		ctxID, headerID := serve(t, requestid.Middleware, "")
		require.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, headerID)
		_, err := uuid.Parse(ctxID)
		assert.NoError(t, err)
	})

	t.Run("reuses valid incoming id", func(t *testing.T) {
		t.Parallel()

		ctxID, headerID := serve(t, requestid.Middleware, "edge-proxy_42")
		assert.Equal(t, "edge-proxy_42", ctxID)
		assert.Equal(t, "edge-proxy_42", headerID)
	})

	t.Run("replaces malformed ids", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{"<script>", "a b", strings.Repeat("x", 129)} {
			ctxID, _ := serve(t, requestid.Middleware, bad)
			assert.NotEqual(t, bad, ctxID)
			assert.NotEmpty(t, ctxID)
		}
	})

	t.Run("custom generator and untrusted clients", func(t *testing.T) {
		t.Parallel()

		mw := requestid.New(
			requestid.WithGenerator(func() string { return "fixed" }),
			requestid.WithoutClientIDs(),
		)
		ctxID, headerID := serve(t, mw, "client-supplied")
		assert.Equal(t, "fixed", ctxID)
		assert.Equal(t, "fixed", headerID)
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	_, ok := requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)

	attr, ok := requestid.LoggerExtractor()(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
