package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	ResolveFunc func(token string) (domain.UserId, error)
}

func (m *mockResolver) Resolve(token string) (domain.UserId, error) {
	return m.ResolveFunc(token)
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestNeedAuth(t *testing.T) {
	resolver := &mockResolver{ResolveFunc: func(token string) (domain.UserId, error) {
		if token == "good" {
			return 12345, nil
		}
		return 0, errors.Access("Invalid token")
	}}
	var seen domain.UserId
	handler := NewAuth(resolver).NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, ok := GetUserIdFromContext(r)
		require.True(t, ok)
		seen = userId
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedError  string
	}{
		{"valid token", "Bearer good", http.StatusOK, ""},
		{"no header", "", http.StatusForbidden, "Missing authorization token"},
		{"wrong scheme", "Basic good", http.StatusForbidden, "Missing authorization token"},
		{"empty token", "Bearer ", http.StatusForbidden, "Missing authorization token"},
		{"invalid token", "Bearer bad", http.StatusForbidden, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError == "" {
				assert.Equal(t, domain.UserId(12345), seen)
				return
			}
			assert.Equal(t, tt.expectedError, errorBody(t, w))
			assert.Zero(t, seen)
		})
	}
}

func TestGetUserIdFromContext(t *testing.T) {
	_, ok := GetUserIdFromContext(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("blocks request exceeding rate limit", func(t *testing.T) {
		handler := RateLimit(ratelimiter.New(0, 1, time.Minute), ByIP)(ok)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, req)
		assert.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, req)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)
		assert.Equal(t, "Rate limit exceeded, try again later", errorBody(t, w2))

		other := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		other.RemoteAddr = "10.1.1.2:5000"
		w3 := httptest.NewRecorder()
		handler.ServeHTTP(w3, other)
		assert.Equal(t, http.StatusOK, w3.Code)
	})

	t.Run("error getting identity", func(t *testing.T) {
		handler := RateLimit(ratelimiter.New(1, 1, time.Minute), ByIP)(ok)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "nonsense"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	SecurityHeaders(false)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	w = httptest.NewRecorder()
	SecurityHeaders(true)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, w.Header().Get(RequestIdHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIdHeader, "client-id")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "client-id", w.Header().Get(RequestIdHeader))
}
