package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector(50, time.Minute)
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/api/maestro/status", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.requestCountByIP[ip]
	detector.mu.Unlock()
	assert.Equal(t, 51, count)

	other := httptest.NewRequest("GET", "/api/maestro/status", nil)
	other.RemoteAddr = "10.0.0.9:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "limit is per IP")
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	detector := NewSuspiciousActivityDetector(1, time.Minute)
	now := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	detector.now = func() time.Time { return now }
	detector.lastResetTime = now

	assert.True(t, detector.RecordRequest("1.2.3.4"))
	assert.False(t, detector.RecordRequest("1.2.3.4"))

	now = now.Add(2 * time.Minute)
	assert.True(t, detector.RecordRequest("1.2.3.4"))
}

func TestSecurityLoggingMiddleware_CountsRejectedCredentials(t *testing.T) {
	detector := NewSuspiciousActivityDetector(0, 0)
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/sync/verify-auth", nil)
		req.RemoteAddr = "172.16.0.4:5555"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 3, detector.failedAuthByIP["172.16.0.4"])
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		forward string
		trusted []string
		want    string
	}{
		{"direct", "203.0.113.5:443", "", nil, "203.0.113.5"},
		{"untrusted forwarded ignored", "203.0.113.5:443", "198.51.100.1", nil, "203.0.113.5"},
		{"trusted proxy uses rightmost", "10.0.0.1:80", "198.51.100.1, 198.51.100.2", []string{"10.0.0.1"}, "198.51.100.2"},
		{"unparseable remote", "garbage", "", nil, "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forward != "" {
				req.Header.Set(HeaderForwardedFor, tt.forward)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, err := r.Body.Read(buf)
		for err == nil {
			_, err = r.Body.Read(buf)
		}
		var maxErr *http.MaxBytesError
		if assert.ErrorAs(t, err, &maxErr) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/results", strings.NewReader("0123456789abcdef")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
