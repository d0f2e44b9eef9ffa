package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"

	"shardvault/shared/constants"
)

func TestLimiterMiddleware(t *testing.T) {
	hits := 0
	handler := LimiterMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < constants.LimiterAttempts; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited/burst", nil)
		w := httptest.NewRecorder()
		handler(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// The burst is spent, so the next request is rejected
	req := httptest.NewRequest(http.MethodPost, "/limited/burst", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, constants.LimiterAttempts, hits)
}

func TestManageLimiters(t *testing.T) {
	handler := LimiterMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/limited/sweep", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// httptest requests always originate from 192.0.2.1
	idHash := blake2b.Sum256([]byte("192.0.2.1" + "/limited/sweep"))

	mu.Lock()
	visitor, exists := visitors[idHash]
	mu.Unlock()
	assert.True(t, exists)

	visitor.lastSeen = time.Now().Add(-2 * time.Minute)
	ManageLimiters()

	mu.Lock()
	_, exists = visitors[idHash]
	mu.Unlock()
	assert.False(t, exists)
}

func TestCORSMiddleware(t *testing.T) {
	invoked := false
	handler := CORSMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		invoked = true
		w.WriteHeader(http.StatusOK)
	})

	// Preflight is answered without reaching the wrapped handler
	req := httptest.NewRequest(http.MethodOptions, "/asset/abc123", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, invoked)

	req = httptest.NewRequest(http.MethodGet, "/asset/abc123", nil)
	w = httptest.NewRecorder()
	handler(w, req)
	assert.True(t, invoked)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
