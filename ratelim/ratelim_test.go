package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	status := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler(rec, req, nil)
		return rec.Code
	}

	if got := status(); got != http.StatusOK {
		t.Fatalf("first request: %d", got)
	}
	if got := status(); got != http.StatusOK {
		t.Fatalf("second request: %d", got)
	}
	if got := status(); got != http.StatusTooManyRequests {
		t.Fatalf("third request: %d, want 429", got)
	}

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("other client blocked: %d", rec.Code)
	}
}
