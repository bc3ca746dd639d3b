package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(perMinute, zap.NewNop())
	rl.now = clock.now
	rl.lastSweep = clock.t
	return rl, clock
}

func loginFrom(rl *RateLimiter, addr string) int {
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(5)

	for i := 0; i < 1000; i++ {
		loginFrom(rl, fmt.Sprintf("[2001:db8::%x]:443", i))
	}
	assert.Len(t, rl.buckets, 1000)

	clock.advance(idleBucketTTL)
	assert.Equal(t, http.StatusOK, loginFrom(rl, "10.0.0.9:1234"))

	assert.Len(t, rl.buckets, 1)
	assert.Contains(t, rl.buckets, "10.0.0.9")
}

func TestRateLimiter_KeepsActiveClients(t *testing.T) {
	rl, clock := newTestLimiter(2)

	assert.Equal(t, http.StatusOK, loginFrom(rl, "10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, loginFrom(rl, "10.0.0.1:2"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(rl, "10.0.0.1:3"))

	// still hammering just before the sweep: the bucket must survive it and
	// keep its (nearly) empty state
	clock.advance(idleBucketTTL - time.Second)
	loginFrom(rl, "10.0.0.1:4")
	clock.advance(time.Second)
	loginFrom(rl, "10.0.0.2:1")

	assert.Contains(t, rl.buckets, "10.0.0.1")
}

func TestRateLimiter_EvictedBucketStartsFull(t *testing.T) {
	rl, clock := newTestLimiter(1)

	assert.Equal(t, http.StatusOK, loginFrom(rl, "10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(rl, "10.0.0.1:2"))

	clock.advance(idleBucketTTL)
	assert.Equal(t, http.StatusOK, loginFrom(rl, "10.0.0.1:3"))
}
