package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"book-review/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// idleBucketTTL is how long a client's bucket survives without requests.
// A bucket idle for a full minute has refilled completely, so dropping it
// is indistinguishable from keeping it.
const idleBucketTTL = time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Idle buckets are swept
// at most once per idleBucketTTL, from the request path.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
	log       *zap.Logger
}

// NewRateLimiter allows perMinute requests per IP, refilled evenly over the minute.
func NewRateLimiter(perMinute int, log *zap.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		buckets:   make(map[string]*clientBucket),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		lastSweep: time.Now(),
		now:       time.Now,
		log:       log,
	}
}

// allow takes one token from ip's bucket.
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= idleBucketTTL {
		rl.sweep(now)
	}

	b, ok := rl.buckets[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[ip] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for at least idleBucketTTL. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, b := range rl.buckets {
		if now.Sub(b.lastSeen) >= idleBucketTTL {
			delete(rl.buckets, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			rl.log.Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", r.URL.Path))
			utils.ResponseTooManyRequests(w, "Too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
