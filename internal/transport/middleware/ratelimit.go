package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// idleClientTTL is how long a client with no writes keeps its allowance.
const idleClientTTL = 10 * time.Minute

// RateLimiter throttles writes per client host with a token bucket that
// refills continuously and holds up to one minute's allowance.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*allowance
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type allowance struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter starts a limiter that forgets idle clients every
// cleanupInterval. A non-positive interval disables the cleanup loop.
// Stop releases the background goroutine.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*allowance),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go rl.sweep(cleanupInterval)
	}
	return rl
}

// Stop ends the cleanup loop. Calling it more than once is harmless.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit admits perMinute requests per client host, with bursts up to the
// same number. perMinute <= 0 turns limiting off.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	retryAfter := strconv.Itoa(60/perMinute + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.take(clientHost(r), perMinute) {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientHost drops the port from RemoteAddr; every connection from one
// host draws from the same allowance.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) take(client string, perMinute int) bool {
	capacity := float64(perMinute)
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	a, ok := rl.clients[client]
	if !ok {
		a = &allowance{tokens: capacity, seen: now}
		rl.clients[client] = a
	}

	a.tokens = min(capacity, a.tokens+now.Sub(a.seen).Minutes()*capacity)
	a.seen = now
	if a.tokens < 1 {
		return false
	}
	a.tokens--
	return true
}

func (rl *RateLimiter) sweep(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-t.C:
			rl.forgetIdle(rl.now())
		}
	}
}

func (rl *RateLimiter) forgetIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, a := range rl.clients {
		if now.Sub(a.seen) > idleClientTTL {
			delete(rl.clients, client)
		}
	}
}
