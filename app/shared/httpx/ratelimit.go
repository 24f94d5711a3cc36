package httpx

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"golang.org/x/time/rate"
)

// KindRateLimited is the error kind of a request rejected by ClientLimiter.
// It exists only at the transport boundary.
const KindRateLimited apperr.Kind = "rate_limited"

// idleAfter is how long a client's buckets survive without traffic.
const idleAfter = 10 * time.Minute

// Budget is a token bucket allowance: Rate requests per second with bursts of
// up to Burst.
type Budget struct {
	Rate  rate.Limit
	Burst int
}

type clientBuckets struct {
	read  *rate.Limiter
	write *rate.Limiter
	seen  time.Time
}

// ClientLimiter keeps a read and a write bucket per client address. Mutating
// RPCs (every method but GET, HEAD and OPTIONS) draw from the write bucket so
// a burst of reorders cannot starve the UI's polling reads, and the other way
// round.
type ClientLimiter struct {
	read  Budget
	write Budget
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientBuckets
	lastSweep time.Time
}

// NewClientLimiter creates a limiter with separate read and write budgets.
func NewClientLimiter(read, write Budget) *ClientLimiter {
	return &ClientLimiter{
		read:    read,
		write:   write,
		now:     time.Now,
		clients: make(map[string]*clientBuckets),
	}
}

// bucket returns the client's bucket for the request class, creating it on
// first use. Clients idle for idleAfter are swept at most once per idleAfter.
func (l *ClientLimiter) bucket(client string, mutating bool, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= idleAfter {
		for addr, c := range l.clients {
			if now.Sub(c.seen) >= idleAfter {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[client]
	if !ok {
		c = &clientBuckets{
			read:  rate.NewLimiter(l.read.Rate, l.read.Burst),
			write: rate.NewLimiter(l.write.Rate, l.write.Burst),
		}
		l.clients[client] = c
	}
	c.seen = now
	if mutating {
		return c.write
	}
	return c.read
}

// Clients returns the number of tracked client addresses.
func (l *ClientLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware rejects a request over its client's budget with 429 and the
// structured error body. When the bucket refills later, Retry-After says when.
func (l *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := l.now()
		res := l.bucket(clientAddr(r), isMutating(r.Method), now).ReserveN(now, 1)

		if !res.OK() {
			writeRateLimited(w, 0)
			return
		}
		if delay := res.DelayFrom(now); delay > 0 {
			res.CancelAt(now)
			writeRateLimited(w, delay)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	}
	WriteJSON(w, http.StatusTooManyRequests, ErrorBody{Error: ErrorDetail{
		Kind:    KindRateLimited,
		Message: "too many requests",
	}})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
