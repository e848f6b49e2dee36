package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// withCORS adds CORS headers so the page can be hosted anywhere.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// withRateLimit throttles each client to perMinute requests per minute.
// Clients are keyed on CF-Connecting-IP when the service sits behind
// Cloudflare, falling back to the peer address. perMinute <= 0 disables
// limiting.
func withRateLimit(perMinute int, h http.Handler) http.Handler {
	if perMinute <= 0 {
		return h
	}

	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	// Idle entries are dropped so the map cannot grow without bound.
	go func() {
		for range time.Tick(time.Minute) {
			mu.Lock()
			for key, v := range visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(visitors, key)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		mu.Lock()
		v, ok := visitors[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)}
			visitors[key] = v
		}
		v.lastSeen = time.Now()
		mu.Unlock()

		if !v.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests,
				"Too many requests, please try again later.")
			return
		}

		h.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
