package controller

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

// Claims carried by operator tokens. The identity provider issues them; we
// only verify signature and expiry.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// authenticate gates operator routes on a valid Bearer token.
func authenticate(secret []byte, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if !strings.HasPrefix(tokenString, "Bearer ") {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next(w, r, ps)
	}
}

// rateLimiter keeps a token bucket per client IP for the public routes.
type rateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{visitors: make(map[string]*rate.Limiter)}
}

func (rl *rateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.visitors[ip]; exists {
		return limiter
	}

	// 1 request/sec sustained, bursts of 5
	limiter := rate.NewLimiter(1, 5)
	rl.visitors[ip] = limiter

	go func() {
		time.Sleep(10 * time.Minute)
		rl.mu.Lock()
		delete(rl.visitors, ip)
		rl.mu.Unlock()
	}()

	return limiter
}

func (rl *rateLimiter) limit(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.getLimiter(ip).Allow() {
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next(w, r, ps)
	}
}
