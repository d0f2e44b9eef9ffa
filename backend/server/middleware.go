package server

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/time/rate"

	"shardvault/backend/state"
	"shardvault/backend/utils"
	"shardvault/shared/constants"
)

type Visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var visitors = make(map[[32]byte]*Visitor)
var mu sync.Mutex

// getVisitor checks to see if an identifier (ip address) is associated with
// a rate limiter, and returns it if so. If not, it creates a new entry in the
// visitors map associating the ip address with a new rate limiter.
func getVisitor(identifier string, path string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	idHash := blake2b.Sum256([]byte(identifier + path))
	visitor, exists := visitors[idHash]
	if !exists {
		limit := rate.Every(time.Second * constants.LimiterSeconds)
		limiter := rate.NewLimiter(limit, constants.LimiterAttempts)
		visitors[idHash] = &Visitor{limiter, time.Now()}
		return limiter
	}

	visitor.lastSeen = time.Now()
	return visitor.limiter
}

// LimiterMiddleware restricts requests to a particular route to prevent abuse
// of a handler function, primarily repeated password attempts.
func LimiterMiddleware(next http.HandlerFunc) http.HandlerFunc {
	handler := func(w http.ResponseWriter, req *http.Request) {
		ip, err := utils.GetReqSource(req)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		limiter := getVisitor(ip, req.URL.Path)
		if limiter.Allow() {
			next.ServeHTTP(w, req)
			return
		}

		http.Error(
			w,
			"Too many requests from this IP address -- please wait and try again",
			http.StatusTooManyRequests)
	}

	return handler
}

// ContextHandlerFunc is a request handler that receives the application
// context alongside the request.
type ContextHandlerFunc func(w http.ResponseWriter, req *http.Request, appCtx *state.Context)

// ContextMiddleware hands the application context to the wrapped handler.
func ContextMiddleware(next ContextHandlerFunc, appCtx *state.Context) http.HandlerFunc {
	handler := func(w http.ResponseWriter, req *http.Request) {
		next(w, req, appCtx)
	}

	return handler
}

// CORSMiddleware allows any origin to fetch the wrapped resource. Embedded
// webviews load streamed media cross origin, so every streaming response
// carries permissive CORS headers.
func CORSMiddleware(next http.HandlerFunc) http.HandlerFunc {
	handler := func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	}

	return handler
}

// ManageLimiters removes an id->visitor pairing from the visitors map if they
// haven't repeated a limiter-enabled request in over a minute.
func ManageLimiters() {
	mu.Lock()
	for ip, v := range visitors {
		if time.Since(v.lastSeen) > time.Minute {
			delete(visitors, ip)
		}
	}
	mu.Unlock()
}
