package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DigSite_Go/internal/logger"
)

// ActivityLimits bounds per-client request volume
type ActivityLimits struct {
	Window            time.Duration
	RequestsPerWindow int
	FailedAuthAlert   int
	TrackedClients    int
}

// DefaultActivityLimits returns the limits used by NewServer
func DefaultActivityLimits() ActivityLimits {
	return ActivityLimits{
		Window:            DefaultRateWindow,
		RequestsPerWindow: DefaultRequestsPerWindow,
		FailedAuthAlert:   DefaultFailedAuthAlert,
		TrackedClients:    DefaultTrackedClients,
	}
}

type clientWindow struct {
	requests   int
	failedAuth int
}

// ActivityMonitor counts requests and failed logins per client IP over a
// fixed window. Windows live in an expiring LRU so idle clients age out.
type ActivityMonitor struct {
	mu      sync.Mutex
	limits  ActivityLimits
	windows *expirable.LRU[string, *clientWindow]
}

// NewActivityMonitor creates a monitor with the given limits
func NewActivityMonitor(limits ActivityLimits) *ActivityMonitor {
	return &ActivityMonitor{
		limits:  limits,
		windows: expirable.NewLRU[string, *clientWindow](limits.TrackedClients, nil, limits.Window),
	}
}

// window returns the live window for ip. Caller must hold the mutex.
func (m *ActivityMonitor) window(ip string) *clientWindow {
	if w, ok := m.windows.Get(ip); ok {
		return w
	}
	w := &clientWindow{}
	m.windows.Add(ip, w)
	return w
}

// RecordFailedAuth records a rejected API key and alerts once the threshold is hit
func (m *ActivityMonitor) RecordFailedAuth(ip string) {
	m.mu.Lock()
	w := m.window(ip)
	w.failedAuth++
	count := w.failedAuth
	m.mu.Unlock()

	if count == m.limits.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// Allow records a request and reports whether ip is still under its limit
func (m *ActivityMonitor) Allow(ip string) bool {
	m.mu.Lock()
	w := m.window(ip)
	w.requests++
	count := w.requests
	m.mu.Unlock()

	if count <= m.limits.RequestsPerWindow {
		return true
	}
	// log the first rejection and then every hundredth
	if (count-m.limits.RequestsPerWindow)%100 == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", count, "window", m.limits.Window)
	}
	return false
}

func (m *ActivityMonitor) requests(ip string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows.Peek(ip); ok {
		return w.requests
	}
	return 0
}

// ProxyList holds the addresses allowed to set X-Forwarded-For
type ProxyList struct {
	nets []*net.IPNet
}

// ParseProxies accepts bare IPs and CIDR blocks; unparseable entries are skipped
func ParseProxies(entries []string) ProxyList {
	var pl ProxyList
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "/") {
			if ip := net.ParseIP(e); ip != nil && ip.To4() != nil {
				e += "/32"
			} else {
				e += "/128"
			}
		}
		_, n, err := net.ParseCIDR(e)
		if err != nil {
			slog.Warn(LogMsgBadTrustedProxy, "entry", e, "error", err)
			continue
		}
		pl.nets = append(pl.nets, n)
	}
	return pl
}

func (pl ProxyList) trusts(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range pl.nets {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// clientIP returns the caller's address. X-Forwarded-For is honored only
// when the direct peer is a trusted proxy, and then its last hop is used.
func clientIP(r *http.Request, proxies ProxyList) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if !proxies.trusts(remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware requires the shared API key on every non-public path
func AuthMiddleware(apiKey string, proxies ProxyList, monitor *ActivityMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r, proxies)
			monitor.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", providedKey != "",
				"ip", ip)
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RateLimitMiddleware rejects clients that exceed their request window
func RateLimitMiddleware(proxies ProxyList, monitor *ActivityMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !monitor.Allow(clientIP(r, proxies)) {
				w.Header().Set(HeaderRetryAfter, retryAfterSeconds(monitor.limits.Window))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int(d.Round(time.Second) / time.Second))
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware adds browser hardening headers. Dig responses
// carry per-player state and are never cacheable.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerNoReferrer)
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}
			next.ServeHTTP(w, r)
		})
	}
}
