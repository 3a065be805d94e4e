package middleware

import (
	"net/http"
	"strings"

	"github.com/easiio/sflow-server/pkg/config"
	"github.com/easiio/sflow-server/pkg/observability"
)

// Static method and header policy declared on every allowed cross-origin
// response.
const (
	corsAllowMethods = "GET, POST, OPTIONS, PUT, PATCH, DELETE"
	corsAllowHeaders = "Origin, X-Requested-With, Content-Type, Accept, sessionid"
)

// OriginGate decides which browser origins may call the REST surface and
// answers preflight requests. It runs before routing on every request.
type OriginGate struct {
	origins  []string
	patterns []string
	metrics  *observability.Metrics
}

// NewOriginGate creates a gate from the configured allow-origin policy.
// metrics may be nil.
func NewOriginGate(cfg config.CORSConfig, metrics *observability.Metrics) *OriginGate {
	return &OriginGate{
		origins:  cfg.Origins,
		patterns: cfg.Patterns,
		metrics:  metrics,
	}
}

// Allowed reports whether the origin matches the policy: an exact match
// against the origin list, or a substring match against the domain
// patterns. Substring matching is deliberate; see DESIGN.md.
func (g *OriginGate) Allowed(origin string) bool {
	for _, o := range g.origins {
		if origin == o {
			return true
		}
	}
	for _, p := range g.patterns {
		if strings.Contains(origin, p) {
			return true
		}
	}
	return false
}

// Handler wraps next with the origin gate. Requests without an Origin
// header pass through untouched. Disallowed origins are not rejected
// server-side; the headers are simply withheld and the browser enforces
// same-origin on its end. OPTIONS requests short-circuit with 204 before
// reaching the router.
func (g *OriginGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			allowed := g.Allowed(origin)
			if allowed {
				// Echo the literal origin; a wildcard is not valid with
				// credentials.
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			}
			if g.metrics != nil {
				g.metrics.RecordCORS(allowed, r.Method == http.MethodOptions)
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
