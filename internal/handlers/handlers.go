// File: handlers.go
// Purpose: HTTP handler bootstrap for the formula API
// Pattern: handlers struct carrying shared collaborators, as in the
// teacher's internal/handlers.Handlers
// Dependencies: internal/dsl, internal/dignity, internal/chart

package handlers

import (
	"net/http"
	"time"

	"github.com/astroformula/dsl/internal/dignity"
	"github.com/astroformula/dsl/internal/dsl"
)

// Handlers holds the collaborators every route needs: a dignity
// configuration and a shared AST cache.
type Handlers struct {
	dignity *dignity.Config
	cache   *dsl.Cache
}

// New creates a Handlers bound to cfg (nil means dignity.Default()) and
// a fresh AST cache of default capacity.
func New(cfg *dignity.Config) *Handlers {
	if cfg == nil {
		cfg = dignity.Default()
	}
	return &Handlers{
		dignity: cfg,
		cache:   dsl.NewCache(dsl.DefaultCacheCapacity, dsl.EvictFIFO),
	}
}

// WithMirror attaches a Redis-backed cache mirror for process-wide AST
// sharing.
func (h *Handlers) WithMirror(m dsl.Mirror) *Handlers {
	h.cache.WithMirror(m)
	return h
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
