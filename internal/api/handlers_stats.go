package api

import (
	"net/http"

	"github.com/dgallion1/docslot/internal/generate"
)

type providerStatus struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	Registered bool   `json:"registered"`
}

// handleLLMStats reports latency percentiles per provider together with the
// providers the server knows about.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.svc.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	known := generate.KnownProviders(s.cfg)
	providers := make([]providerStatus, 0, len(known))
	for _, p := range known {
		providers = append(providers, providerStatus{
			Name:       p.Name,
			Model:      p.Model,
			Registered: s.svc.Registry.Has(p.Name),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default":   s.cfg.GenerateProvider,
		"providers": providers,
		"stats":     s.svc.Stats.Snapshot(),
	})
}
