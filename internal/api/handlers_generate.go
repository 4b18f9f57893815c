package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/generate"
)

type generateRequest struct {
	Structure *doctree.Structure `json:"structure"`
	Topic     string             `json:"topic"`
	Provider  string             `json:"provider,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Structure == nil {
		jsonError(w, "structure is required", http.StatusBadRequest)
		return
	}
	if req.Topic == "" {
		jsonError(w, "topic is required", http.StatusBadRequest)
		return
	}

	name := req.Provider
	if name == "" {
		name = s.cfg.GenerateProvider
	}
	p, err := s.svc.Registry.Get(name)
	if errors.Is(err, generate.ErrUnknownProvider) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	g := generate.NewGenerator(p, s.log)
	g.Timeout = s.cfg.GenerateTimeout
	contents, stats, err := g.GenerateStats(r.Context(), req.Structure, req.Topic)
	if err != nil {
		jsonError(w, "generate failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("X-Docslot-Provider", p.Name())
	w.Header().Set("X-Docslot-Fallbacks", strconv.Itoa(stats.Fallbacks))
	writeJSON(w, http.StatusOK, contents)
}
