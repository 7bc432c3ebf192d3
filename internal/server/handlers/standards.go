package handlers

import (
	"net/http"

	"github.com/agentstation/fieldscope/internal/server/cache"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// StandardSummary is one entry of the standards list.
type StandardSummary struct {
	Name       string                  `json:"name"`
	Definition string                  `json:"definition"`
	Counts     lookup.ComplianceCounts `json:"counts"`
}

// HandleListStandards handles GET /api/v1/standards.
func (h *Handlers) HandleListStandards(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, cache.Key("standards"), func(e *lookup.Engine) (any, error) {
		names := e.Standards()
		out := make([]StandardSummary, 0, len(names))
		for _, name := range names {
			def, _ := e.Definition(name)
			out = append(out, StandardSummary{
				Name:       name,
				Definition: def,
				Counts:     e.ComplianceTable(name).Counts(),
			})
		}
		return out, nil
	})
}

// HandleGetStandard handles GET /api/v1/standards/{name}: the compliance
// table of every field against the standard.
func (h *Handlers) HandleGetStandard(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	h.cached(w, r, cache.Key("standard", name), func(e *lookup.Engine) (any, error) {
		if !e.HasStandard(name) {
			return nil, &errors.NotFoundError{Resource: "standard", ID: name}
		}
		return e.ComplianceTable(name), nil
	})
}
