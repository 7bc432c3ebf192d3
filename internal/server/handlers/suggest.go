package handlers

import (
	"net/http"

	"github.com/agentstation/fieldscope/internal/server/cache"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Suggestions is an autocomplete answer. Visible tells a widget whether to
// open its dropdown.
type Suggestions struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
	Visible    bool     `json:"visible"`
}

func suggestions(query string, candidates []string) Suggestions {
	return Suggestions{
		Query:      query,
		Candidates: candidates,
		Visible:    lookup.CandidatesVisible(query, candidates),
	}
}

// HandleSuggestApplications handles GET /api/v1/suggest/applications?q=.
func (h *Handlers) HandleSuggestApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	h.cached(w, r, cache.Key("suggest/applications", q), func(e *lookup.Engine) (any, error) {
		return suggestions(q, e.ApplicationCandidates(q)), nil
	})
}

// HandleSuggestFields handles GET /api/v1/suggest/fields?q=&app=.
func (h *Handlers) HandleSuggestFields(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	app := r.URL.Query().Get("app")
	h.cached(w, r, cache.Key("suggest/fields", q, app), func(e *lookup.Engine) (any, error) {
		return suggestions(q, e.FieldCandidates(q, app)), nil
	})
}

// HandleSuggestStandards handles GET /api/v1/suggest/standards?q=.
func (h *Handlers) HandleSuggestStandards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	h.cached(w, r, cache.Key("suggest/standards", q), func(e *lookup.Engine) (any, error) {
		return suggestions(q, e.StandardCandidates(q)), nil
	})
}
