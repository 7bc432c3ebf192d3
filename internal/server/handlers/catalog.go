package handlers

import (
	"net/http"

	"github.com/agentstation/fieldscope/internal/server/cache"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// HandleListApplications handles GET /api/v1/applications.
func (h *Handlers) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, cache.Key("applications"), func(e *lookup.Engine) (any, error) {
		return e.Applications(), nil
	})
}

// HandleApplicationFields handles GET /api/v1/applications/{app}/fields.
// The records come back in table order.
func (h *Handlers) HandleApplicationFields(w http.ResponseWriter, r *http.Request) {
	app := r.PathValue("app")
	h.cached(w, r, cache.Key("applications/fields", app), func(e *lookup.Engine) (any, error) {
		if !e.HasApplication(app) {
			return nil, &errors.NotFoundError{Resource: "app/modal", ID: app}
		}
		return e.FieldsForApplication(app), nil
	})
}

// HandleListFields handles GET /api/v1/fields. The optional app parameter
// narrows the list to one application's fields.
func (h *Handlers) HandleListFields(w http.ResponseWriter, r *http.Request) {
	app := r.URL.Query().Get("app")
	h.cached(w, r, cache.Key("fields", app), func(e *lookup.Engine) (any, error) {
		if app == "" {
			return e.Fields(), nil
		}
		if !e.HasApplication(app) {
			return nil, &errors.NotFoundError{Resource: "app/modal", ID: app}
		}
		return e.FieldNamesForApplication(app), nil
	})
}

// HandleGetField handles GET /api/v1/fields/{name}. With all=true every
// record sharing the name is returned instead of the first.
func (h *Handlers) HandleGetField(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	all := r.URL.Query().Get("all") == "true"

	key := cache.Key("field", name)
	if all {
		key = cache.Key("field/all", name)
	}
	h.cached(w, r, key, func(e *lookup.Engine) (any, error) {
		if all {
			records := e.RecordsForField(name)
			if len(records) == 0 {
				return nil, &errors.NotFoundError{Resource: "field", ID: name}
			}
			return records, nil
		}
		rec, ok := e.RecordForField(name)
		if !ok {
			return nil, &errors.NotFoundError{Resource: "field", ID: name}
		}
		return rec, nil
	})
}
