package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/repository"
)

// resourceHandler serves the six collection endpoints for one resource.
type resourceHandler[L, D, P any] struct {
	name     string
	repo     repository.Repository[L, D, P]
	fields   patch.Schema
	validate func(P) error
}

func mount[L, D, P any](r chi.Router, path string, h *resourceHandler[L, D, P]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.replace)
		r.Patch("/{id}", h.patch)
		r.Delete("/{id}", h.delete)
	})
}

func (h *resourceHandler[L, D, P]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []L{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *resourceHandler[L, D, P]) get(w http.ResponseWriter, r *http.Request) {
	id, err := h.id(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.wrap(id, err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *resourceHandler[L, D, P]) create(w http.ResponseWriter, r *http.Request) {
	payload, err := h.decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.repo.Create(r.Context(), payload)
	if err != nil {
		writeError(w, fmt.Errorf("create %s: %w", h.name, err))
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *resourceHandler[L, D, P]) replace(w http.ResponseWriter, r *http.Request) {
	id, err := h.id(r)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := h.decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.Replace(r.Context(), id, payload); err != nil {
		writeError(w, h.wrap(id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandler[L, D, P]) patch(w http.ResponseWriter, r *http.Request) {
	id, err := h.id(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var ops []patch.Operation
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		writeError(w, fmt.Errorf("%w: invalid patch document: %v", errBadRequest, err))
		return
	}
	if len(ops) == 0 {
		writeError(w, fmt.Errorf("%w: patch document has no operations", errBadRequest))
		return
	}

	current, err := h.repo.Payload(r.Context(), id)
	if err != nil {
		writeError(w, h.wrap(id, err))
		return
	}

	next, err := applyPatch(*current, ops, h.fields)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate(next); err != nil {
		writeError(w, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err))
		return
	}

	if err := h.repo.Replace(r.Context(), id, next); err != nil {
		writeError(w, h.wrap(id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandler[L, D, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.id(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, h.wrap(id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandler[L, D, P]) id(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id %q", errBadRequest, h.name, raw)
	}
	return id, nil
}

func (h *resourceHandler[L, D, P]) decodePayload(r *http.Request) (P, error) {
	var payload P
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("%w: invalid %s body: %v", errBadRequest, h.name, err)
	}
	if err := h.validate(payload); err != nil {
		return payload, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	return payload, nil
}

func (h *resourceHandler[L, D, P]) wrap(id int64, err error) error {
	return fmt.Errorf("%s %d: %w", h.name, id, err)
}

// applyPatch applies replace operations to the JSON form of current. Only
// fields in the schema may be targeted.
func applyPatch[P any](current P, ops []patch.Operation, fields patch.Schema) (P, error) {
	var zero P

	raw, err := json.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("encode current record: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, fmt.Errorf("decode current record: %w", err)
	}

	for _, op := range ops {
		if op.Op != patch.OpReplace {
			return zero, fmt.Errorf("%w: unsupported patch operation %q", errBadRequest, op.Op)
		}
		if !strings.HasPrefix(op.Path, "/") {
			return zero, fmt.Errorf("%w: invalid patch path %q", errBadRequest, op.Path)
		}
		name := op.Field()
		if _, ok := fields.Lookup(name); !ok {
			return zero, fmt.Errorf("%w: unknown patch path %q", errBadRequest, op.Path)
		}
		doc[name] = op.Value
	}

	raw, err = json.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("encode patched record: %w", err)
	}

	var next P
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		return zero, fmt.Errorf("%w: patched record is invalid: %v", errBadRequest, err)
	}
	return next, nil
}
