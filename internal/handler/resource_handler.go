package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-tms-api/internal/middleware"
	"go-tms-api/internal/model"
	"go-tms-api/pkg/apierror"
)

type resourceGateway[D model.Keyed[K], K model.ID] interface {
	Entity() string
	GetByID(ctx context.Context, id K) (D, error)
	Create(ctx context.Context, dto D) (D, error)
	Update(ctx context.Context, dto D) error
	Delete(ctx context.Context, id K) error
	ListBy(ctx context.Context, relation string, value int64) ([]D, error)
}

// ListRoute exposes GET {Path} listing the rows whose Relation equals the
// {id} URL parameter.
type ListRoute struct {
	Path     string
	Relation string
	// OwnerOnly restricts the listing to the caller's own user id.
	OwnerOnly bool
	// Parent names the entity {id} refers to, used in not-found messages.
	Parent string
	// RequireAny turns an empty result into a not-found error.
	RequireAny bool
	// ParentLookup, when set, must succeed before the rows are listed.
	ParentLookup func(ctx context.Context, id int64) error
}

// ResourceHandler serves get/create/update/delete for one entity type
// mounted at pattern, relative to the API root.
type ResourceHandler[D model.Keyed[K], K model.ID] struct {
	pattern string
	gateway resourceGateway[D, K]
	lists   []ListRoute
}

func NewResourceHandler[D model.Keyed[K], K model.ID](pattern string, gateway resourceGateway[D, K], lists ...ListRoute) *ResourceHandler[D, K] {
	return &ResourceHandler[D, K]{pattern: pattern, gateway: gateway, lists: lists}
}

func (h *ResourceHandler[D, K]) Pattern() string {
	return h.pattern
}

func (h *ResourceHandler[D, K]) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	for _, list := range h.lists {
		r.Get(list.Path, h.list(list))
	}
}

func (h *ResourceHandler[D, K]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID[K](r)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := h.gateway.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

func (h *ResourceHandler[D, K]) Create(w http.ResponseWriter, r *http.Request) {
	var payload D
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.gateway.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), created.GetID()))
	writeJSON(w, http.StatusCreated, created)
}

// Update overwrites the row identified by the id inside the body.
func (h *ResourceHandler[D, K]) Update(w http.ResponseWriter, r *http.Request) {
	var payload D
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(payload); err != nil {
		writeError(w, err)
		return
	}

	if err := h.gateway.Update(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *ResourceHandler[D, K]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID[K](r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.gateway.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *ResourceHandler[D, K]) list(route ListRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID[int64](r)
		if err != nil {
			writeError(w, err)
			return
		}

		if route.OwnerOnly {
			principal, _ := middleware.PrincipalFromContext(r)
			if !middleware.VerifyOwner(principal, id) {
				slog.Warn("unauthorized owner access", "entity", h.gateway.Entity(), "requested_user_id", id)
				writeError(w, apierror.Unauthorized())
				return
			}
		}

		if route.ParentLookup != nil {
			if err := route.ParentLookup(r.Context(), id); err != nil {
				writeError(w, err)
				return
			}
		}

		items, err := h.gateway.ListBy(r.Context(), route.Relation, id)
		if err != nil {
			writeError(w, err)
			return
		}

		if route.RequireAny && len(items) == 0 {
			slog.Warn("entity not found", "entity", route.Parent, "id", id)
			writeError(w, apierror.NotFound(route.Parent, id))
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func pathID[K model.ID](r *http.Request) (K, error) {
	id, err := model.ParseID[K](chi.URLParam(r, "id"))
	if err != nil {
		return id, apierror.BadRequest("invalid id", "id")
	}
	return id, nil
}
