package handler

import (
	"context"
	"net/http"
	"strings"

	"go-tms-api/internal/model"
)

type auditLister interface {
	List(ctx context.Context, query model.AuditQuery) (model.AuditPage, error)
}

type AuditHandler struct {
	service auditLister
}

func NewAuditHandler(service auditLister) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := h.service.List(r.Context(), model.AuditQuery{
		Entity: strings.TrimSpace(query.Get("entity")),
		Page:   parseIntOrDefault(query.Get("page"), 1),
		Limit:  parseIntOrDefault(query.Get("limit"), 50),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
