package company

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/openboard/service-jobboard-go/internal/auth"
	"github.com/openboard/service-jobboard-go/internal/company/entity"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

// Handler exposes HTTP endpoints for companies.
type Handler struct {
	svc      *Service
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		svc:      NewService(db, nil),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// CompanyRequest is the payload for creating a company.
type CompanyRequest struct {
	Handle       string  `json:"handle" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,gte=0"`
	LogoURL      *string `json:"logoUrl"`
}

// List handles GET /companies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireLoggedIn(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	companies, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

// Create handles POST /companies (admin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	var req CompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.BadRequest("invalid payload: %v", err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, apperr.BadRequest("invalid company: %v", err))
		return
	}
	created, err := h.svc.Create(r.Context(), &entity.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{"company": created})
}

// Get handles GET /companies/{handle}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireLoggedIn(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	found, err := h.svc.Get(r.Context(), r.PathValue("handle"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"company": found})
}

// Update handles PATCH /companies/{handle} (admin only). Only the fields
// present in the payload are changed.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	var p Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeError(w, apperr.BadRequest("invalid payload: %v", err))
		return
	}
	if err := h.validate.Struct(&p); err != nil {
		h.writeError(w, apperr.BadRequest("invalid company patch: %v", err))
		return
	}
	updated, err := h.svc.Update(r.Context(), r.PathValue("handle"), &p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"company": updated})
}

// Delete handles DELETE /companies/{handle} (admin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	handle := r.PathValue("handle")
	if err := h.svc.Remove(r.Context(), handle); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": handle})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.logger.Errorw("company request failed", "err", err)
		h.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	h.logger.Debugw("company request rejected", "err", err)
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
