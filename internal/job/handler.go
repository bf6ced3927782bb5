package job

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/openboard/service-jobboard-go/internal/auth"
	"github.com/openboard/service-jobboard-go/internal/job/entity"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

// Handler exposes HTTP endpoints for job postings.
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

// JobRequest is the payload for creating or replacing a job. All fields
// are required; salary must be non-negative and equity must lie in [0,1].
type JobRequest struct {
	Title         string   `json:"title" validate:"required"`
	Salary        *int     `json:"salary" validate:"required,gte=0"`
	Equity        *float64 `json:"equity" validate:"required,gte=0,lte=1"`
	CompanyHandle string   `json:"companyHandle" validate:"required"`
}

func (req *JobRequest) toEntity() *entity.Job {
	j := &entity.Job{
		Title:         req.Title,
		Salary:        req.Salary,
		CompanyHandle: req.CompanyHandle,
	}
	if req.Equity != nil {
		e := strconv.FormatFloat(*req.Equity, 'f', -1, 64)
		j.Equity = &e
	}
	return j
}

// List handles GET /jobs with optional ?minSalary= and ?hasEquity=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireLoggedIn(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	q := r.URL.Query()
	jobs, err := h.svc.List(r.Context(), q.Get("minSalary"), q.Get("hasEquity"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// Create handles POST /jobs (admin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	req, err := h.decodeJob(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Create(r.Context(), req.toEntity())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{"job": created})
}

// Get handles GET /jobs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireLoggedIn(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"job": found})
}

// Update handles PATCH /jobs/{id} (admin only). All mutable fields are
// replaced; this is a full update, not a partial one.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	req, err := h.decodeJob(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.svc.Update(r.Context(), id, req.toEntity())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"job": updated})
}

// Delete handles DELETE /jobs/{id} (admin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(auth.IdentityFrom(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": strconv.FormatInt(id, 10)})
}

func (h *Handler) decodeJob(r *http.Request) (*JobRequest, error) {
	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperr.BadRequest("invalid payload: %v", err)
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, apperr.BadRequest("invalid job: %v", err)
	}
	return &req, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid id: %q", r.PathValue("id"))
	}
	return id, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.logger.Errorw("job request failed", "err", err)
		h.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	h.logger.Debugw("job request rejected", "err", err)
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
