package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/openboard/service-jobboard-go/internal/auth"
	"github.com/openboard/service-jobboard-go/internal/user/entity"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

// Handler exposes HTTP endpoints for accounts and login.
type Handler struct {
	svc      *UserService
	tokens   *auth.TokenService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, tokens *auth.TokenService, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		svc:      NewUserService(db, nil, nil),
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=5"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
}

// LoginRequest is the payload for obtaining a token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register: create an account and return a
// token for it. Self-registered accounts are never admins.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.BadRequest("invalid payload: %v", err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, apperr.BadRequest("invalid registration: %v", err))
		return
	}
	created, err := h.svc.Register(r.Context(), &entity.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	token, err := h.tokens.Issue(auth.Identity{Username: created.Username, IsAdmin: created.IsAdmin})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// Login handles POST /auth/token: verify credentials and return a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.BadRequest("invalid payload: %v", err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, apperr.BadRequest("invalid login: %v", err))
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	token, err := h.tokens.Issue(auth.Identity{Username: u.Username, IsAdmin: u.IsAdmin})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Get handles GET /users/{username} (owner or admin).
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := auth.RequireOwnerOrAdmin(auth.IdentityFrom(r.Context()), username); err != nil {
		h.writeError(w, err)
		return
	}
	u, err := h.svc.Get(r.Context(), username)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// Update handles PATCH /users/{username} (owner or admin). Only admins
// may change the admin flag.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	id := auth.IdentityFrom(r.Context())
	if err := auth.RequireOwnerOrAdmin(id, username); err != nil {
		h.writeError(w, err)
		return
	}
	var p Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeError(w, apperr.BadRequest("invalid payload: %v", err))
		return
	}
	if err := h.validate.Struct(&p); err != nil {
		h.writeError(w, apperr.BadRequest("invalid user patch: %v", err))
		return
	}
	if p.IsAdmin != nil {
		if err := auth.RequireAdmin(id); err != nil {
			h.writeError(w, err)
			return
		}
	}
	u, err := h.svc.Update(r.Context(), username, &p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// Delete handles DELETE /users/{username} (owner or admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := auth.RequireOwnerOrAdmin(auth.IdentityFrom(r.Context()), username); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.Remove(r.Context(), username); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": username})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.logger.Errorw("user request failed", "err", err)
		h.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	h.logger.Debugw("user request rejected", "err", err)
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
