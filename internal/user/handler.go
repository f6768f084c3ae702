// internal/user/handler.go
package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/auth"
	"gorm.io/gorm"
)

type Handler struct {
	DB   *gorm.DB
	Repo Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repo: NewRepository()}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type createRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}

	u, err := h.Repo.FindByEmail(h.DB, req.Email)
	if err != nil || !u.Active {
		apperror.Write(w, apperror.Unauthenticated("invalid credentials"))
		return
	}
	if !CheckPassword(u.Password, req.Password) {
		apperror.Write(w, apperror.Unauthenticated("invalid credentials"))
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

// POST /users (admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	if req.Email == "" {
		apperror.Write(w, apperror.Validation("email is required"))
		return
	}
	if req.Role != auth.RoleAdmin && req.Role != auth.RoleSecretary {
		apperror.Write(w, apperror.Validation("role must be ADMIN or SECRETARY"))
		return
	}

	// Accounts created without a password get a generated temporary one,
	// returned once in the response.
	var temporary string
	if req.Password == "" {
		generated, err := TemporaryPassword()
		if err != nil {
			apperror.Write(w, err)
			return
		}
		req.Password = generated
		temporary = generated
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	u := &User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      req.Role,
		Active:    true,
	}
	if err := h.Repo.Create(h.DB, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperror.Write(w, apperror.Conflict("email already registered"))
			return
		}
		apperror.Write(w, err)
		return
	}
	if temporary != "" {
		writeJSON(w, http.StatusCreated, map[string]any{"user": u, "temporaryPassword": temporary})
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// GET /users (admin)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(h.DB)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid user id"))
		return
	}
	u, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("user not found"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
