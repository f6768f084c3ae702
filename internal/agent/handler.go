package agent

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/primelots/api-realty/internal/apperror"
	"gorm.io/gorm"
)

type Handler struct {
	DB   *gorm.DB
	Repo Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repo: NewRepository()}
}

// POST /agents
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var a Agent
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	if a.FirstName == "" || a.LastName == "" {
		apperror.Write(w, apperror.Validation("first and last name are required"))
		return
	}
	a.ID = 0
	a.Deleted = false
	if err := h.Repo.Create(h.DB, &a); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// GET /agents
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(h.DB)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /agents/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid agent id"))
		return
	}
	a, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("agent not found"))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// PUT /agents/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid agent id"))
		return
	}
	existing, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("agent not found"))
		return
	}

	var in Agent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	existing.FirstName = in.FirstName
	existing.LastName = in.LastName
	existing.Email = in.Email
	existing.ContactNumber = in.ContactNumber
	existing.Address = in.Address

	if err := h.Repo.Update(h.DB, existing); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// DELETE /agents/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid agent id"))
		return
	}
	if err := h.Repo.SoftDelete(h.DB, uint(id)); err != nil {
		apperror.Write(w, apperror.NotFound("agent not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
