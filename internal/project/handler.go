// internal/project/handler.go
package project

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

// POST /projects
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	if p.Name == "" {
		apperror.Write(w, apperror.Validation("project name is required"))
		return
	}
	p.ID = 0
	p.Deleted = false
	if err := h.Repo.Create(h.DB, &p); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GET /projects
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(h.DB)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /projects/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid project id"))
		return
	}
	p, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("project not found"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /projects/{id}/phases
func (h *Handler) AddPhase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid project id"))
		return
	}
	if _, err := h.Repo.FindByID(h.DB, uint(id)); err != nil {
		apperror.Write(w, apperror.NotFound("project not found"))
		return
	}

	var ph Phase
	if err := json.NewDecoder(r.Body).Decode(&ph); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	ph.ID = 0
	ph.ProjectID = uint(id)
	if err := h.Repo.AddPhase(h.DB, &ph); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ph)
}

// POST /phases/{id}/blocks
func (h *Handler) AddBlock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid phase id"))
		return
	}

	var b Block
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	b.ID = 0
	b.PhaseID = uint(id)
	if err := h.Repo.AddBlock(h.DB, &b); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
