package client

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

// POST /clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	if c.FirstName == "" || c.LastName == "" {
		apperror.Write(w, apperror.Validation("first and last name are required"))
		return
	}
	c.ID = 0
	c.Deleted = false
	if err := h.Repo.Create(h.DB, &c); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GET /clients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(h.DB)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /clients/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid client id"))
		return
	}
	c, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("client not found"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// PUT /clients/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid client id"))
		return
	}
	existing, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("client not found"))
		return
	}

	var in Client
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	existing.FirstName = in.FirstName
	existing.LastName = in.LastName
	existing.MiddleName = in.MiddleName
	existing.Email = in.Email
	existing.ContactNumber = in.ContactNumber
	existing.Address = in.Address
	existing.Occupation = in.Occupation

	if err := h.Repo.Update(h.DB, existing); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// DELETE /clients/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid client id"))
		return
	}
	if err := h.Repo.SoftDelete(h.DB, uint(id)); err != nil {
		apperror.Write(w, apperror.NotFound("client not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
