// internal/lot/handler.go
package lot

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

// POST /lots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var l Lot
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	if l.Number == "" || l.AreaSqm <= 0 || l.SqmPrice <= 0 {
		apperror.Write(w, apperror.Validation("number, areaSqm and sqmPrice are required"))
		return
	}
	l.ID = 0
	l.Status = StatusOpen
	if err := h.Repo.Create(h.DB, &l); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// GET /lots?status=OPEN
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(h.DB, r.URL.Query().Get("status"))
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /lots/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid lot id"))
		return
	}
	l, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("lot not found"))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// PUT /lots/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid lot id"))
		return
	}
	existing, err := h.Repo.FindByID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.NotFound("lot not found"))
		return
	}
	if existing.Status != StatusOpen {
		apperror.Write(w, apperror.InvalidState("only OPEN lots can be edited"))
		return
	}

	var in Lot
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	existing.Number = in.Number
	existing.AreaSqm = in.AreaSqm
	existing.SqmPrice = in.SqmPrice

	if err := h.Repo.Update(h.DB, existing); err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
