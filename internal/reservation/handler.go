package reservation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/auth"
	"gorm.io/gorm"
)

type Handler struct {
	Service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Service: NewService(db)}
}

// POST /reservations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	in.ReceivedByID = auth.UserFrom(r.Context())

	res, err := h.Service.Create(in)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// GET /reservations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Repo.List(h.Service.DB)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /reservations/{id}. Lazily forfeits a lapsed hold before responding.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid reservation id"))
		return
	}
	res, err := h.Service.Get(uint(id))
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /reservations/sweep. The daily in-process ticker runs the same
// service call.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.Sweep()
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"forfeited": count})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
