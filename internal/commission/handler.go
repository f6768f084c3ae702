package commission

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/auth"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// GET /commissions/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.Service.Repo.FindByID(h.Service.DB, id)
	if err != nil {
		apperror.Write(w, apperror.NotFound("commission not found"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GET /agents/{id}/commissions
func (h *Handler) ListByAgent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := h.Service.Repo.ListByAgent(h.Service.DB, id)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /commissions/{id}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in StartInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	c, err := h.Service.Start(id, in)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// POST /commissions/{id}/release
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in ReleaseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}
	in.ReceivedByID = auth.UserFrom(r.Context())

	c, p, err := h.Service.Release(id, in)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"commission": c, "payment": p})
}

// GET /commissions/{id}/breakdown
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rows, err := h.Service.Breakdown(id)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid id"))
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
