package approval

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/auth"
)

type Handler struct {
	Gate *Gate
}

func NewHandler(gate *Gate) *Handler {
	return &Handler{Gate: gate}
}

// GET /approvals (admin)
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.Gate.ListPending()
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /approvals/{id}/approve (admin)
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid request id"))
		return
	}
	req, err := h.Gate.Approve(uint(id), auth.UserFrom(r.Context()))
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// POST /approvals/{id}/reject (admin)
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid request id"))
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	req, err := h.Gate.Reject(uint(id), auth.UserFrom(r.Context()), body.Reason)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
