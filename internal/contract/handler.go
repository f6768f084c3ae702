package contract

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/approval"
	"github.com/primelots/api-realty/internal/auth"
	"github.com/primelots/api-realty/internal/filestore"
)

// Gate action names.
const (
	ActionCreate  = "contract.create"
	ActionPayment = "contract.payment"
	ActionForfeit = "contract.forfeit"
)

type Handler struct {
	Service *Service
	Files   filestore.Store
	Gate    *approval.Gate
}

// paymentPayload carries the fields AcceptInput keeps out of responses, so a
// staged request replays with the same attachment and receiver.
type paymentPayload struct {
	AcceptInput
	AttachmentPath string `json:"attachmentPath"`
	ReceivedByID   uint   `json:"receivedById"`
}

// NewHandler wires the contract surface and registers its mutations on the
// approval gate, so a secretary's request and an admin's approval run the
// exact same code path.
func NewHandler(svc *Service, files filestore.Store, gate *approval.Gate) *Handler {
	h := &Handler{Service: svc, Files: files, Gate: gate}

	gate.Register(ActionCreate, func(_ uint, payload []byte) error {
		var in CreateInput
		if err := json.Unmarshal(payload, &in); err != nil {
			return apperror.Validation("malformed payload")
		}
		_, err := svc.Create(in)
		return err
	})
	gate.Register(ActionPayment, func(entityID uint, payload []byte) error {
		var p paymentPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return apperror.Validation("malformed payload")
		}
		p.AcceptInput.AttachmentPath = p.AttachmentPath
		p.AcceptInput.ReceivedByID = p.ReceivedByID
		_, _, err := svc.AcceptPayment(entityID, p.AcceptInput)
		return err
	})
	gate.Register(ActionForfeit, func(entityID uint, _ []byte) error {
		_, err := svc.Forfeit(entityID)
		return err
	})
	return h
}

// POST /contracts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperror.Write(w, apperror.Validation("malformed JSON"))
		return
	}

	role := auth.RoleFrom(r.Context())
	if role != auth.RoleAdmin {
		payload, _ := json.Marshal(in)
		_, req, err := h.Gate.Apply(role, auth.UserFrom(r.Context()), ActionCreate, 0, payload)
		if err != nil {
			apperror.Write(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, req)
		return
	}

	c, err := h.Service.Create(in)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GET /contracts?status=ON_GOING
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Repo.List(h.Service.DB, r.URL.Query().Get("status"))
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /contracts/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.Service.Repo.FindByID(h.Service.DB, id)
	if err != nil {
		apperror.Write(w, apperror.NotFound("contract not found"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GET /contracts/{id}/breakdown
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

// GET /contracts/{id}/payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := h.Service.Payments.ListByContract(h.Service.DB, id)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /contracts/{id}/payments
//
// Accepts JSON, or multipart/form-data with a "payment" JSON field and an
// optional "attachment" file. The attachment is saved before the transaction
// and rolled back when the payment is rejected, since file writes are not
// covered by the database transaction.
func (h *Handler) AcceptPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in AcceptInput
	var attachmentPath string
	ct := r.Header.Get("Content-Type")
	if len(ct) >= 19 && ct[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			apperror.Write(w, apperror.Validation("malformed multipart body"))
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("payment")), &in); err != nil {
			apperror.Write(w, apperror.Validation("malformed payment field"))
			return
		}
		if file, header, err := r.FormFile("attachment"); err == nil {
			defer file.Close()
			stored, err := h.Files.Save(header.Filename, file)
			if err != nil {
				apperror.Write(w, err)
				return
			}
			attachmentPath = stored.Path
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			apperror.Write(w, apperror.Validation("malformed JSON"))
			return
		}
	}
	in.AttachmentPath = attachmentPath
	in.ReceivedByID = auth.UserFrom(r.Context())

	role := auth.RoleFrom(r.Context())
	if role != auth.RoleAdmin {
		payload, _ := json.Marshal(paymentPayload{in, in.AttachmentPath, in.ReceivedByID})
		_, req, err := h.Gate.Apply(role, in.ReceivedByID, ActionPayment, id, payload)
		if err != nil {
			h.rollbackAttachment(attachmentPath)
			apperror.Write(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, req)
		return
	}

	p, c, err := h.Service.AcceptPayment(id, in)
	if err != nil {
		h.rollbackAttachment(attachmentPath)
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"payment": p, "contract": c})
}

// POST /contracts/{id}/forfeit
func (h *Handler) Forfeit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	role := auth.RoleFrom(r.Context())
	if role != auth.RoleAdmin {
		_, req, err := h.Gate.Apply(role, auth.UserFrom(r.Context()), ActionForfeit, id, []byte("{}"))
		if err != nil {
			apperror.Write(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, req)
		return
	}

	c, err := h.Service.Forfeit(id)
	if err != nil {
		apperror.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) rollbackAttachment(path string) {
	if path == "" || h.Files == nil {
		return
	}
	_ = h.Files.Rollback(path)
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperror.Write(w, apperror.Validation("invalid contract id"))
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
