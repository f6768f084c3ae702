package approval

import (
	"fmt"
	"time"

	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/auth"
	"github.com/primelots/api-realty/internal/timeutil"
	"gorm.io/gorm"
)

// Executor runs a mutation for one action name. The payload is the original
// JSON request body; entityID is the target row, zero for creations.
type Executor func(entityID uint, payload []byte) error

// Gate is the single apply-or-propose capability: admins mutate directly,
// secretaries stage a pending request carrying the same payload, and an
// approval re-dispatches that payload through the very same executor.
type Gate struct {
	DB        *gorm.DB
	Now       func() time.Time
	executors map[string]Executor
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{
		DB:        db,
		Now:       timeutil.Now,
		executors: make(map[string]Executor),
	}
}

// Register binds an action name to its executor. Call once per action at
// wiring time.
func (g *Gate) Register(action string, exec Executor) {
	g.executors[action] = exec
}

// Apply either executes the action now (ADMIN) or stages it (any other
// role). The boolean reports whether the mutation ran.
func (g *Gate) Apply(role string, userID uint, action string, entityID uint, payload []byte) (bool, *Request, error) {
	exec, ok := g.executors[action]
	if !ok {
		return false, nil, fmt.Errorf("approval: unknown action %q", action)
	}
	if role == auth.RoleAdmin {
		return true, nil, exec(entityID, payload)
	}

	req := &Request{
		Action:      action,
		EntityID:    entityID,
		Payload:     string(payload),
		Status:      StatusPending,
		RequestedBy: userID,
	}
	if err := g.DB.Create(req).Error; err != nil {
		return false, nil, err
	}
	return false, req, nil
}

// Approve executes a pending request and records the decision. The executor
// runs first: a failed mutation leaves the request PENDING.
func (g *Gate) Approve(id, decidedBy uint) (*Request, error) {
	req, err := g.find(id)
	if err != nil {
		return nil, err
	}
	exec, ok := g.executors[req.Action]
	if !ok {
		return nil, fmt.Errorf("approval: unknown action %q", req.Action)
	}
	if err := exec(req.EntityID, []byte(req.Payload)); err != nil {
		return nil, err
	}
	return req, g.decide(req, StatusApproved, decidedBy, "")
}

// Reject closes a pending request without running it.
func (g *Gate) Reject(id, decidedBy uint, reason string) (*Request, error) {
	req, err := g.find(id)
	if err != nil {
		return nil, err
	}
	return req, g.decide(req, StatusRejected, decidedBy, reason)
}

// ListPending returns requests awaiting a decision.
func (g *Gate) ListPending() ([]Request, error) {
	var list []Request
	err := g.DB.Where("status = ?", StatusPending).Order("id ASC").Find(&list).Error
	return list, err
}

func (g *Gate) find(id uint) (*Request, error) {
	var req Request
	if err := g.DB.First(&req, id).Error; err != nil {
		return nil, apperror.NotFound("approval request not found")
	}
	if req.Status != StatusPending {
		return nil, apperror.InvalidState(fmt.Sprintf("request is already %s", req.Status))
	}
	return &req, nil
}

func (g *Gate) decide(req *Request, status string, decidedBy uint, reason string) error {
	now := g.Now()
	req.Status = status
	req.DecidedBy = &decidedBy
	req.DecidedAt = &now
	req.Reason = reason
	return g.DB.Save(req).Error
}
