// Package approvals handles the registration approval queues. The owner
// queue holds admin requests, the admin queue holds employee requests; all
// state transitions happen upstream.
package approvals

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
)

// Scope picks which approval queue a request targets.
type Scope string

const (
	ScopeOwner Scope = "owner"
	ScopeAdmin Scope = "admin"
)

// Decision actions accepted by the backend.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// BackendAPI is the slice of the upstream client the approval pages need.
type BackendAPI interface {
	OwnerPendingApprovals(ctx context.Context) ([]models.PendingApproval, error)
	AdminPendingApprovals(ctx context.Context) ([]models.PendingApproval, error)
	HandleOwnerApproval(ctx context.Context, decision models.ApprovalDecision) error
	HandleAdminApproval(ctx context.Context, decision models.ApprovalDecision) error
}

// ValidationError marks a locally rejected payload; handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Service owns the approval pages' logic.
type Service struct {
	backend BackendAPI
	logger  *zap.Logger
}

// NewService wires an approvals service instance.
func NewService(backend BackendAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// Pending lists the queue for a scope.
func (s *Service) Pending(ctx context.Context, scope Scope) ([]models.PendingApproval, error) {
	var (
		approvals []models.PendingApproval
		err       error
	)
	switch scope {
	case ScopeOwner:
		approvals, err = s.backend.OwnerPendingApprovals(ctx)
	case ScopeAdmin:
		approvals, err = s.backend.AdminPendingApprovals(ctx)
	default:
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown approval scope %q", scope)}
	}
	if err != nil {
		return nil, fmt.Errorf("load pending approvals: %w", err)
	}
	return approvals, nil
}

// Decide validates the action and forwards the decision to the scope's
// endpoint.
func (s *Service) Decide(ctx context.Context, scope Scope, decision models.ApprovalDecision) error {
	if decision.Action != ActionApprove && decision.Action != ActionReject {
		return &ValidationError{Reason: "action must be approve or reject"}
	}

	var err error
	switch scope {
	case ScopeOwner:
		err = s.backend.HandleOwnerApproval(ctx, decision)
	case ScopeAdmin:
		err = s.backend.HandleAdminApproval(ctx, decision)
	default:
		return &ValidationError{Reason: fmt.Sprintf("unknown approval scope %q", scope)}
	}
	if err != nil {
		return err
	}

	s.logger.Info("approval resolved",
		zap.Int64("approval_id", decision.ApprovalID),
		zap.String("action", decision.Action),
		zap.String("scope", string(scope)))
	return nil
}

// Statistics summarizes a pending queue for the page header.
func Statistics(approvals []models.PendingApproval) models.ApprovalStats {
	stats := models.ApprovalStats{Pending: len(approvals), ByRole: make(map[string]int)}
	for _, a := range approvals {
		stats.ByRole[a.Role]++
	}
	return stats
}
