package approvals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogarmed/storefront/internal/domain/models"
)

type fakeApprovalBackend struct {
	owner []models.PendingApproval
	admin []models.PendingApproval

	ownerDecisions []models.ApprovalDecision
	adminDecisions []models.ApprovalDecision
}

func (f *fakeApprovalBackend) OwnerPendingApprovals(context.Context) ([]models.PendingApproval, error) {
	return f.owner, nil
}

func (f *fakeApprovalBackend) AdminPendingApprovals(context.Context) ([]models.PendingApproval, error) {
	return f.admin, nil
}

func (f *fakeApprovalBackend) HandleOwnerApproval(_ context.Context, d models.ApprovalDecision) error {
	f.ownerDecisions = append(f.ownerDecisions, d)
	return nil
}

func (f *fakeApprovalBackend) HandleAdminApproval(_ context.Context, d models.ApprovalDecision) error {
	f.adminDecisions = append(f.adminDecisions, d)
	return nil
}

func TestPendingRoutesByScope(t *testing.T) {
	backend := &fakeApprovalBackend{
		owner: []models.PendingApproval{{ID: 1, Role: "admin"}},
		admin: []models.PendingApproval{{ID: 2, Role: "employee"}, {ID: 3, Role: "employee"}},
	}
	svc := NewService(backend, nil)
	ctx := context.Background()

	owner, err := svc.Pending(ctx, ScopeOwner)
	require.NoError(t, err)
	assert.Len(t, owner, 1)

	admin, err := svc.Pending(ctx, ScopeAdmin)
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}

func TestDecideRejectsUnknownAction(t *testing.T) {
	backend := &fakeApprovalBackend{}
	svc := NewService(backend, nil)

	var vErr *ValidationError
	err := svc.Decide(context.Background(), ScopeAdmin, models.ApprovalDecision{ApprovalID: 1, Action: "defer"})
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, backend.adminDecisions)
}

func TestDecideForwardsToScopeEndpoint(t *testing.T) {
	backend := &fakeApprovalBackend{}
	svc := NewService(backend, nil)
	ctx := context.Background()

	require.NoError(t, svc.Decide(ctx, ScopeOwner, models.ApprovalDecision{ApprovalID: 5, Action: ActionApprove}))
	require.NoError(t, svc.Decide(ctx, ScopeAdmin, models.ApprovalDecision{ApprovalID: 6, Action: ActionReject}))

	require.Len(t, backend.ownerDecisions, 1)
	require.Len(t, backend.adminDecisions, 1)
	assert.Equal(t, int64(5), backend.ownerDecisions[0].ApprovalID)
	assert.Equal(t, "reject", backend.adminDecisions[0].Action)
}

func TestStatistics(t *testing.T) {
	stats := Statistics([]models.PendingApproval{
		{Role: "employee"}, {Role: "employee"}, {Role: "admin"},
	})
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 2, stats.ByRole["employee"])
	assert.Equal(t, 1, stats.ByRole["admin"])
}
