package authz

import (
	"testing"

	"github.com/cvassist/task-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_Matrix(t *testing.T) {
	policy := NewPolicy(Options{})

	assigned := Ownership{AssignedDesigner: true}
	reviewing := Ownership{AssignedReviewer: true}
	inReview := Ownership{TaskInReview: true}

	tests := []struct {
		name    string
		role    models.Role
		op      Operation
		own     Ownership
		allowed bool
	}{
		{"admin creates task", models.RoleAdmin, OpCreateTask, Ownership{}, true},
		{"manager creates task", models.RoleManager, OpCreateTask, Ownership{}, true},
		{"designer cannot create task", models.RoleDesigner, OpCreateTask, Ownership{}, false},
		{"reviewer cannot create task", models.RoleReviewer, OpCreateTask, Ownership{}, false},

		{"admin views all tasks", models.RoleAdmin, OpViewAllTasks, Ownership{}, true},
		{"manager views all tasks", models.RoleManager, OpViewAllTasks, Ownership{}, true},
		{"designer cannot view all tasks", models.RoleDesigner, OpViewAllTasks, Ownership{}, false},
		{"reviewer cannot view all tasks", models.RoleReviewer, OpViewAllTasks, Ownership{}, false},

		{"assigned designer views task", models.RoleDesigner, OpViewTask, assigned, true},
		{"unassigned designer cannot view task", models.RoleDesigner, OpViewTask, Ownership{}, false},
		{"reviewer views task in review", models.RoleReviewer, OpViewTask, inReview, true},
		{"reviewer cannot view task outside review", models.RoleReviewer, OpViewTask, Ownership{}, false},

		{"assigned designer transitions", models.RoleDesigner, OpTransitionStatus, assigned, true},
		{"unassigned designer cannot transition", models.RoleDesigner, OpTransitionStatus, Ownership{}, false},
		{"assigned reviewer transitions", models.RoleReviewer, OpTransitionStatus, reviewing, true},
		{"unassigned reviewer cannot transition", models.RoleReviewer, OpTransitionStatus, Ownership{}, false},
		{"manager transitions any task", models.RoleManager, OpTransitionStatus, Ownership{}, true},

		{"manager assigns", models.RoleManager, OpAssignTask, Ownership{}, true},
		{"designer cannot assign", models.RoleDesigner, OpAssignTask, assigned, false},

		{"admin rates", models.RoleAdmin, OpRateTask, Ownership{}, true},
		{"assigned reviewer rates", models.RoleReviewer, OpRateTask, reviewing, true},
		{"unassigned reviewer cannot rate", models.RoleReviewer, OpRateTask, Ownership{}, false},
		{"designer cannot rate", models.RoleDesigner, OpRateTask, assigned, false},

		{"admin manages accounts", models.RoleAdmin, OpManageAccounts, Ownership{}, true},
		{"manager cannot manage accounts", models.RoleManager, OpManageAccounts, Ownership{}, false},
		{"admin manages users", models.RoleAdmin, OpManageUsers, Ownership{}, true},
		{"manager cannot manage users", models.RoleManager, OpManageUsers, Ownership{}, false},

		{"manager views staff", models.RoleManager, OpViewStaff, Ownership{}, true},
		{"designer cannot view staff", models.RoleDesigner, OpViewStaff, Ownership{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := policy.Authorize(tc.role, tc.op, tc.own)
			assert.Equal(t, tc.allowed, decision.Allowed)
			if !tc.allowed {
				assert.Equal(t, ReasonPermissionDenied, decision.Reason)
				assert.NotEmpty(t, decision.Message)
			}
		})
	}
}

func TestAuthorize_Unauthenticated(t *testing.T) {
	policy := NewPolicy(Options{})

	decision := policy.Authorize("", OpViewTask, Ownership{})
	require.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)
}

func TestAuthorize_UnknownRole(t *testing.T) {
	policy := NewPolicy(Options{})

	decision := policy.Authorize(models.Role("intern"), OpViewTask, Ownership{TaskInReview: true})
	require.False(t, decision.Allowed)
	assert.Equal(t, ReasonPermissionDenied, decision.Reason)
}

func TestAuthorize_DesignerCreateVariant(t *testing.T) {
	strict := NewPolicy(Options{})
	relaxed := NewPolicy(Options{AllowDesignerCreate: true})

	assert.False(t, strict.Authorize(models.RoleDesigner, OpCreateTask, Ownership{}).Allowed)
	assert.True(t, relaxed.Authorize(models.RoleDesigner, OpCreateTask, Ownership{}).Allowed)

	// The relaxed variant must not leak into other operations.
	assert.False(t, relaxed.Authorize(models.RoleDesigner, OpViewAllTasks, Ownership{}).Allowed)
	assert.False(t, relaxed.Authorize(models.RoleReviewer, OpCreateTask, Ownership{}).Allowed)
}
