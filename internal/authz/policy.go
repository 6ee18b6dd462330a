package authz

import (
	"fmt"

	"github.com/cvassist/task-api/internal/models"
)

// Operation identifies a guarded action. The set is closed.
type Operation string

const (
	OpCreateTask        Operation = "createTask"
	OpViewAllTasks      Operation = "viewAllTasks"
	OpViewTask          Operation = "viewTask"
	OpTransitionStatus  Operation = "transitionStatus"
	OpAssignTask        Operation = "assignTask"
	OpRateTask          Operation = "rateTask"
	OpUpdateNotes       Operation = "updateNotes"
	OpManageAccounts    Operation = "manageAccounts"
	OpManageUsers       Operation = "manageUsers"
	OpViewStaff         Operation = "viewStaff"
	OpSuggestSummary    Operation = "suggestSummary"
)

// Reason classifies a denial.
type Reason string

const (
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonPermissionDenied Reason = "permission-denied"
)

// Decision is the result of an authorization check. Denials are values,
// never errors: the caller decides how to surface them.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason, format string, args ...interface{}) Decision {
	return Decision{Allowed: false, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Ownership describes the caller's relationship to the resource under
// evaluation. All fields false means "no relationship" and is the right
// input for resource-independent operations.
type Ownership struct {
	AssignedDesigner bool
	AssignedReviewer bool
	TaskInReview     bool
}

// Condition gates a grant on the caller's relationship to the resource.
type Condition func(Ownership) bool

func always(Ownership) bool             { return true }
func ifAssignedDesigner(o Ownership) bool { return o.AssignedDesigner }
func ifAssignedReviewer(o Ownership) bool { return o.AssignedReviewer }
func ifTaskInReview(o Ownership) bool     { return o.TaskInReview }

// Options tune the policy variants.
type Options struct {
	// AllowDesignerCreate enables the relaxed variant where designers may
	// create tasks themselves. The strict default restricts creation to
	// admin and manager.
	AllowDesignerCreate bool
}

// Policy is the declarative role x operation permission matrix. It is a
// pure decision table: no I/O, safe for concurrent use.
type Policy struct {
	matrix map[Operation]map[models.Role]Condition
}

// NewPolicy builds the permission matrix.
func NewPolicy(opts Options) *Policy {
	m := map[Operation]map[models.Role]Condition{
		OpCreateTask: {
			models.RoleAdmin:   always,
			models.RoleManager: always,
		},
		OpViewAllTasks: {
			models.RoleAdmin:   always,
			models.RoleManager: always,
		},
		OpViewTask: {
			models.RoleAdmin:    always,
			models.RoleManager:  always,
			models.RoleDesigner: ifAssignedDesigner,
			models.RoleReviewer: ifTaskInReview,
		},
		OpTransitionStatus: {
			models.RoleAdmin:    always,
			models.RoleManager:  always,
			models.RoleDesigner: ifAssignedDesigner,
			models.RoleReviewer: ifAssignedReviewer,
		},
		OpAssignTask: {
			models.RoleAdmin:   always,
			models.RoleManager: always,
		},
		OpRateTask: {
			models.RoleAdmin:    always,
			models.RoleManager:  always,
			models.RoleReviewer: ifAssignedReviewer,
		},
		OpUpdateNotes: {
			models.RoleAdmin:    always,
			models.RoleManager:  always,
			models.RoleDesigner: ifAssignedDesigner,
			models.RoleReviewer: ifAssignedReviewer,
		},
		OpManageAccounts: {
			models.RoleAdmin: always,
		},
		OpManageUsers: {
			models.RoleAdmin: always,
		},
		OpViewStaff: {
			models.RoleAdmin:   always,
			models.RoleManager: always,
		},
		OpSuggestSummary: {
			models.RoleAdmin:    always,
			models.RoleManager:  always,
			models.RoleDesigner: ifAssignedDesigner,
		},
	}

	if opts.AllowDesignerCreate {
		m[OpCreateTask][models.RoleDesigner] = always
	}

	return &Policy{matrix: m}
}

// Authorize decides whether a caller with the given role may perform op.
// An empty role means the caller carries no verified identity and is
// denied as unauthenticated; any other role outside the grant set is
// denied as permission-denied. Authorize never returns an error and
// never panics on unknown input.
func (p *Policy) Authorize(role models.Role, op Operation, own Ownership) Decision {
	if role == "" {
		return deny(ReasonUnauthenticated, "operation %s requires an authenticated caller", op)
	}

	grants, ok := p.matrix[op]
	if !ok {
		return deny(ReasonPermissionDenied, "unknown operation %s", op)
	}

	cond, ok := grants[role]
	if !ok {
		return deny(ReasonPermissionDenied, "role %s may not perform %s", role, op)
	}

	if !cond(own) {
		return deny(ReasonPermissionDenied, "role %s may only perform %s on their own assigned tasks", role, op)
	}

	return allow()
}
