package rbac

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHRAdmin  = "hr_admin"
)

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type PermissionsResponse struct {
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// DefaultPolicies grants each role its own permissions; inheritance is
// declared in DefaultRoleHierarchy.
var DefaultPolicies = [][]string{
	{RoleEmployee, "leave_request", "create"},
	{RoleEmployee, "leave_request", "read"},
	{RoleEmployee, "employee", "read"},
	{RoleManager, "leave_request", "approve"},
	{RoleHRAdmin, "employee", "manage"},
}

// DefaultRoleHierarchy lists child, parent pairs: a manager can do
// everything an employee can, an hr_admin everything a manager can.
var DefaultRoleHierarchy = [][]string{
	{RoleManager, RoleEmployee},
	{RoleHRAdmin, RoleManager},
}
