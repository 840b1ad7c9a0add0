package employee

type ProvisionEmployeeRequest struct {
	ID             uint   `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	EmployeeType   string `json:"employee_type"`
	ManagerID      *uint  `json:"manager_id,omitempty"`
}

type EmployeeResponse struct {
	ID             uint   `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	EmployeeType   string `json:"employee_type"`
	ManagerID      *uint  `json:"manager_id,omitempty"`
}
