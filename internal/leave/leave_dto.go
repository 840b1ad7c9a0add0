package leave

const dateLayout = "2006-01-02"

// CreateLeaveRequestRequest is the HTTP body of POST /leaverequest.
type CreateLeaveRequestRequest struct {
	EmployeeID uint   `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LeaveType  string `json:"leave_type"`
	Comments   string `json:"comments"`
}

// ApproveLeaveRequestRequest is the HTTP body of POST /leaverequest/approve.
type ApproveLeaveRequestRequest struct {
	LeaveRequestID   uint    `json:"leave_request_id"`
	Status           string  `json:"status"`
	ApprovalComments *string `json:"approval_comments"`
}

type LeaveRequestResponse struct {
	ID               uint    `json:"id"`
	EmployeeID       uint    `json:"employee_id"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	LeaveType        string  `json:"leave_type"`
	Status           string  `json:"status"`
	Comments         string  `json:"comments"`
	ApprovalComments *string `json:"approval_comments,omitempty"`
	ApprovedBy       *uint   `json:"approved_by,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
}
