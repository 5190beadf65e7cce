package models

// PendingApproval is a registration request awaiting an owner/admin decision.
type PendingApproval struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ApprovalDecision is the resolve payload: action is "approve" or "reject".
type ApprovalDecision struct {
	ApprovalID int64  `json:"approval_id" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

// ApprovalStats summarizes the pending queue for the page header cards.
type ApprovalStats struct {
	Pending int            `json:"pending"`
	ByRole  map[string]int `json:"by_role"`
}
