package domain

import "time"

// Manager action kinds recorded in the audit trail.
const (
	ActionFreezeAccount      = "FREEZE_ACCOUNT"
	ActionUnfreezeAccount    = "UNFREEZE_ACCOUNT"
	ActionApproveTransaction = "APPROVE_TRANSACTION"
	ActionRejectTransaction  = "REJECT_TRANSACTION"
	ActionViewUser           = "VIEW_USER"
	ActionViewAccount        = "VIEW_ACCOUNT"
)

// ManagerAction is an append-only audit record of a privileged action.
// Target references are weak: deleting a target nulls the reference,
// the action record survives.
type ManagerAction struct {
	ID                int64     `json:"id"`
	Manager           string    `json:"manager"`
	Action            string    `json:"action"`
	TargetUser        *string   `json:"target_user,omitempty"`
	TargetAccount     *int32    `json:"target_account,omitempty"`
	TargetTransaction *int64    `json:"target_transaction,omitempty"`
	Note              string    `json:"note"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateActionParams is the input data to record a manager action.
type CreateActionParams struct {
	Manager           string
	Action            string
	TargetUser        *string
	TargetAccount     *int32
	TargetTransaction *int64
	Note              string
}
