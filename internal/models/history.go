package models

import (
	"time"
)

// Action types recorded in the order history ledger
const (
	ActionStatusChange       = "Status Change"
	ActionPaymentUpdate      = "Payment Update"
	ActionVerificationStatus = "Verification Status"
)

// Placeholder previous value for verification entries; the ledger does not
// read back the prior verification status.
const VerificationPreviousPlaceholder = "Not specified"

// HistoryEntry is one append-only audit record for an order mutation.
// Entries are never updated; they are removed only when their order is
// deleted.
type HistoryEntry struct {
	ID            int64     `db:"id" json:"id"`
	OrderID       int64     `db:"order_id" json:"order_id"`
	ActionType    string    `db:"action_type" json:"action_type"`
	PreviousValue string    `db:"previous_value" json:"previous_value"`
	NewValue      string    `db:"new_value" json:"new_value"`
	EmployeeID    int64     `db:"employee_id" json:"employee_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// HistoryWithEmployee is a ledger entry joined with the acting employee's name
type HistoryWithEmployee struct {
	HistoryEntry
	EmployeeName string `db:"employee_name" json:"employee_name"`
}

// NewHistoryEntry builds a ledger entry for a recorded mutation
func NewHistoryEntry(orderID int64, actionType, previousValue, newValue string, employeeID int64) *HistoryEntry {
	return &HistoryEntry{
		OrderID:       orderID,
		ActionType:    actionType,
		PreviousValue: previousValue,
		NewValue:      newValue,
		EmployeeID:    employeeID,
		CreatedAt:     GetCurrentTime(),
	}
}
