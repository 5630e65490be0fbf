package repository

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldUpdate is one column assignment in a partial order update. Columns
// are fixed by the constructors below, so the compiled SET clause never
// contains caller-supplied identifiers.
type FieldUpdate struct {
	column string
	value  interface{}
}

// SetCustomerName updates the customer name
func SetCustomerName(v string) FieldUpdate {
	return FieldUpdate{column: "customer_name", value: v}
}

// SetPlanType updates the plan type
func SetPlanType(v string) FieldUpdate {
	return FieldUpdate{column: "plan_type", value: v}
}

// SetCustomPlanDetails updates the custom plan details; nil clears them
func SetCustomPlanDetails(v *string) FieldUpdate {
	return FieldUpdate{column: "custom_plan_details", value: v}
}

// SetTotalPrice updates the total price
func SetTotalPrice(v decimal.Decimal) FieldUpdate {
	return FieldUpdate{column: "total_price", value: v}
}

// SetPaymentCollected updates the collected payment. The compiled statement
// also recomputes payment_pending so the balance invariant holds.
func SetPaymentCollected(v decimal.Decimal) FieldUpdate {
	return FieldUpdate{column: "payment_collected", value: v}
}

// SetStatus updates the order status
func SetStatus(v string) FieldUpdate {
	return FieldUpdate{column: "status", value: v}
}

// SetPaymentProofImage updates the payment proof image reference
func SetPaymentProofImage(v *string) FieldUpdate {
	return FieldUpdate{column: "payment_proof_image", value: v}
}

// SetPendingPaymentProofImage updates the pending payment proof image reference
func SetPendingPaymentProofImage(v *string) FieldUpdate {
	return FieldUpdate{column: "pending_payment_proof_image", value: v}
}

// Column returns the column this update assigns
func (u FieldUpdate) Column() string { return u.column }

// compileFieldUpdates renders the updates as a parameterized SET clause with
// placeholders starting at $1. When payment_collected is present,
// payment_pending is recomputed in the same statement: against the new total
// when total_price is assigned in the same list, otherwise against the
// stored one. Postgres evaluates SET expressions over the old row, so the
// new total has to be referenced through its placeholder.
func compileFieldUpdates(updates []FieldUpdate) (string, []interface{}) {
	clauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates))

	totalIdx := 0
	collectedIdx := 0

	for _, u := range updates {
		args = append(args, u.value)
		idx := len(args)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", u.column, idx))

		switch u.column {
		case "total_price":
			totalIdx = idx
		case "payment_collected":
			collectedIdx = idx
		}
	}

	if collectedIdx > 0 {
		if totalIdx > 0 {
			clauses = append(clauses, fmt.Sprintf("payment_pending = $%d - $%d", totalIdx, collectedIdx))
		} else {
			clauses = append(clauses, fmt.Sprintf("payment_pending = total_price - $%d", collectedIdx))
		}
	}

	return strings.Join(clauses, ", "), args
}
