package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFieldUpdates_SingleField(t *testing.T) {
	clause, args := compileFieldUpdates([]FieldUpdate{
		SetCustomerName("Jane"),
	})

	assert.Equal(t, "customer_name = $1", clause)
	require.Len(t, args, 1)
	assert.Equal(t, "Jane", args[0])
}

func TestCompileFieldUpdates_CollectedRecomputesPendingFromStoredTotal(t *testing.T) {
	clause, args := compileFieldUpdates([]FieldUpdate{
		SetPaymentCollected(decimal.NewFromInt(40)),
	})

	assert.Equal(t, "payment_collected = $1, payment_pending = total_price - $1", clause)
	assert.Len(t, args, 1)
}

func TestCompileFieldUpdates_CollectedWithNewTotalUsesBoth(t *testing.T) {
	clause, args := compileFieldUpdates([]FieldUpdate{
		SetTotalPrice(decimal.NewFromInt(200)),
		SetPaymentCollected(decimal.NewFromInt(40)),
	})

	assert.Equal(t, "total_price = $1, payment_collected = $2, payment_pending = $1 - $2", clause)
	assert.Len(t, args, 2)
}

func TestCompileFieldUpdates_TotalAloneLeavesPendingUntouched(t *testing.T) {
	clause, _ := compileFieldUpdates([]FieldUpdate{
		SetTotalPrice(decimal.NewFromInt(200)),
	})

	assert.Equal(t, "total_price = $1", clause)
	assert.NotContains(t, clause, "payment_pending")
}

func TestCompileFieldUpdates_AllColumns(t *testing.T) {
	details := "extra storage"
	proof := "proof.png"

	clause, args := compileFieldUpdates([]FieldUpdate{
		SetCustomerName("Jane"),
		SetPlanType("Custom"),
		SetCustomPlanDetails(&details),
		SetTotalPrice(decimal.NewFromInt(150)),
		SetPaymentCollected(decimal.NewFromInt(50)),
		SetStatus("On Hold"),
		SetPaymentProofImage(&proof),
		SetPendingPaymentProofImage(nil),
	})

	assert.Equal(t,
		"customer_name = $1, plan_type = $2, custom_plan_details = $3, "+
			"total_price = $4, payment_collected = $5, status = $6, "+
			"payment_proof_image = $7, pending_payment_proof_image = $8, "+
			"payment_pending = $4 - $5",
		clause)
	assert.Len(t, args, 8)
}
