package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order tracked through its payment lifecycle
type Order struct {
	ID                        int64           `db:"id" json:"id"`
	OrderCode                 string          `db:"order_code" json:"order_code"`
	CustomerName              string          `db:"customer_name" json:"customer_name"`
	ContactNumber             string          `db:"contact_number" json:"contact_number"`
	PlanType                  string          `db:"plan_type" json:"plan_type"`
	CustomPlanDetails         *string         `db:"custom_plan_details" json:"custom_plan_details,omitempty"`
	TotalPrice                decimal.Decimal `db:"total_price" json:"total_price"`
	PaymentCollected          decimal.Decimal `db:"payment_collected" json:"payment_collected"`
	PaymentPending            decimal.Decimal `db:"payment_pending" json:"payment_pending"`
	Status                    string          `db:"status" json:"status"`
	PaymentVerificationStatus *string         `db:"payment_verification_status" json:"payment_verification_status,omitempty"`
	PaymentProofImage         *string         `db:"payment_proof_image" json:"payment_proof_image,omitempty"`
	PendingPaymentProofImage  *string         `db:"pending_payment_proof_image" json:"pending_payment_proof_image,omitempty"`
	EmployeeID                int64           `db:"employee_id" json:"employee_id"`
	CreatedAt                 time.Time       `db:"created_at" json:"created_at"`
}

// Order statuses. Status is free-form beyond these two; only Completed has
// derivation rules attached.
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
)

// OrderWithEmployee is an order joined with the creating employee's name
type OrderWithEmployee struct {
	Order
	EmployeeName string `db:"employee_name" json:"employee_name"`
}

// NewOrderInput carries the fields needed to create an order
type NewOrderInput struct {
	OrderCode                string
	CustomerName             string
	ContactNumber            string
	PlanType                 string
	CustomPlanDetails        *string
	TotalPrice               decimal.Decimal
	PaymentCollected         decimal.Decimal
	PaymentProofImage        *string
	PendingPaymentProofImage *string
	EmployeeID               int64
}

// NewOrder builds the order row for a create request. The pending balance
// is derived from the price and whatever payment was collected up front.
func NewOrder(in NewOrderInput) *Order {
	return &Order{
		OrderCode:                in.OrderCode,
		CustomerName:             in.CustomerName,
		ContactNumber:            in.ContactNumber,
		PlanType:                 in.PlanType,
		CustomPlanDetails:        in.CustomPlanDetails,
		TotalPrice:               in.TotalPrice,
		PaymentCollected:         in.PaymentCollected,
		PaymentPending:           in.TotalPrice.Sub(in.PaymentCollected),
		Status:                   OrderStatusPending,
		PaymentProofImage:        in.PaymentProofImage,
		PendingPaymentProofImage: in.PendingPaymentProofImage,
		EmployeeID:               in.EmployeeID,
		CreatedAt:                GetCurrentTime(),
	}
}
