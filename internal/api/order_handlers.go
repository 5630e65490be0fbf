package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
	"github.com/orderdesk/orderdesk-api/internal/service"
)

type createOrderRequest struct {
	OrderCode                string           `json:"order_code"`
	CustomerName             string           `json:"customer_name"`
	ContactNumber            string           `json:"contact_number"`
	PlanType                 string           `json:"plan_type"`
	CustomPlanDetails        *string          `json:"custom_plan_details"`
	TotalPrice               decimal.Decimal  `json:"total_price"`
	PaymentCollected         *decimal.Decimal `json:"payment_collected"`
	PaymentProofImage        *string          `json:"payment_proof_image"`
	PendingPaymentProofImage *string          `json:"pending_payment_proof_image"`
	EmployeeID               int64            `json:"employee_id"`
}

type createOrderResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	OrderID   int64  `json:"order_id"`
	OrderCode string `json:"order_code"`
}

func (s *Server) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	collected := decimal.Zero
	if req.PaymentCollected != nil {
		collected = *req.PaymentCollected
	}

	result, err := s.orderService.CreateOrder(r.Context(), models.NewOrderInput{
		OrderCode:                req.OrderCode,
		CustomerName:             req.CustomerName,
		ContactNumber:            req.ContactNumber,
		PlanType:                 req.PlanType,
		CustomPlanDetails:        req.CustomPlanDetails,
		TotalPrice:               req.TotalPrice,
		PaymentCollected:         collected,
		PaymentProofImage:        req.PaymentProofImage,
		PendingPaymentProofImage: req.PendingPaymentProofImage,
		EmployeeID:               req.EmployeeID,
	})

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, createOrderResponse{
		Success:   true,
		Message:   "Order created successfully",
		OrderID:   result.OrderID,
		OrderCode: result.OrderCode,
	})
}

type listOrdersResponse struct {
	Success bool                        `json:"success"`
	Count   int                         `json:"count"`
	Orders  []*models.OrderWithEmployee `json:"orders"`
}

func (s *Server) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var employeeID int64
	if raw := query.Get("employee_id"); raw != "" {
		employeeID, _ = strconv.ParseInt(raw, 10, 64)
	}

	limit := service.DefaultListLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)

		if err != nil {
			s.respondWithFailure(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	orders, err := s.queryService.List(r.Context(), employeeID, query.Get("status"), limit)

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, listOrdersResponse{
		Success: true,
		Count:   len(orders),
		Orders:  orders,
	})
}

func (s *Server) searchOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := s.queryService.Search(r.Context(), r.URL.Query().Get("search"))

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, listOrdersResponse{
		Success: true,
		Count:   len(orders),
		Orders:  orders,
	})
}

type orderDetailsResponse struct {
	Success bool                          `json:"success"`
	Order   *models.OrderWithEmployee     `json:"order"`
	History []*models.HistoryWithEmployee `json:"history"`
}

func (s *Server) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderIDFromPath(w, r)

	if !ok {
		return
	}

	details, err := s.queryService.GetByID(r.Context(), id)

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, orderDetailsResponse{
		Success: true,
		Order:   details.Order,
		History: details.History,
	})
}

func (s *Server) getOrderByCodeHandler(w http.ResponseWriter, r *http.Request) {
	details, err := s.queryService.GetByCode(r.Context(), mux.Vars(r)["code"])

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, orderDetailsResponse{
		Success: true,
		Order:   details.Order,
		History: details.History,
	})
}

// updateOrderRequest uses pointers so absent fields stay untouched. The
// trailing audit tuple is optional; history is written only when all four
// audit fields are present.
type updateOrderRequest struct {
	CustomerName             *string          `json:"customer_name"`
	PlanType                 *string          `json:"plan_type"`
	CustomPlanDetails        *string          `json:"custom_plan_details"`
	TotalPrice               *decimal.Decimal `json:"total_price"`
	PaymentCollected         *decimal.Decimal `json:"payment_collected"`
	Status                   *string          `json:"status"`
	PaymentProofImage        *string          `json:"payment_proof_image"`
	PendingPaymentProofImage *string          `json:"pending_payment_proof_image"`

	ActionType    string `json:"action_type"`
	PreviousValue string `json:"previous_value"`
	NewValue      string `json:"new_value"`
	EmployeeID    int64  `json:"employee_id"`
}

type updateOrderResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AffectedRows int64  `json:"affected_rows"`
}

func (s *Server) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderIDFromPath(w, r)

	if !ok {
		return
	}

	var req updateOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	var updates []repository.FieldUpdate

	if req.CustomerName != nil {
		updates = append(updates, repository.SetCustomerName(*req.CustomerName))
	}
	if req.PlanType != nil {
		updates = append(updates, repository.SetPlanType(*req.PlanType))
	}
	if req.CustomPlanDetails != nil {
		updates = append(updates, repository.SetCustomPlanDetails(req.CustomPlanDetails))
	}
	if req.TotalPrice != nil {
		updates = append(updates, repository.SetTotalPrice(*req.TotalPrice))
	}
	if req.PaymentCollected != nil {
		updates = append(updates, repository.SetPaymentCollected(*req.PaymentCollected))
	}
	if req.Status != nil {
		updates = append(updates, repository.SetStatus(*req.Status))
	}
	if req.PaymentProofImage != nil {
		updates = append(updates, repository.SetPaymentProofImage(req.PaymentProofImage))
	}
	if req.PendingPaymentProofImage != nil {
		updates = append(updates, repository.SetPendingPaymentProofImage(req.PendingPaymentProofImage))
	}

	affected, err := s.orderService.UpdateOrderFields(r.Context(), id, updates, &service.AuditInput{
		ActionType:    req.ActionType,
		PreviousValue: req.PreviousValue,
		NewValue:      req.NewValue,
		EmployeeID:    req.EmployeeID,
	})

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, updateOrderResponse{
		Success:      true,
		Message:      "Order updated successfully",
		AffectedRows: affected,
	})
}

type updatePaymentRequest struct {
	PaymentCollected  *decimal.Decimal `json:"payment_collected"`
	PaymentProofImage *string          `json:"payment_proof_image"`
	EmployeeID        int64            `json:"employee_id"`
}

type updatePaymentResponse struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message"`
	PreviousPayment decimal.Decimal `json:"previous_payment"`
	NewPayment      decimal.Decimal `json:"new_payment"`
	PaymentPending  decimal.Decimal `json:"payment_pending"`
	StatusChanged   bool            `json:"status_changed"`
}

func (s *Server) updatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderIDFromPath(w, r)

	if !ok {
		return
	}

	var req updatePaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.PaymentCollected == nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Order ID, payment amount, and employee ID are required")
		return
	}

	result, err := s.paymentService.UpdatePayment(r.Context(), service.UpdatePaymentInput{
		OrderID:          id,
		PaymentCollected: *req.PaymentCollected,
		EmployeeID:       req.EmployeeID,
		ProofImage:       req.PaymentProofImage,
	})

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, updatePaymentResponse{
		Success:         true,
		Message:         "Payment updated successfully",
		PreviousPayment: result.PreviousPayment,
		NewPayment:      result.NewPayment,
		PaymentPending:  result.PaymentPending,
		StatusChanged:   result.StatusChanged,
	})
}

type updateStatusRequest struct {
	Status     string `json:"status"`
	EmployeeID int64  `json:"employee_id"`
}

type updateStatusResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
}

func (s *Server) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderIDFromPath(w, r)

	if !ok {
		return
	}

	var req updateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	result, err := s.paymentService.UpdateStatus(r.Context(), id, req.Status, req.EmployeeID)

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, updateStatusResponse{
		Success:        true,
		Message:        "Order status updated successfully",
		PreviousStatus: result.PreviousStatus,
		NewStatus:      result.NewStatus,
	})
}

type updateVerificationRequest struct {
	VerificationStatus string `json:"verification_status"`
	EmployeeID         int64  `json:"employee_id"`
}

func (s *Server) updateVerificationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderIDFromPath(w, r)

	if !ok {
		return
	}

	var req updateVerificationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := s.paymentService.UpdateVerification(r.Context(), id, req.VerificationStatus, req.EmployeeID); err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Verification status updated successfully",
	})
}

func (s *Server) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.orderIDFromPath(w, r)

	if !ok {
		return
	}

	if err := s.orderService.DeleteOrder(r.Context(), id); err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Order deleted successfully",
	})
}

func (s *Server) orderIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	if err != nil || id <= 0 {
		s.respondWithFailure(w, http.StatusBadRequest, "Order ID is required")
		return 0, false
	}

	return id, true
}
