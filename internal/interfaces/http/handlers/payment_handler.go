package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/interfaces/http/middleware"
	"wanderlite.backend/internal/interfaces/http/response"
	"wanderlite.backend/internal/usecases"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentUsecase *usecases.PaymentUsecase
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
	}
}

// Create opens a payment intent
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	var input entities.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.CreatePayment(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

// List returns the caller's payments. Anonymous callers get an empty list.
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Success(c, http.StatusOK, []*entities.Payment{})
		return
	}

	payments, err := h.paymentUsecase.ListPayments(c.Request.Context(), userID, queryLimit(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}

// GetForBooking returns the active payment intent for a booking
// GET /api/v1/payments/booking/:id
func (h *PaymentHandler) GetForBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	payment, err := h.paymentUsecase.GetPaymentForBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

// Complete confirms a pending intent
// POST /api/v1/payments/:id/complete
func (h *PaymentHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	var input entities.CompletePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.CompletePayment(c.Request.Context(), userID, paymentID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

type uploadReceiptInput struct {
	ReceiptURL string `json:"receipt_url" binding:"required"`
}

// UploadReceipt attaches receipt evidence to a payment
// POST /api/v1/payments/:id/receipt
func (h *PaymentHandler) UploadReceipt(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	var input uploadReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	receipt, err := h.paymentUsecase.UploadReceipt(c.Request.Context(), userID, paymentID, input.ReceiptURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, receipt)
}

// ListReceipts returns the caller's receipts
// GET /api/v1/receipts
func (h *PaymentHandler) ListReceipts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Success(c, http.StatusOK, []*entities.Receipt{})
		return
	}

	receipts, err := h.paymentUsecase.ListReceipts(c.Request.Context(), userID, queryLimit(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, receipts)
}
