package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"loan-manager/internal/api/handler/dto"
	"loan-manager/internal/domain/payment"
	"loan-manager/internal/pkg/apperrors"
)

type PaymentHandler struct {
	service payment.PaymentService
	logger  *slog.Logger
}

func NewPaymentHandler(s payment.PaymentService, l *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: s,
		logger:  l.With("component", "PaymentHandler"),
	}
}

// CreatePayment records a payment and applies its effect on the loan.
//
// @Summary Register a payment
// @Description Records a payment against a loan. A FINISHED payment closes the loan, an AGREEMENT payment applies a negotiated discount to the remaining balance, and an INTEREST payment postpones the due date by one month.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentRequest true "Payment registration request payload"
// @Success 201 {object} dto.PaymentResponse "Payment successfully registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload, unsupported payment type, or missing agreement notes"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [post]
// @Security BearerAuth
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	p, err := h.service.ProcessPayment(r.Context(), req.ToInput())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewPaymentResponse(p))
}

// GetPayment retrieves one payment.
//
// @Summary Retrieve payment details
// @Tags Payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse "Payment details successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment ID"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{paymentID} [get]
// @Security BearerAuth
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := getUUIDFromURL(r, "paymentID")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	p, err := h.service.GetPayment(r.Context(), paymentID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPaymentResponse(p))
}

// ListPayments returns all payments ordered by payment date.
//
// @Summary List payments
// @Tags Payments
// @Produce json
// @Success 200 {array} dto.PaymentResponse "Payments successfully retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [get]
// @Security BearerAuth
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPaymentListResponse(payments))
}

// ListPaymentsByLoan returns the payments of one loan ordered by payment date.
//
// @Summary List payments for a loan
// @Tags Payments
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {array} dto.PaymentResponse "Payments successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/loan/{loanID} [get]
// @Security BearerAuth
func (h *PaymentHandler) ListPaymentsByLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := getUUIDFromURL(r, "loanID")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	payments, err := h.service.ListPaymentsByLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPaymentListResponse(payments))
}

// UpdatePayment corrects a recorded payment without reapplying its loan
// effect.
//
// @Summary Update a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param request body dto.PaymentRequest true "Payment update request payload"
// @Success 200 {object} dto.PaymentResponse "Payment successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{paymentID} [put]
// @Security BearerAuth
func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := getUUIDFromURL(r, "paymentID")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	p, err := h.service.UpdatePayment(r.Context(), paymentID, req.ToInput())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPaymentResponse(p))
}

// DeletePayment removes a payment record.
//
// @Summary Delete a payment
// @Tags Payments
// @Param paymentID path string true "Payment ID"
// @Success 204 "Payment successfully deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment ID"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{paymentID} [delete]
// @Security BearerAuth
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := getUUIDFromURL(r, "paymentID")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.DeletePayment(r.Context(), paymentID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
