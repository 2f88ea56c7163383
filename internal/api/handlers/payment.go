package handlers

import (
	"io"
	"net/http"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/pkg/validator"
)

// maxWebhookBytes bounds a provider event payload
const maxWebhookBytes = 1 << 20

// PaymentHandler handles checkout and webhook requests
type PaymentHandler struct {
	checkout  payment.CheckoutService
	webhook   payment.WebhookService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	checkout payment.CheckoutService,
	webhook payment.WebhookService,
	log *logger.Logger,
	val *validator.Validator,
) *PaymentHandler {
	return &PaymentHandler{
		checkout:  checkout,
		webhook:   webhook,
		logger:    log,
		validator: val,
	}
}

// Checkout starts a highlight or ad purchase
// @Summary Start a checkout
// @Description Creates a Stripe checkout session for a highlight plan or an ad (EMPREGADOR only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutRequest true "Purchase"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Wrong role"
// @Failure 404 {object} utils.ErrorResponse "Unknown plan"
// @Failure 500 {object} utils.ErrorResponse "Payments not configured"
// @Router /payments/checkout [post]
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	h.startCheckout(w, r, id, req.ToDomain())
}

// JobBoostCheckout starts a vaga boost purchase
// @Summary Boost a vaga
// @Description Creates a Stripe checkout session promoting a vaga owned by the caller
// @Tags Vagas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobBoostCheckoutRequest true "Boost"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid duration"
// @Failure 403 {object} utils.ErrorResponse "Not the owner"
// @Failure 404 {object} utils.ErrorResponse "Vaga not found"
// @Router /vagas/paid [post]
func (h *PaymentHandler) JobBoostCheckout(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.JobBoostCheckoutRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	h.startCheckout(w, r, id, req.ToDomain())
}

func (h *PaymentHandler) startCheckout(w http.ResponseWriter, r *http.Request, userID string, in payment.CheckoutInput) {
	session, err := h.checkout.Checkout(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.CheckoutResponse{CheckoutURL: session.URL})
}

// Webhook receives Stripe events
// @Summary Stripe webhook
// @Description Verifies the Stripe-Signature header and fulfils paid checkouts
// @Tags Payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid signature"
// @Failure 403 {object} utils.ErrorResponse "Address not allowed"
// @Failure 500 {object} utils.ErrorResponse "Not configured or fulfillment failed"
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Failed to read webhook payload"))
		return
	}

	if _, err := h.webhook.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, dto.WebhookResponse{Received: true})
}
