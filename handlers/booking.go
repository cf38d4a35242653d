package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"detailify/models"
	"detailify/services/booking"
	"detailify/services/payment"
	"detailify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking resolution engine over HTTP.
type BookingHandler struct {
	Engine *booking.Engine
	Logger *zap.Logger
}

func NewBookingHandler(engine *booking.Engine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Logger: logger}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var capacityErr *booking.CapacityError
	var stateErr *payment.StateError
	var providerErr *payment.ProviderError

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, validationErr.Code, validationErr.Message)
	case errors.As(err, &capacityErr):
		utils.JSONError(c, http.StatusConflict, "slotFull", capacityErr.Error())
	case errors.As(err, &stateErr):
		utils.JSONError(c, http.StatusConflict, "invalidState", stateErr.Error())
	case errors.As(err, &providerErr):
		utils.JSONError(c, http.StatusBadGateway, "providerError", providerErr.Error())
	default:
		h.Logger.Error("booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "request could not be processed")
	}
}

// ResolveVehicle classifies a vehicle by registration, free text, or an
// explicit make/model selection.
func (h *BookingHandler) ResolveVehicle(c *gin.Context) {
	var input booking.ResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resolution, err := h.Engine.ResolveVehicle(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if resolution == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no vehicle matched"})
		return
	}
	c.JSON(http.StatusOK, resolution)
}

// SearchVehicles powers the booking form's vehicle picker.
func (h *BookingHandler) SearchVehicles(c *gin.Context) {
	query := c.Query("q")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	c.JSON(http.StatusOK, gin.H{"results": h.Engine.SearchVehicles(query, limit)})
}

// GetAvailability returns the day's slot grid.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	slots, err := h.Engine.GetAvailability(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// GetQuote prices a prospective booking.
func (h *BookingHandler) GetQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	quote, err := h.Engine.GetQuote(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// ListAddOns returns the optional-extras catalog.
func (h *BookingHandler) ListAddOns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"addOns": h.Engine.Pricing.AddOns()})
}

// Pay reserves the chosen slot and opens a payment transaction.
func (h *BookingHandler) Pay(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Engine.Pay(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmPayment captures a pending payment.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	confirmation, err := h.Engine.ConfirmPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// RefundPayment refunds a captured payment, fully or partially.
func (h *BookingHandler) RefundPayment(c *gin.Context) {
	var req struct {
		Amount *float64 `json:"amount,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Engine.Refund(c.Request.Context(), c.Param("paymentID"), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PaymentStatus reads a transaction's state.
func (h *BookingHandler) PaymentStatus(c *gin.Context) {
	status, err := h.Engine.PaymentStatus(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
