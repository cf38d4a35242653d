package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationRepo "detailify/database/repository/reservation"
	scheduleRepo "detailify/database/repository/schedule"
	"detailify/models"
	"detailify/services/availability"
	"detailify/services/payment"
	"detailify/services/pricing"
	"detailify/services/vehicle"
	"detailify/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paymentTimeout bounds every remote gateway call made during checkout.
const paymentTimeout = 30 * time.Second

// ResolveInput identifies a vehicle by registration, free text, or an
// explicit make/model pick, in that order of preference.
type ResolveInput struct {
	Registration string `json:"registration,omitempty"`
	Query        string `json:"query,omitempty"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Trim         string `json:"trim,omitempty"`
}

// Engine turns a booking request into {size class, available slot, price
// quote} and later into a payment transaction. It is the only surface the
// handlers talk to.
type Engine struct {
	Resolver     *vehicle.RegistrationResolver
	Matcher      *vehicle.Matcher
	Availability *availability.Calculator
	Schedule     scheduleRepo.ScheduleStore
	Reservations reservationRepo.ReservationStore
	Pricing      *pricing.Calculator
	Payments     *payment.Manager

	MaxAdvanceDays int
	Currency       string
}

// ResolveVehicle classifies the customer's vehicle. A nil resolution with a
// nil error means nothing matched; the caller treats that as an empty
// result, not a failure.
func (e *Engine) ResolveVehicle(ctx context.Context, input ResolveInput) (*models.VehicleResolution, error) {
	if input.Registration != "" {
		lookup, err := e.Resolver.Resolve(ctx, input.Registration)
		if err != nil {
			return nil, err
		}
		if lookup != nil {
			return &models.VehicleResolution{
				Size:       lookup.Size,
				Confidence: lookup.Confidence,
				Lookup:     lookup,
			}, nil
		}
		// Plate didn't resolve; fall through to whatever else was supplied.
	}

	if input.Make != "" && input.Model != "" {
		if match := e.Matcher.MatchExact(input.Make, input.Model, input.Trim); match != nil {
			return &models.VehicleResolution{
				Size:       match.Size,
				Confidence: models.ConfidenceHigh,
				Match:      match,
			}, nil
		}
		// Known make/model shape but not in the catalog: size by keyword.
		return &models.VehicleResolution{
			Size:       vehicle.FallbackSize(input.Make, input.Model),
			Confidence: models.ConfidenceLow,
		}, nil
	}

	if input.Query != "" {
		matches := e.Matcher.Search(input.Query, 1)
		if len(matches) > 0 {
			match := matches[0]
			return &models.VehicleResolution{
				Size:       match.Size,
				Confidence: vehicle.ConfidenceForScore(match.MatchScore),
				Match:      &match,
			}, nil
		}
		words := strings.Fields(input.Query)
		if len(words) >= 2 {
			return &models.VehicleResolution{
				Size:       vehicle.FallbackSize(words[0], strings.Join(words[1:], " ")),
				Confidence: models.ConfidenceLow,
			}, nil
		}
		return nil, nil
	}

	return nil, NewValidationError("missingVehicle", "a registration, query, or make and model is required")
}

// SearchVehicles exposes the matcher for the booking form's picker.
func (e *Engine) SearchVehicles(query string, limit int) []models.VehicleMatch {
	return e.Matcher.Search(query, limit)
}

// parseDay validates a date string and its position in the booking window.
func (e *Engine) parseDay(date string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, NewValidationError("badDate", "date must be YYYY-MM-DD")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return time.Time{}, NewValidationError("dateInPast", "date is in the past")
	}
	if day.After(today.AddDate(0, 0, e.MaxAdvanceDays)) {
		return time.Time{}, NewValidationError("dateTooFar",
			fmt.Sprintf("date is more than %d days ahead", e.MaxAdvanceDays))
	}
	return day, nil
}

// GetAvailability computes the bookable slots for a date. Non-working days
// and days without an active rule yield an empty list.
func (e *Engine) GetAvailability(ctx context.Context, date string) ([]models.TimeSlot, error) {
	day, err := e.parseDay(date)
	if err != nil {
		return nil, err
	}

	rules, err := e.Schedule.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load working hours: %w", err)
	}
	var activeDays []int
	for _, rule := range rules {
		if rule.IsActive {
			activeDays = append(activeDays, rule.DayOfWeek)
		}
	}
	if !availability.IsWorkingDay(day, activeDays) {
		return []models.TimeSlot{}, nil
	}

	rule, err := e.Schedule.GetRule(ctx, int(day.Weekday()))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNoRule) {
			return []models.TimeSlot{}, nil
		}
		return nil, fmt.Errorf("failed to load working hours: %w", err)
	}

	counts, err := e.Reservations.CountsForDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking counts: %w", err)
	}

	return e.Availability.ComputeSlots(rule, counts)
}

// GetQuote prices a prospective booking.
func (e *Engine) GetQuote(ctx context.Context, req models.QuoteRequest) (models.PriceQuote, error) {
	if !req.Size.IsValid() {
		return models.PriceQuote{}, NewValidationError("badSize", "unknown size class "+string(req.Size))
	}
	if !req.Tier.IsValid() {
		return models.PriceQuote{}, NewValidationError("badTier", "unknown service tier "+string(req.Tier))
	}
	return e.Pricing.Quote(ctx, req.Size, req.Tier, req.AddOnIDs, req.Postcode)
}

// Pay reserves the slot and opens a payment for it. The quote is recomputed
// here so the charged amount always matches current pricing; the slot is
// claimed through the store's atomic reserve before the gateway is called,
// and released again if the gateway rejects the payment.
func (e *Engine) Pay(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResult, error) {
	logger := utils.GetLogger()

	if req.BookingID == "" {
		// Clients may bring their own booking reference; mint one otherwise.
		req.BookingID = uuid.NewString()
	}
	day, err := e.parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	rule, err := e.Schedule.GetRule(ctx, int(day.Weekday()))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNoRule) {
			return nil, NewValidationError("noSchedule", "no working hours for "+req.Date)
		}
		return nil, fmt.Errorf("failed to load working hours: %w", err)
	}
	slots, err := e.Availability.ComputeSlots(rule, nil)
	if err != nil {
		return nil, err
	}
	known := false
	for _, slot := range slots {
		if slot.StartTime == req.StartTime {
			known = true
			break
		}
	}
	if !known {
		return nil, NewValidationError("badSlot", req.StartTime+" is not a bookable slot on "+req.Date)
	}

	quote, err := e.GetQuote(ctx, models.QuoteRequest{
		Size:     req.Size,
		Tier:     req.Tier,
		AddOnIDs: req.AddOnIDs,
		Postcode: req.Postcode,
	})
	if err != nil {
		return nil, err
	}

	if err := e.Reservations.Reserve(ctx, req.Date, req.StartTime, rule.MaxBookingsPerSlot); err != nil {
		if errors.Is(err, reservationRepo.ErrSlotFull) {
			return nil, &CapacityError{Date: req.Date, StartTime: req.StartTime}
		}
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}

	payCtx, cancel := context.WithTimeout(ctx, paymentTimeout)
	defer cancel()

	result, err := e.Payments.CreatePayment(payCtx, models.PaymentRequest{
		Amount:        quote.TotalPrice,
		Currency:      e.Currency,
		BookingID:     req.BookingID,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Description:   fmt.Sprintf("%s valet, %s vehicle, %s %s", req.Tier, req.Size, req.Date, req.StartTime),
	})
	if err != nil {
		if releaseErr := e.Reservations.Release(ctx, req.Date, req.StartTime); releaseErr != nil {
			logger.Error("failed to release slot after payment error",
				zap.String("date", req.Date), zap.String("startTime", req.StartTime),
				zap.Error(releaseErr))
		}
		return nil, err
	}

	logger.Info("checkout complete",
		zap.String("bookingId", req.BookingID),
		zap.String("paymentId", result.PaymentID),
		zap.Float64("total", quote.TotalPrice))

	return &models.CheckoutResult{BookingID: req.BookingID, Quote: quote, Payment: *result}, nil
}

// ConfirmPayment captures a pending payment.
func (e *Engine) ConfirmPayment(ctx context.Context, paymentID string) (*models.PaymentConfirmation, error) {
	payCtx, cancel := context.WithTimeout(ctx, paymentTimeout)
	defer cancel()
	return e.Payments.ConfirmPayment(payCtx, paymentID)
}

// Refund refunds a captured payment, fully or partially.
func (e *Engine) Refund(ctx context.Context, paymentID string, amount *float64) (*models.RefundResult, error) {
	payCtx, cancel := context.WithTimeout(ctx, paymentTimeout)
	defer cancel()
	return e.Payments.RefundPayment(payCtx, paymentID, amount)
}

// PaymentStatus reads (and reconciles) a transaction's state.
func (e *Engine) PaymentStatus(ctx context.Context, paymentID string) (*models.PaymentStatusInfo, error) {
	payCtx, cancel := context.WithTimeout(ctx, paymentTimeout)
	defer cancel()
	return e.Payments.GetPaymentStatus(payCtx, paymentID)
}
