package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	reservationRepo "detailify/database/repository/reservation"
	scheduleRepo "detailify/database/repository/schedule"
	transactionRepo "detailify/database/repository/transaction"
	"detailify/models"
	"detailify/services/availability"
	"detailify/services/payment"
	"detailify/services/pricing"
	"detailify/services/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistry struct {
	record *models.RegistryVehicle
}

func (s *stubRegistry) Lookup(_ context.Context, _ string) (*models.RegistryVehicle, error) {
	return s.record, nil
}

type stubGateway struct {
	createErr error
	created   int
}

func (g *stubGateway) Name() string { return "stub" }

func (g *stubGateway) CreatePayment(_ context.Context, _ models.PaymentRequest) (*models.CreatePaymentResult, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created++
	return &models.CreatePaymentResult{
		PaymentID: fmt.Sprintf("pay_%d", g.created),
		Status:    models.StatusPending,
		Provider:  "stub",
	}, nil
}

func (g *stubGateway) ConfirmPayment(_ context.Context, paymentID string) (*models.PaymentConfirmation, error) {
	return &models.PaymentConfirmation{
		TransactionID: "txn_" + paymentID,
		Status:        models.StatusCompleted,
		PaidAt:        time.Now(),
	}, nil
}

func (g *stubGateway) RefundPayment(_ context.Context, paymentID string, _ *float64) (*models.RefundResult, error) {
	return &models.RefundResult{RefundID: "re_" + paymentID, Status: models.StatusCompleted}, nil
}

func (g *stubGateway) GetPaymentStatus(_ context.Context, _ string) (*models.PaymentStatusInfo, error) {
	return &models.PaymentStatusInfo{Status: models.StatusPending}, nil
}

type engineFixture struct {
	engine       *Engine
	gateway      *stubGateway
	reservations *reservationRepo.MemoryReservationStore
	workDate     string // a working day inside the booking window
	offDate      string // a day without a schedule rule
}

// newFixture wires the engine onto in-process stores with one working-day
// rule: 09:00-17:00, 90-minute slots, one booking per slot.
func newFixture(t *testing.T) *engineFixture {
	t.Helper()

	workDay := time.Now().AddDate(0, 0, 7)
	offDay := workDay.AddDate(0, 0, 1)

	rule := models.WorkingHoursRule{
		DayOfWeek:           int(workDay.Weekday()),
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 90,
		MaxBookingsPerSlot:  1,
		IsActive:            true,
	}

	matcher := vehicle.NewMatcher(vehicle.NewDefaultCatalog())
	reservations := reservationRepo.NewMemoryReservationStore()
	gateway := &stubGateway{}

	engine := &Engine{
		Resolver:       vehicle.NewRegistrationResolver(&stubRegistry{}, matcher, vehicle.NewMemoryLookupCache()),
		Matcher:        matcher,
		Availability:   availability.NewCalculator(),
		Schedule:       scheduleRepo.NewMemoryScheduleStore(rule),
		Reservations:   reservations,
		Pricing:        pricing.NewCalculator(pricing.DefaultAddOns, 1.0, pricing.FixedTravelFee{Fee: 10}, "GBP"),
		Payments:       payment.NewManager(gateway, transactionRepo.NewMemoryTransactionStore()),
		MaxAdvanceDays: 30,
		Currency:       "GBP",
	}

	return &engineFixture{
		engine:       engine,
		gateway:      gateway,
		reservations: reservations,
		workDate:     workDay.Format("2006-01-02"),
		offDate:      offDay.Format("2006-01-02"),
	}
}

func checkoutRequest(f *engineFixture) models.CheckoutRequest {
	return models.CheckoutRequest{
		Date:      f.workDate,
		StartTime: "10:30",
		Size:      models.SizeS,
		Tier:      models.TierFull,
		AddOnIDs:  []string{"air-freshener"},
		Postcode:  "BN1 4GH",
	}
}

func TestResolveVehicleByQuery(t *testing.T) {
	f := newFixture(t)

	resolution, err := f.engine.ResolveVehicle(context.Background(), ResolveInput{Query: "ford fiesta"})
	require.NoError(t, err)
	require.NotNil(t, resolution)
	assert.Equal(t, models.SizeS, resolution.Size)
	assert.Equal(t, models.ConfidenceHigh, resolution.Confidence)
	require.NotNil(t, resolution.Match)
	assert.Equal(t, "Fiesta", resolution.Match.Model)
}

func TestResolveVehicleByMakeModelOutsideCatalog(t *testing.T) {
	f := newFixture(t)

	resolution, err := f.engine.ResolveVehicle(context.Background(),
		ResolveInput{Make: "Ford", Model: "Transit Connect"})
	require.NoError(t, err)
	require.NotNil(t, resolution)
	assert.Equal(t, models.SizeXL, resolution.Size)
	assert.Equal(t, models.ConfidenceLow, resolution.Confidence)
	assert.Nil(t, resolution.Match)
}

func TestResolveVehicleUnknownRegistrationFallsThroughToQuery(t *testing.T) {
	f := newFixture(t)

	resolution, err := f.engine.ResolveVehicle(context.Background(),
		ResolveInput{Registration: "AB12 CDE", Query: "vw golf gti"})
	require.NoError(t, err)
	require.NotNil(t, resolution)
	assert.Equal(t, models.SizeM, resolution.Size)
}

func TestResolveVehicleWithoutInputFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.ResolveVehicle(context.Background(), ResolveInput{})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "missingVehicle", validationErr.Code)
}

func TestGetAvailabilityReturnsSlotGrid(t *testing.T) {
	f := newFixture(t)

	slots, err := f.engine.GetAvailability(context.Background(), f.workDate)
	require.NoError(t, err)
	require.Len(t, slots, 6)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "16:30", slots[5].StartTime)
	for _, slot := range slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestGetAvailabilityReflectsReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.reservations.Reserve(ctx, f.workDate, "10:30", 1))

	slots, err := f.engine.GetAvailability(ctx, f.workDate)
	require.NoError(t, err)
	for _, slot := range slots {
		if slot.StartTime == "10:30" {
			assert.False(t, slot.IsAvailable)
			assert.Equal(t, 1, slot.BookedCount)
		} else {
			assert.True(t, slot.IsAvailable)
		}
	}
}

func TestGetAvailabilityNonWorkingDayIsEmpty(t *testing.T) {
	f := newFixture(t)

	slots, err := f.engine.GetAvailability(context.Background(), f.offDate)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetAvailabilityValidatesDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]string{
		"03/02/2026": "badDate",
		"2020-01-01": "dateInPast",
		time.Now().AddDate(0, 0, 60).Format("2006-01-02"): "dateTooFar",
	}
	for date, code := range cases {
		_, err := f.engine.GetAvailability(ctx, date)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, date)
		assert.Equal(t, code, validationErr.Code, date)
	}
}

func TestGetQuoteValidatesSizeAndTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.GetQuote(ctx, models.QuoteRequest{Size: "XXL", Tier: models.TierFull})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "badSize", validationErr.Code)

	_, err = f.engine.GetQuote(ctx, models.QuoteRequest{Size: models.SizeS, Tier: "platinum"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "badTier", validationErr.Code)
}

func TestPayReservesSlotAndCreatesPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.engine.Pay(ctx, checkoutRequest(f))
	require.NoError(t, err)
	assert.NotEmpty(t, result.BookingID)
	assert.Equal(t, models.StatusPending, result.Payment.Status)
	// S full valet 55 + air freshener 5 + travel fee 10.
	assert.Equal(t, 70.0, result.Quote.TotalPrice)

	count, err := f.reservations.CountBookings(ctx, f.workDate, "10:30")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPayFullSlotFailsWithCapacityError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.Pay(ctx, checkoutRequest(f))
	require.NoError(t, err)

	req := checkoutRequest(f)
	req.BookingID = "bk-second"
	_, err = f.engine.Pay(ctx, req)
	var capacityErr *CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, "10:30", capacityErr.StartTime)
	assert.Equal(t, 1, f.gateway.created, "a full slot must not reach the gateway")
}

func TestPayReleasesSlotWhenGatewayRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.createErr = errors.New("gateway down")
	_, err := f.engine.Pay(ctx, checkoutRequest(f))
	require.Error(t, err)

	count, err := f.reservations.CountBookings(ctx, f.workDate, "10:30")
	require.NoError(t, err)
	assert.Zero(t, count, "failed checkout must release the reservation")
}

func TestPayRejectsUnknownSlot(t *testing.T) {
	f := newFixture(t)

	req := checkoutRequest(f)
	req.StartTime = "10:00"
	_, err := f.engine.Pay(context.Background(), req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "badSlot", validationErr.Code)
}

func TestPayRejectsDayWithoutSchedule(t *testing.T) {
	f := newFixture(t)

	req := checkoutRequest(f)
	req.Date = f.offDate
	_, err := f.engine.Pay(context.Background(), req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "noSchedule", validationErr.Code)
}

func TestConfirmAndRefundFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.engine.Pay(ctx, checkoutRequest(f))
	require.NoError(t, err)

	confirmation, err := f.engine.ConfirmPayment(ctx, result.Payment.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, confirmation.Status)

	refund, err := f.engine.Refund(ctx, result.Payment.PaymentID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, refund.Status)
}

func TestRefundBeforeConfirmSurfacesStateError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.engine.Pay(ctx, checkoutRequest(f))
	require.NoError(t, err)

	_, err = f.engine.Refund(ctx, result.Payment.PaymentID, nil)
	var stateErr *payment.StateError
	require.ErrorAs(t, err, &stateErr)
}
