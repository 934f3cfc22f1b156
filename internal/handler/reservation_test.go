package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farwill/travel-booking/internal/booking"
	"github.com/farwill/travel-booking/internal/model"
)

type stubReconciler struct {
	res       model.Reservation
	err       error
	gotRef    string
	gotUserID uint64
	gotPlan   model.PlanSnapshot
}

func (s *stubReconciler) Reconcile(ctx context.Context, reference string, userID uint64, plan model.PlanSnapshot) (model.Reservation, error) {
	s.gotRef = reference
	s.gotUserID = userID
	s.gotPlan = plan
	return s.res, s.err
}

func verifyRequest(t *testing.T, flow Reconciler, body string, userID interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/user/verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	h := NewReservationHandler(flow, nil)
	require.NoError(t, h.Verify(c))
	return rec
}

const validBody = `{"reference":"PSK_123","plan":{"category":"4 star","nights":6,"people":2,"price":75000,"total":150000}}`

func TestVerifyCreatesReservation(t *testing.T) {
	stub := &stubReconciler{res: model.Reservation{
		ID:         1,
		User:       model.UserSnapshot{ID: 7, Email: "ada@example.com"},
		Plan:       model.PlanSnapshot{Category: "4 star", Nights: 6, People: 2, Price: 75000, Total: 150000},
		PaymentRef: "PSK_123",
		Status:     model.ReservationPaid,
	}}

	rec := verifyRequest(t, stub, validBody, uint64(7))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "PSK_123", stub.gotRef)
	assert.Equal(t, uint64(7), stub.gotUserID)
	assert.Equal(t, 6, stub.gotPlan.Nights)

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			PaymentRef string `json:"paymentRef"`
			Status     string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "PSK_123", out.Data.PaymentRef)
	assert.Equal(t, model.ReservationPaid, out.Data.Status)
}

func TestVerifyPaymentNotVerified(t *testing.T) {
	rec := verifyRequest(t, &stubReconciler{err: booking.ErrPaymentNotVerified}, validBody, uint64(7))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment not verified")
}

func TestVerifyDuplicateReservation(t *testing.T) {
	rec := verifyRequest(t, &stubReconciler{err: booking.ErrDuplicateReservation}, validBody, uint64(7))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reservation already exists")
	// The duplicate response must not leak the stored reservation.
	assert.NotContains(t, rec.Body.String(), "paymentRef")
}

func TestVerifyUnknownUser(t *testing.T) {
	rec := verifyRequest(t, &stubReconciler{err: booking.ErrUserNotFound}, validBody, uint64(7))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyMissingReference(t *testing.T) {
	stub := &stubReconciler{}
	rec := verifyRequest(t, stub, `{"reference":"  ","plan":{"category":"4 star","nights":6,"people":2}}`, uint64(7))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, stub.gotRef, "reconciler must not run without a reference")
}

func TestVerifyInvalidPlan(t *testing.T) {
	rec := verifyRequest(t, &stubReconciler{}, `{"reference":"PSK_123","plan":{"category":"6 star","nights":6,"people":2}}`, uint64(7))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyWithoutToken(t *testing.T) {
	rec := verifyRequest(t, &stubReconciler{}, validBody, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type stubLister struct {
	list      []model.Reservation
	err       error
	gotUserID uint64
}

func (s *stubLister) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	s.gotUserID = userID
	return s.list, s.err
}

func myReservationsRequest(t *testing.T, lister ReservationLister, userID interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/reservations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	h := NewReservationHandler(nil, lister)
	require.NoError(t, h.MyReservations(c))
	return rec
}

func TestMyReservationsScopedToCaller(t *testing.T) {
	stub := &stubLister{list: []model.Reservation{
		{ID: 3, User: model.UserSnapshot{ID: 7, Email: "ada@example.com"}, PaymentRef: "PSK_123", Status: model.ReservationPaid},
	}}

	rec := myReservationsRequest(t, stub, uint64(7))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), stub.gotUserID, "lister must receive the authenticated user id")

	var out struct {
		Success bool                `json:"success"`
		Data    []model.Reservation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "PSK_123", out.Data[0].PaymentRef)
}

func TestMyReservationsEmptyList(t *testing.T) {
	rec := myReservationsRequest(t, &stubLister{list: []model.Reservation{}}, uint64(7))

	assert.Equal(t, http.StatusOK, rec.Code)
	// A user with no bookings gets an empty array, not null.
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestMyReservationsWithoutToken(t *testing.T) {
	stub := &stubLister{}
	rec := myReservationsRequest(t, stub, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, stub.gotUserID)
}
