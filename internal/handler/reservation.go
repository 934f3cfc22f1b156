package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farwill/travel-booking/internal/booking"
	"github.com/farwill/travel-booking/internal/middleware"
	"github.com/farwill/travel-booking/internal/model"
)

// Reconciler is the payment verification entry point used by the handler.
type Reconciler interface {
	Reconcile(ctx context.Context, reference string, userID uint64, plan model.PlanSnapshot) (model.Reservation, error)
}

// ReservationLister reads a user's booking history.
// *repository.ReservationRepo satisfies it; tests substitute a fake.
type ReservationLister interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
}

// ReservationHandler serves the checkout verification endpoint and the
// caller's booking history.
type ReservationHandler struct {
	Flow         Reconciler
	Reservations ReservationLister
}

func NewReservationHandler(flow Reconciler, r ReservationLister) *ReservationHandler {
	return &ReservationHandler{Flow: flow, Reservations: r}
}

type verifyReq struct {
	Reference string `json:"reference"`
	Plan      struct {
		Category string `json:"category"`
		Nights   int    `json:"nights"`
		People   int    `json:"people"`
		Price    int64  `json:"price"`
		Total    int64  `json:"total"`
	} `json:"plan"`
}

// Verify confirms a gateway payment and records the reservation.  The
// booking user comes from the access token, never from the body, so one
// account cannot claim another's payment.
func (h *ReservationHandler) Verify(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Unauthorized"})
	}

	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Reference = strings.TrimSpace(req.Reference)
	if req.Reference == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Payment reference is required"})
	}
	if !model.ValidCategory(req.Plan.Category) || req.Plan.Nights <= 0 || req.Plan.People <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid plan"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Flow.Reconcile(ctx, req.Reference, uid, model.PlanSnapshot{
		Category: req.Plan.Category,
		Nights:   req.Plan.Nights,
		People:   req.Plan.People,
		Price:    req.Plan.Price,
		Total:    req.Plan.Total,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrPaymentNotVerified):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Payment not verified"})
		case errors.Is(err, booking.ErrDuplicateReservation):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Reservation already exists"})
		case errors.Is(err, booking.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Payment verified, reservation confirmed",
		"data":    res,
	})
}

// MyReservations lists the caller's bookings.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list})
}
