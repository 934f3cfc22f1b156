package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farwill/travel-booking/internal/export"
	"github.com/farwill/travel-booking/internal/metrics"
	"github.com/farwill/travel-booking/internal/model"
	"github.com/farwill/travel-booking/internal/queue"
	"github.com/farwill/travel-booking/internal/repository"
)

// AdminHandler bundles the management endpoints: user overview, catalog
// maintenance, the fee sheet, reservation reports and support replies.
type AdminHandler struct {
	Users        *repository.UserRepo
	Packages     *repository.PackageRepo
	Fees         *repository.FeesRepo
	Reservations *repository.ReservationRepo
	Tickets      *repository.TicketRepo
	Events       EventPublisher
}

func NewAdminHandler(u *repository.UserRepo, p *repository.PackageRepo, f *repository.FeesRepo, r *repository.ReservationRepo, t *repository.TicketRepo, ev EventPublisher) *AdminHandler {
	return &AdminHandler{Users: u, Packages: p, Fees: f, Reservations: r, Tickets: t, Events: ev}
}

// ----- users -----

// ListUsers returns all registered accounts, newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

// ----- packages -----

// ListPackages returns the catalog for the management console.  Same data
// as the public listing, minus the response cache.
func (h *AdminHandler) ListPackages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Packages.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list})
}

type packageReq struct {
	Category  string                  `json:"category"`
	Durations []model.PackageDuration `json:"durations"`
}

func (h *AdminHandler) CreatePackage(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if !model.ValidCategory(req.Category) || len(req.Durations) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category and durations are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Packages.Create(ctx, req.Category, req.Durations)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	pkg, err := h.Packages.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Package created", "data": pkg})
}

func (h *AdminHandler) UpdatePackage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid package id"})
	}
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if !model.ValidCategory(req.Category) || len(req.Durations) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category and durations are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Packages.Update(ctx, id, req.Category, req.Durations); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	pkg, err := h.Packages.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Package updated", "data": pkg})
}

func (h *AdminHandler) DeletePackage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid package id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Packages.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Package deleted"})
}

// ----- fees -----

type feesReq struct {
	VisaFee          int64 `json:"visaFee"`
	AirportPickupFee int64 `json:"airportPickupFee"`
	MiscFee          int64 `json:"miscFee"`
	TicketPrice      int64 `json:"ticketPrice"`
	MarginPercentage int   `json:"marginPercentage"`
}

// SetFees overwrites the singleton fee sheet.
func (h *AdminHandler) SetFees(c echo.Context) error {
	var req feesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if req.VisaFee < 0 || req.AirportPickupFee < 0 || req.MiscFee < 0 || req.TicketPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Fees cannot be negative"})
	}
	if req.MarginPercentage <= 0 {
		req.MarginPercentage = model.DefaultMarginPercentage
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f := model.Fees{
		VisaFee:          req.VisaFee,
		AirportPickupFee: req.AirportPickupFee,
		MiscFee:          req.MiscFee,
		TicketPrice:      req.TicketPrice,
		MarginPercentage: req.MarginPercentage,
	}
	if err := h.Fees.Set(ctx, f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Fees saved", "data": f})
}

// GetFees returns the current fee sheet.
func (h *AdminHandler) GetFees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fees, err := h.Fees.Get(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Fees not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": fees})
}

func (h *AdminHandler) DeleteFees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fees.Delete(ctx); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Fees not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Fees deleted"})
}

// ----- reservations -----

// ListReservations returns every booking, newest first.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list})
}

// ExportReservations streams all bookings as an xlsx attachment.
func (h *AdminHandler) ExportReservations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	buf, err := export.ReservationsXLSX(list)
	if err != nil {
		c.Logger().Errorf("reservation export failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	filename := "reservations-" + time.Now().Format("20060102") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ----- support tickets -----

func (h *AdminHandler) ListTickets(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Tickets.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list})
}

type replyReq struct {
	Reply  string `json:"reply"`
	Status string `json:"status"`
}

// ReplyTicket stores the admin's answer and queues the reply email to the
// ticket's address.
func (h *AdminHandler) ReplyTicket(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid ticket id"})
	}
	var req replyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Reply = strings.TrimSpace(req.Reply)
	if req.Reply == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Reply is required"})
	}
	if req.Status == "" {
		req.Status = model.TicketClosed
	}
	if !model.ValidTicketStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tickets.Reply(ctx, id, req.Reply, req.Status)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	metrics.IncSupportTicket("replied")

	if h.Events != nil {
		ev := queue.EmailEvent{
			Kind:      queue.KindTicketReplied,
			To:        t.Email,
			Reference: t.Reference,
			Message:   t.Message,
			Reply:     req.Reply,
			Status:    t.Status,
		}
		if err := h.Events.Publish(ctx, ev); err != nil {
			c.Logger().Warnf("ticket reply event not published for %s: %v", t.Reference, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Reply sent", "data": t})
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
}
