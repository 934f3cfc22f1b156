package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farwill/travel-booking/internal/metrics"
	"github.com/farwill/travel-booking/internal/repository"
)

// PublicHandler serves the unauthenticated catalog and support endpoints.
type PublicHandler struct {
	Packages *repository.PackageRepo
	Fees     *repository.FeesRepo
	Tickets  *repository.TicketRepo
}

func NewPublicHandler(p *repository.PackageRepo, f *repository.FeesRepo, t *repository.TicketRepo) *PublicHandler {
	return &PublicHandler{Packages: p, Fees: f, Tickets: t}
}

// ListPackages returns the full catalog.
func (h *PublicHandler) ListPackages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Packages.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list})
}

// GetFees returns the platform fee sheet.
func (h *PublicHandler) GetFees(c echo.Context) error {
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

type ticketReq struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// CreateTicket files a support ticket.  No account is required; the email
// on the ticket is where the eventual reply lands.
func (h *PublicHandler) CreateTicket(c echo.Context) error {
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Message = strings.TrimSpace(req.Message)
	if req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email and message are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tickets.Create(ctx, req.Email, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	metrics.IncSupportTicket("created")

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Ticket received, reference " + t.Reference,
		"data":    t,
	})
}
