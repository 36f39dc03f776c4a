package handlers

import (
	"net/http"

	"auditorium/services/booking"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	bookings booking.BookingService
}

func NewAdminHandler(bookings booking.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// MetricsHandler returns user and booking totals.
func (h *AdminHandler) MetricsHandler(c *gin.Context) {
	m, err := h.bookings.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, err, "dashboard metrics")
		return
	}
	c.JSON(http.StatusOK, m)
}
