package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"auditorium/models"
	"auditorium/services/booking"
	"auditorium/services/export"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	bookings booking.BookingService
	exporter *export.Exporter
}

func NewBookingHandler(bookings booking.BookingService, exporter *export.Exporter) *BookingHandler {
	return &BookingHandler{bookings: bookings, exporter: exporter}
}

// SubmitBookingHandler handles POST /api/booking (HOD) and POST /api/booking/admin-book.
func (h *BookingHandler) SubmitBookingHandler(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	b, err := h.bookings.Submit(c.Request.Context(), caller, in)
	if err != nil {
		respondError(c, err, "booking submission")
		return
	}

	msg := "Booking request submitted successfully"
	if b.BookedByAdmin {
		msg = "Auditorium booked successfully by admin"
	}
	getLogger(c).Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("status", b.Status),
		zap.String("actor", caller.UserID),
	)
	c.JSON(http.StatusCreated, gin.H{"message": msg, "booking": b})
}

// MyRequestsHandler lists the caller's own bookings, newest first.
func (h *BookingHandler) MyRequestsHandler(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	h.list(c, models.BookingCriteria{RequestedBy: caller.UserID, Sort: models.SortCreatedDesc})
}

// ListBookingsHandler lists all bookings. Optional filters: status, from, to
// (RFC 3339) and sort.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	criteria := models.BookingCriteria{
		Status: c.Query("status"),
		Sort:   c.DefaultQuery("sort", models.SortCreatedDesc),
	}
	var err error
	if criteria.From, err = parseTimeQuery(c, "from"); err != nil {
		badRequest(c, "Invalid 'from' time", err)
		return
	}
	if criteria.To, err = parseTimeQuery(c, "to"); err != nil {
		badRequest(c, "Invalid 'to' time", err)
		return
	}
	h.list(c, criteria)
}

// PendingBookingsHandler lists pending requests, newest first.
func (h *BookingHandler) PendingBookingsHandler(c *gin.Context) {
	h.list(c, models.BookingCriteria{Status: models.StatusPending, Sort: models.SortCreatedDesc})
}

// RecentBookingsHandler lists bookings starting in the given month, latest first.
func (h *BookingHandler) RecentBookingsHandler(c *gin.Context) {
	year, yErr := strconv.Atoi(c.Query("year"))
	month, mErr := strconv.Atoi(c.Query("month"))
	if yErr != nil || mErr != nil || year <= 0 || month < 1 || month > 12 {
		badRequest(c, "Year and month required", nil)
		return
	}
	from, to := monthRange(year, time.Month(month))
	h.list(c, models.BookingCriteria{From: from, To: to, Sort: models.SortStartDesc})
}

// monthRange returns the start of a UTC calendar month and the start of the next
// one, which is the exclusive upper bound.
func monthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (h *BookingHandler) list(c *gin.Context, criteria models.BookingCriteria) {
	bookings, err := h.bookings.List(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err, "booking listing")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// ApprovedCalendarHandler is the public calendar of approved slots grouped by date.
func (h *BookingHandler) ApprovedCalendarHandler(c *gin.Context) {
	days, err := h.bookings.ApprovedCalendar(c.Request.Context())
	if err != nil {
		respondError(c, err, "approved calendar")
		return
	}
	if days == nil {
		days = []models.CalendarDay{}
	}
	c.JSON(http.StatusOK, days)
}

// BookedDatesHandler serves both /booked-dates and /approved-times.
func (h *BookingHandler) BookedDatesHandler(c *gin.Context) {
	slots, err := h.bookings.BookedDates(c.Request.Context())
	if err != nil {
		respondError(c, err, "booked dates")
		return
	}
	if slots == nil {
		slots = []models.BookedSlot{}
	}
	c.JSON(http.StatusOK, slots)
}

// GetBookingHandler returns one booking.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondError(c, err, "booking lookup")
		return
	}
	c.JSON(http.StatusOK, b)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatusHandler approves, rejects or reopens a booking.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Status is required", err)
		return
	}

	b, err := h.bookings.SetStatus(c.Request.Context(), c.Param("bookingId"), req.Status, caller)
	if err != nil {
		respondError(c, err, "status update")
		return
	}
	getLogger(c).Info("booking status updated",
		zap.String("bookingID", b.ID),
		zap.String("status", b.Status),
		zap.String("actor", caller.UserID),
	)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Booking %s", b.Status), "booking": b})
}

// UpdateBookingHandler applies an admin edit.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	b, err := h.bookings.Update(c.Request.Context(), c.Param("bookingId"), patch, caller)
	if err != nil {
		respondError(c, err, "booking update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": b})
}

// CancelAdminBookingHandler deletes a booking the admin created directly.
func (h *BookingHandler) CancelAdminBookingHandler(c *gin.Context) {
	if err := h.bookings.CancelAdminBooking(c.Request.Context(), c.Param("bookingId")); err != nil {
		respondError(c, err, "admin booking cancellation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin booking cancelled successfully"})
}

// ExportHandler renders approved bookings as a CSV or XLSX attachment.
func (h *BookingHandler) ExportHandler(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		respondError(c, err, "export")
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(c.Request.Context(), format, &buf); err != nil {
		respondError(c, err, "export")
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+format.Filename())
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func parseTimeQuery(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
