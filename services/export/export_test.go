package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"iter"
	"testing"
	"time"

	"auditorium/models"
	"auditorium/services/booking"
	"auditorium/services/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// stubBookings serves a fixed listing; only Iterate is used by the exporter.
type stubBookings struct {
	booking.BookingService
	items []models.Booking
	err   error
}

func (s stubBookings) Iterate(_ context.Context, c models.BookingCriteria) iter.Seq2[models.Booking, error] {
	return func(yield func(models.Booking, error) bool) {
		if s.err != nil {
			yield(models.Booking{}, s.err)
			return
		}
		for _, b := range s.items {
			if c.Status != "" && b.Status != c.Status {
				continue
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

type stubUsers map[string]models.User

func (s stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &u, nil
}

func fixtureExporter(t *testing.T) *Exporter {
	t.Helper()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return NewExporter(stubBookings{items: []models.Booking{
		{
			ID: "b1", EventName: "Seminar", EventType: "Lecture", Department: "Physics",
			StartTime: start, EndTime: start.Add(time.Hour), STime: "09:00", ETime: "10:00",
			Status: models.StatusApproved, RequestedBy: "hod-1", Requirements: []string{"camera", "mic"},
		},
		{
			ID: "b2", EventName: "Convocation", EventType: "Ceremony", Department: "Administration",
			StartTime: start.Add(4 * time.Hour), EndTime: start.Add(6 * time.Hour), STime: "13:00", ETime: "15:00",
			Status: models.StatusApproved, BookedByAdmin: true, Requirements: []string{},
		},
	}}, stubUsers{"hod-1": {ID: "hod-1", Name: "Dr. Ada", Email: "ada@college.edu"}}, nil)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("Excel")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)
	assert.Equal(t, "bookings.xlsx", f.Filename())

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixtureExporter(t).Write(context.Background(), FormatCSV, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{
		"Seminar", "Lecture", "Physics", "Dr. Ada", "ada@college.edu",
		"2024-03-01 09:00", "2024-03-01 10:00", "09:00 - 10:00", "camera, mic",
	}, records[1])
	assert.Equal(t, "Admin", records[2][3])
	assert.Equal(t, "N/A", records[2][4])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixtureExporter(t).Write(context.Background(), FormatExcel, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "Convocation", rows[2][0])
}

func TestWritePropagatesListingErrors(t *testing.T) {
	exp := NewExporter(stubBookings{err: errs.NewDependencyError("store down", errors.New("timeout"))}, stubUsers{}, nil)
	err := exp.Write(context.Background(), FormatCSV, &bytes.Buffer{})
	assert.ErrorIs(t, err, errs.ErrDependency)
}
