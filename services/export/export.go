package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"auditorium/models"
	"auditorium/services/booking"
	"auditorium/services/errs"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Format is an export file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

const (
	sheetName  = "Approved Bookings"
	timeLayout = "2006-01-02 15:04"
)

var header = []string{
	"EventName", "EventType", "Department", "RequestedBy", "Email",
	"StartTime", "EndTime", "Slot", "Requirements",
}

// ParseFormat maps the query value to a Format; empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatExcel, "xlsx":
		return FormatExcel, nil
	}
	return "", errs.NewValidationError("unsupported export format %q", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename returns the attachment name for the format.
func (f Format) Filename() string {
	if f == FormatExcel {
		return "bookings.xlsx"
	}
	return "bookings.csv"
}

// RequesterLookup resolves the HOD behind a booking.
type RequesterLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Exporter writes the approved bookings as a spreadsheet.
type Exporter struct {
	bookings booking.BookingService
	users    RequesterLookup
	logger   *zap.Logger
}

func NewExporter(bookings booking.BookingService, users RequesterLookup, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{bookings: bookings, users: users, logger: logger.Named("export")}
}

// Write renders all approved bookings, earliest first, in the given format.
func (e *Exporter) Write(ctx context.Context, format Format, w io.Writer) error {
	rows, err := e.rows(ctx)
	if err != nil {
		return err
	}
	switch format {
	case FormatExcel:
		return writeXLSX(w, rows)
	default:
		return writeCSV(w, rows)
	}
}

func (e *Exporter) rows(ctx context.Context) ([][]string, error) {
	type requester struct{ name, email string }
	cache := map[string]requester{}

	rows := [][]string{header}
	criteria := models.BookingCriteria{Status: models.StatusApproved, Sort: models.SortStartAsc}
	for b, err := range e.bookings.Iterate(ctx, criteria) {
		if err != nil {
			return nil, err
		}

		who := requester{name: "Admin", email: "N/A"}
		if b.RequestedBy != "" {
			if cached, ok := cache[b.RequestedBy]; ok {
				who = cached
			} else {
				u, err := e.users.GetByID(ctx, b.RequestedBy)
				if err != nil {
					e.logger.Warn("requester lookup failed", zap.String("userID", b.RequestedBy), zap.Error(err))
					who = requester{name: "Unknown", email: "N/A"}
				} else {
					who = requester{name: u.Name, email: u.Email}
				}
				cache[b.RequestedBy] = who
			}
		}

		rows = append(rows, []string{
			b.EventName,
			b.EventType,
			b.Department,
			who.name,
			who.email,
			b.StartTime.Format(timeLayout),
			b.EndTime.Format(timeLayout),
			b.STime + " - " + b.ETime,
			strings.Join(b.Requirements, ", "),
		})
	}
	return rows, nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "I", 25); err != nil {
		return fmt.Errorf("xlsx width: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
