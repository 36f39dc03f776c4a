package models

import "time"

// Booking statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Booking is a request to use the auditorium for an event.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	Department    string    `bson:"department" json:"department"`
	EventName     string    `bson:"eventName" json:"eventName"`
	EventType     string    `bson:"eventType" json:"eventType"`
	StartTime     time.Time `bson:"startTime" json:"startTime"`
	EndTime       time.Time `bson:"endTime" json:"endTime"`
	STime         string    `bson:"sTime" json:"sTime"` // display only, e.g. "09:00"
	ETime         string    `bson:"eTime" json:"eTime"`
	Comments      string    `bson:"comments,omitempty" json:"comments,omitempty"`
	Status        string    `bson:"status" json:"status"`
	RequestedBy   string    `bson:"requestedBy,omitempty" json:"requestedBy,omitempty"` // empty for admin bookings
	BookedByAdmin bool      `bson:"bookedByAdmin" json:"bookedByAdmin"`
	Requirements  []string  `bson:"requirements" json:"requirements"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsValidStatus reports whether s is one of the known booking statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// BookingInput carries the caller supplied fields of a new booking.
type BookingInput struct {
	Department   string    `json:"department"`
	EventName    string    `json:"eventName" validate:"required"`
	EventType    string    `json:"eventType" validate:"required"`
	StartTime    time.Time `json:"startTime" validate:"required"`
	EndTime      time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	STime        string    `json:"sTime" validate:"required"`
	ETime        string    `json:"eTime" validate:"required"`
	Comments     string    `json:"comments"`
	Requirements []string  `json:"requirements"`
}

// BookingPatch is an admin edit; nil fields are left unchanged.
type BookingPatch struct {
	Department   *string    `json:"department,omitempty"`
	EventName    *string    `json:"eventName,omitempty"`
	EventType    *string    `json:"eventType,omitempty"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	STime        *string    `json:"sTime,omitempty"`
	ETime        *string    `json:"eTime,omitempty"`
	Comments     *string    `json:"comments,omitempty"`
	Requirements *[]string  `json:"requirements,omitempty"`
}

// Sort orders understood by the booking store.
const (
	SortCreatedDesc = "createdAt_desc"
	SortStartAsc    = "startTime_asc"
	SortStartDesc   = "startTime_desc"
)

// BookingCriteria filters a booking listing. Zero values mean "no filter".
type BookingCriteria struct {
	Status      string
	RequestedBy string
	From        time.Time // start time >= From
	To          time.Time // start time < To
	Sort        string
}

// BookedSlot is the public projection of an approved booking.
type BookedSlot struct {
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	STime          string    `json:"sTime"`
	ETime          string    `json:"eTime"`
	EventName      string    `json:"eventName"`
	DepartmentName string    `json:"departmentName"`
}

// CalendarDay groups the approved slots that start on one date.
type CalendarDay struct {
	Date        string   `json:"date"`
	BookedSlots []string `json:"bookedSlots"`
	Department  string   `json:"department"`
	EventName   string   `json:"eventName"`
}

// BookingMetrics is the admin dashboard overview.
type BookingMetrics struct {
	TotalUsers    int64            `json:"totalUsers"`
	TotalHODs     int64            `json:"totalHods"`
	TotalBookings int64            `json:"totalBookings"`
	ByStatus      map[string]int64 `json:"byStatus"`
}
