package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar date format accepted and printed for records.
const DateLayout = "2006-01-02"

var (
	ErrNegativeMileage = errors.New("mileage must be a non-negative integer")
	ErrEmptyType       = errors.New("maintenance type is required")
)

// MaintenanceRecord represents one logged maintenance event.
type MaintenanceRecord struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Date    time.Time          `json:"date" bson:"date"` // calendar date, UTC midnight
	Type    string             `json:"type" bson:"type"` // free text, e.g. "oil change"
	Mileage int                `json:"mileage" bson:"mileage"`
}

// ValidateMaintenance checks the fields a caller supplies for a new record.
// serviceType is expected to be trimmed already.
func ValidateMaintenance(serviceType string, mileage int) error {
	if mileage < 0 {
		return ErrNegativeMileage
	}
	if serviceType == "" {
		return ErrEmptyType
	}
	return nil
}

// CalendarDate drops the clock portion of t, keeping its year, month and day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from 'from' to 'to'.
// Any two dates in range of time.Time are handled without overflow.
// The result is negative when 'to' precedes 'from'.
func DaysBetween(from, to time.Time) int {
	return int((CalendarDate(to).Unix() - CalendarDate(from).Unix()) / 86400)
}

// Latest holds the aggregated last-seen values for one maintenance type.
type Latest struct {
	Date    time.Time `json:"date"`
	Mileage int       `json:"mileage"`
}
