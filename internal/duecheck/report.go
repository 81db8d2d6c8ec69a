package duecheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/ukydev/moto-maintenance/internal/models"
)

// Status classifies a Report.
type Status string

const (
	StatusNoRecords  Status = "no_records"
	StatusNothingDue Status = "nothing_due"
	StatusDue        Status = "due"
)

const (
	MessageNoRecords  = "No records available to check."
	MessageNothingDue = "No maintenance due! Eat some ice cream..."
)

// DueItem is one maintenance type that needs attention.
type DueItem struct {
	Type          string          `json:"type"`
	Label         string          `json:"label"`
	Reasons       []models.Reason `json:"reasons"`
	NeverServiced bool            `json:"never_serviced"`
	MileageDelta  *int            `json:"mileage_delta,omitempty"`
	DaysSince     *int            `json:"days_since,omitempty"`
}

// HasReason reports whether r is among the item's reasons.
func (d DueItem) HasReason(r models.Reason) bool {
	for _, reason := range d.Reasons {
		if reason == r {
			return true
		}
	}
	return false
}

// Report is the outcome of one due check.
type Report struct {
	Status           Status    `json:"status"`
	CheckedOn        time.Time `json:"checked_on"`
	CurrentMileage   int       `json:"current_mileage"`
	ReferenceMileage int       `json:"reference_mileage"`
	AnyDue           bool      `json:"any_due"`
	Due              []DueItem `json:"due,omitempty"`
}

// Lines renders the report as text: one line per due item in rule order, or
// a single message when there is nothing to list.
func (r Report) Lines() []string {
	switch r.Status {
	case StatusNoRecords:
		return []string{MessageNoRecords}
	case StatusNothingDue:
		return []string{MessageNothingDue}
	}

	lines := make([]string, 0, len(r.Due))
	for _, item := range r.Due {
		reasons := make([]string, len(item.Reasons))
		for i, reason := range item.Reasons {
			reasons[i] = string(reason)
		}
		line := fmt.Sprintf("%s is due (%s)", item.Label, strings.Join(reasons, ", "))
		if item.NeverServiced {
			line += ", no service on record"
		}
		lines = append(lines, line+".")
	}
	return lines
}

// String joins Lines with newlines.
func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}
