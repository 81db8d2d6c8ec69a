// Package duecheck decides which maintenance tasks are due from the recorded
// history, the current odometer reading and the current date.
package duecheck

import (
	"time"

	"github.com/ukydev/moto-maintenance/internal/db"
	"github.com/ukydev/moto-maintenance/internal/models"
)

// Source supplies the records to evaluate and the aggregation that reduces
// them per type. Snapshot must return a copy that is not appended to while a
// check runs.
type Source interface {
	Snapshot() []models.MaintenanceRecord
	Aggregation() db.Aggregation
}

// Engine evaluates the fixed rule table against a record history.
type Engine struct {
	rules []models.Rule
}

// NewEngine creates an engine over the fixed rule table.
func NewEngine() *Engine {
	return &Engine{rules: RuleTable()}
}

// Check evaluates every rule against a snapshot of src. It never fails:
// missing history makes a type due rather than producing an error.
func (e *Engine) Check(src Source, currentMileage int, currentDate time.Time) Report {
	records := src.Snapshot()
	today := models.CalendarDate(currentDate)

	report := Report{
		CheckedOn:      today,
		CurrentMileage: currentMileage,
	}
	if len(records) == 0 {
		// No rules run; every tracked type is listed as never serviced.
		report.Status = StatusNoRecords
		report.ReferenceMileage = currentMileage
		for _, rule := range e.rules {
			if item := neverServiced(rule); len(item.Reasons) > 0 {
				report.Due = append(report.Due, item)
			}
		}
		report.AnyDue = len(report.Due) > 0
		return report
	}

	reference := currentMileage
	if m := db.MaxMileage(records); m > reference {
		reference = m
	}
	report.ReferenceMileage = reference

	aggregate := src.Aggregation()
	if aggregate == nil {
		aggregate = db.IndependentMax
	}
	latest := aggregate(records)
	for _, rule := range e.rules {
		if item, due := evaluate(rule, latest, reference, today); due {
			report.Due = append(report.Due, item)
		}
	}

	report.AnyDue = len(report.Due) > 0
	if report.AnyDue {
		report.Status = StatusDue
	} else {
		report.Status = StatusNothingDue
	}
	return report
}

func evaluate(rule models.Rule, latest map[string]models.Latest, reference int, today time.Time) (DueItem, bool) {
	last, ok := latest[rule.Type]
	if !ok {
		item := neverServiced(rule)
		return item, len(item.Reasons) > 0
	}

	item := DueItem{Type: rule.Type, Label: rule.Label}

	mileageDelta := reference - last.Mileage
	daysSince := models.DaysBetween(last.Date, today)
	item.MileageDelta = &mileageDelta
	item.DaysSince = &daysSince

	if rule.MileageThreshold != nil && mileageDelta >= *rule.MileageThreshold {
		item.Reasons = append(item.Reasons, models.ReasonMileage)
	}
	if rule.DateThresholdDays != nil && daysSince >= *rule.DateThresholdDays {
		item.Reasons = append(item.Reasons, models.ReasonTime)
	}
	return item, len(item.Reasons) > 0
}

func neverServiced(rule models.Rule) DueItem {
	return DueItem{
		Type:          rule.Type,
		Label:         rule.Label,
		Reasons:       rule.Reasons(),
		NeverServiced: true,
	}
}

var defaultEngine = NewEngine()

// Check runs the default engine.
func Check(src Source, currentMileage int, currentDate time.Time) Report {
	return defaultEngine.Check(src, currentMileage, currentDate)
}
