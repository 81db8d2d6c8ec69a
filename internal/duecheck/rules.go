package duecheck

import "github.com/ukydev/moto-maintenance/internal/models"

func intp(v int) *int { return &v }

// ruleTable is evaluated in this order; report lines follow it.
var ruleTable = []models.Rule{
	{Type: "tire change", Label: "Tire change", MileageThreshold: intp(10000), DateThresholdDays: intp(1825)},
	{Type: "air filter", Label: "Air filter replacement", MileageThreshold: intp(7500), DateThresholdDays: intp(1460)},
	{Type: "clutch replacement", Label: "Clutch replacement", MileageThreshold: intp(25000)},
	{Type: "chain replacement", Label: "Chain replacement", MileageThreshold: intp(10000)},
	{Type: "valve adjustment", Label: "Valve adjustment", MileageThreshold: intp(20000)},
	{Type: "brake pad", Label: "Brake pad check/replacement", MileageThreshold: intp(20000)},
	{Type: "oil change", Label: "Oil change", MileageThreshold: intp(5000), DateThresholdDays: intp(180)},
	{Type: "registration", Label: "Registration", DateThresholdDays: intp(730)},
}

// RuleTable returns a deep copy of the fixed rule table in evaluation order.
func RuleTable() []models.Rule {
	out := make([]models.Rule, len(ruleTable))
	for i, r := range ruleTable {
		out[i] = r
		if r.MileageThreshold != nil {
			out[i].MileageThreshold = intp(*r.MileageThreshold)
		}
		if r.DateThresholdDays != nil {
			out[i].DateThresholdDays = intp(*r.DateThresholdDays)
		}
	}
	return out
}

// IsTracked reports whether serviceType has an entry in the rule table.
func IsTracked(serviceType string) bool {
	for _, r := range ruleTable {
		if r.Type == serviceType {
			return true
		}
	}
	return false
}
