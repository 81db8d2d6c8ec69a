package models

// Reason names the threshold that made a maintenance type due.
type Reason string

const (
	ReasonMileage Reason = "mileage"
	ReasonTime    Reason = "time"
)

// Rule holds the due thresholds for one maintenance type. A nil threshold is
// not evaluated.
type Rule struct {
	Type              string `json:"type"`
	Label             string `json:"label"`
	MileageThreshold  *int   `json:"mileage_threshold,omitempty"` // miles
	DateThresholdDays *int   `json:"date_threshold_days,omitempty"`
}

// Reasons lists every threshold the rule defines, mileage first.
func (r Rule) Reasons() []Reason {
	var reasons []Reason
	if r.MileageThreshold != nil {
		reasons = append(reasons, ReasonMileage)
	}
	if r.DateThresholdDays != nil {
		reasons = append(reasons, ReasonTime)
	}
	return reasons
}
