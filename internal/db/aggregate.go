package db

import (
	"github.com/ukydev/moto-maintenance/internal/models"
)

// IndependentMax takes, per type, the latest date and the highest mileage
// seen across all of that type's records. The two values may come from
// different records.
func IndependentMax(records []models.MaintenanceRecord) map[string]models.Latest {
	latest := make(map[string]models.Latest)
	for _, rec := range records {
		cur, ok := latest[rec.Type]
		if !ok {
			latest[rec.Type] = models.Latest{Date: rec.Date, Mileage: rec.Mileage}
			continue
		}
		if rec.Date.After(cur.Date) {
			cur.Date = rec.Date
		}
		if rec.Mileage > cur.Mileage {
			cur.Mileage = rec.Mileage
		}
		latest[rec.Type] = cur
	}
	return latest
}

// MostRecentRecord takes both values from the single record with the latest
// date for each type. Ties on date go to the record added last.
func MostRecentRecord(records []models.MaintenanceRecord) map[string]models.Latest {
	latest := make(map[string]models.Latest)
	for _, rec := range records {
		cur, ok := latest[rec.Type]
		if ok && rec.Date.Before(cur.Date) {
			continue
		}
		latest[rec.Type] = models.Latest{Date: rec.Date, Mileage: rec.Mileage}
	}
	return latest
}

// MaxMileage returns the highest mileage across all records regardless of type.
func MaxMileage(records []models.MaintenanceRecord) int {
	maxMileage := 0
	for _, rec := range records {
		if rec.Mileage > maxMileage {
			maxMileage = rec.Mileage
		}
	}
	return maxMileage
}
