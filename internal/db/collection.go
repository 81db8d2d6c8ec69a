package db

import (
	"time"

	"github.com/ukydev/moto-maintenance/internal/models"
)

// MaintenanceCollection defines the interface for maintenance record operations.
type MaintenanceCollection interface {
	Add(date time.Time, serviceType string, mileage int) models.MaintenanceRecord
	All() []models.MaintenanceRecord
	LatestByType() map[string]models.Latest
	Snapshot() []models.MaintenanceRecord
	Aggregation() Aggregation
	Len() int
}

// Aggregation reduces a record sequence to one Latest entry per type.
type Aggregation func(records []models.MaintenanceRecord) map[string]models.Latest
