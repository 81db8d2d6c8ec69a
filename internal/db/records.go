package db

import (
	"sync"
	"time"

	"github.com/ukydev/moto-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordStore holds maintenance records in insertion order for the lifetime
// of the process. It is safe for concurrent use.
type RecordStore struct {
	mu        sync.RWMutex
	records   []models.MaintenanceRecord
	aggregate Aggregation
}

// NewRecordStore creates an empty store using IndependentMax for LatestByType.
func NewRecordStore() *RecordStore {
	return NewRecordStoreWithAggregation(IndependentMax)
}

// NewRecordStoreWithAggregation creates an empty store that answers
// LatestByType with the given aggregation.
func NewRecordStoreWithAggregation(agg Aggregation) *RecordStore {
	if agg == nil {
		agg = IndependentMax
	}
	return &RecordStore{aggregate: agg}
}

// Add appends a record. Mileage must already be validated by the caller;
// neither ordering nor uniqueness is enforced.
func (s *RecordStore) Add(date time.Time, serviceType string, mileage int) models.MaintenanceRecord {
	rec := models.MaintenanceRecord{
		ID:      primitive.NewObjectID(),
		Date:    models.CalendarDate(date),
		Type:    serviceType,
		Mileage: mileage,
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	return rec
}

// All returns the records in insertion order. The slice is a copy.
func (s *RecordStore) All() []models.MaintenanceRecord {
	return s.Snapshot()
}

// Snapshot copies the record sequence under a read lock.
func (s *RecordStore) Snapshot() []models.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MaintenanceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// LatestByType aggregates the current records per maintenance type.
func (s *RecordStore) LatestByType() map[string]models.Latest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.aggregate(s.records)
}

// Aggregation returns the function backing LatestByType.
func (s *RecordStore) Aggregation() Aggregation {
	return s.aggregate
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
