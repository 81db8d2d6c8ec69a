package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/moto-maintenance/internal/db"
	"github.com/ukydev/moto-maintenance/internal/duecheck"
	"github.com/ukydev/moto-maintenance/internal/input"
	"github.com/ukydev/moto-maintenance/internal/models"
	"github.com/ukydev/moto-maintenance/internal/notify"
)

// MaintenanceRequest is the body of POST /api/maintenance
type MaintenanceRequest struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Type    string `json:"type"`
	Mileage *int   `json:"mileage"`
}

// MaintenanceHandler serves the record store and due checks over HTTP
type MaintenanceHandler struct {
	store     db.MaintenanceCollection
	engine    *duecheck.Engine
	publisher notify.Publisher
	now       func() time.Time
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(store db.MaintenanceCollection, engine *duecheck.Engine, publisher notify.Publisher) *MaintenanceHandler {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &MaintenanceHandler{
		store:     store,
		engine:    engine,
		publisher: publisher,
		now:       time.Now,
	}
}

// Records handles GET (list) and POST (add) on /api/maintenance
func (h *MaintenanceHandler) Records(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MaintenanceHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.All())
}

func (h *MaintenanceHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req MaintenanceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	date, err := input.ParseDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Mileage == nil {
		http.Error(w, "mileage is required", http.StatusBadRequest)
		return
	}

	serviceType := strings.TrimSpace(req.Type)
	if err := models.ValidateMaintenance(serviceType, *req.Mileage); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := h.store.Add(date, serviceType, *req.Mileage)
	log.WithFields(log.Fields{
		"id":      rec.ID.Hex(),
		"type":    rec.Type,
		"mileage": rec.Mileage,
		"tracked": duecheck.IsTracked(rec.Type),
	}).Info("Maintenance record added")

	writeJSON(w, http.StatusCreated, rec)
}

// Due handles GET /api/maintenance/due?mileage=N&date=YYYY-MM-DD.
// date defaults to today.
func (h *MaintenanceHandler) Due(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	mileage, err := input.ParseMileage(q.Get("mileage"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentDate := h.now()
	if v := q.Get("date"); v != "" {
		currentDate, err = input.ParseDate(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	report := h.engine.Check(h.store, mileage, currentDate)

	if err := h.publisher.PublishReport(r.Context(), report); err != nil {
		log.WithError(err).Error("Failed to publish due report")
	}

	writeJSON(w, http.StatusOK, dueResponse{Report: report, Lines: report.Lines()})
}

type dueResponse struct {
	duecheck.Report
	Lines []string `json:"lines"`
}

// Health reports liveness and the number of stored records
func (h *MaintenanceHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"records": strconv.Itoa(h.store.Len()),
	})
}
