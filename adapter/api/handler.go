package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	attendanceCommands "github.com/felixgeelhaar/turnout/internal/attendance/application/commands"
	attendanceQueries "github.com/felixgeelhaar/turnout/internal/attendance/application/queries"
	attendanceDomain "github.com/felixgeelhaar/turnout/internal/attendance/domain"
	attendeeCommands "github.com/felixgeelhaar/turnout/internal/attendees/application/commands"
	attendeeQueries "github.com/felixgeelhaar/turnout/internal/attendees/application/queries"
	attendeesDomain "github.com/felixgeelhaar/turnout/internal/attendees/domain"
	eventCommands "github.com/felixgeelhaar/turnout/internal/events/application/commands"
	eventQueries "github.com/felixgeelhaar/turnout/internal/events/application/queries"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	"github.com/felixgeelhaar/turnout/internal/events/infrastructure/cache"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

// Handler handles API requests.
type Handler struct {
	recordScan        *attendanceCommands.RecordScanHandler
	createCheckpoint  *attendanceCommands.CreateCheckpointHandler
	listCheckpoints   *attendanceQueries.ListCheckpointsHandler
	report            *attendanceQueries.AttendanceReportHandler
	occurrenceRecords *attendanceQueries.ListOccurrenceRecordsHandler
	attendeeRecords   *attendanceQueries.ListAttendeeRecordsHandler

	createEvent     *eventCommands.CreateEventHandler
	deactivateEvent *eventCommands.DeactivateEventHandler
	renewQRCode     *eventCommands.RenewQRCodeHandler
	listEvents      *eventQueries.ListEventsHandler
	eventLookup     *cache.CachedEventLookup

	registerAttendee *attendeeCommands.RegisterAttendeeHandler
	importAttendees  *attendeeCommands.ImportAttendeesHandler
	validateAttendee *attendeeQueries.ValidateAttendeeHandler
	listAttendees    *attendeeQueries.ListAttendeesHandler

	logger *slog.Logger
}

// HandlerConfig holds dependencies for the API handler.
type HandlerConfig struct {
	RecordScan        *attendanceCommands.RecordScanHandler
	CreateCheckpoint  *attendanceCommands.CreateCheckpointHandler
	ListCheckpoints   *attendanceQueries.ListCheckpointsHandler
	Report            *attendanceQueries.AttendanceReportHandler
	OccurrenceRecords *attendanceQueries.ListOccurrenceRecordsHandler
	AttendeeRecords   *attendanceQueries.ListAttendeeRecordsHandler

	CreateEvent     *eventCommands.CreateEventHandler
	DeactivateEvent *eventCommands.DeactivateEventHandler
	RenewQRCode     *eventCommands.RenewQRCodeHandler
	ListEvents      *eventQueries.ListEventsHandler
	EventLookup     *cache.CachedEventLookup

	RegisterAttendee *attendeeCommands.RegisterAttendeeHandler
	ImportAttendees  *attendeeCommands.ImportAttendeesHandler
	ValidateAttendee *attendeeQueries.ValidateAttendeeHandler
	ListAttendees    *attendeeQueries.ListAttendeesHandler

	Logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handler{
		recordScan:        cfg.RecordScan,
		createCheckpoint:  cfg.CreateCheckpoint,
		listCheckpoints:   cfg.ListCheckpoints,
		report:            cfg.Report,
		occurrenceRecords: cfg.OccurrenceRecords,
		attendeeRecords:   cfg.AttendeeRecords,
		createEvent:       cfg.CreateEvent,
		deactivateEvent:   cfg.DeactivateEvent,
		renewQRCode:       cfg.RenewQRCode,
		listEvents:        cfg.ListEvents,
		eventLookup:       cfg.EventLookup,
		registerAttendee:  cfg.RegisterAttendee,
		importAttendees:   cfg.ImportAttendees,
		validateAttendee:  cfg.ValidateAttendee,
		listAttendees:     cfg.ListAttendees,
		logger:            cfg.Logger,
	}
}

type scanRequest struct {
	QRCode            string   `json:"qr_code"`
	AttendeeID        string   `json:"attendee_id"`
	CheckpointCode    string   `json:"checkpoint_code,omitempty"`
	ScannedAt         string   `json:"scanned_at,omitempty"`
	TargetDate        string   `json:"target_date,omitempty"`
	DeviceFingerprint string   `json:"device_fingerprint,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	Accuracy          *float64 `json:"accuracy,omitempty"`
}

type scanResponse struct {
	RecordID     uuid.UUID `json:"record_id"`
	AttendeeName string    `json:"attendee_name"`
	EventName    string    `json:"event_name"`
	Status       string    `json:"status"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// RecordScan handles POST /api/v1/scan
func (h *Handler) RecordScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.QRCode == "" || req.AttendeeID == "" {
		writeError(w, http.StatusBadRequest, "qr_code and attendee_id are required")
		return
	}

	cmd := attendanceCommands.RecordScanCommand{
		QRCode:         req.QRCode,
		AttendeeID:     req.AttendeeID,
		CheckpointCode: req.CheckpointCode,
		Metadata:       scanMetadata(r, req),
	}
	if req.ScannedAt != "" {
		at, err := time.Parse(time.RFC3339, req.ScannedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "scanned_at must be RFC 3339")
			return
		}
		cmd.ScannedAt = at
	}
	if req.TargetDate != "" {
		date, err := sharedDomain.ParseDate(req.TargetDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "target_date must be YYYY-MM-DD")
			return
		}
		cmd.TargetDate = date
	}

	result, err := h.recordScan.Handle(r.Context(), cmd)
	if err != nil {
		h.writeDomainError(w, err, "failed to record scan")
		return
	}

	writeJSON(w, http.StatusCreated, scanResponse{
		RecordID:     result.RecordID,
		AttendeeName: result.AttendeeName,
		EventName:    result.EventName,
		Status:       result.Status,
		RecordedAt:   result.RecordedAt,
	})
}

// CheckpointScan handles POST /api/v1/checkpoint-scan. Stations showing a
// checkpoint's own code submit here; the occurrence comes from the
// checkpoint's owner.
func (h *Handler) CheckpointScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.CheckpointCode == "" || req.AttendeeID == "" {
		writeError(w, http.StatusBadRequest, "checkpoint_code and attendee_id are required")
		return
	}

	cmd := attendanceCommands.RecordScanCommand{
		AttendeeID:     req.AttendeeID,
		CheckpointCode: req.CheckpointCode,
		Metadata:       scanMetadata(r, req),
	}
	if req.ScannedAt != "" {
		at, err := time.Parse(time.RFC3339, req.ScannedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "scanned_at must be RFC 3339")
			return
		}
		cmd.ScannedAt = at
	}
	if req.TargetDate != "" {
		date, err := sharedDomain.ParseDate(req.TargetDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "target_date must be YYYY-MM-DD")
			return
		}
		cmd.TargetDate = date
	}

	result, err := h.recordScan.Handle(r.Context(), cmd)
	if err != nil {
		h.writeDomainError(w, err, "failed to record checkpoint scan")
		return
	}

	writeJSON(w, http.StatusCreated, scanResponse{
		RecordID:     result.RecordID,
		AttendeeName: result.AttendeeName,
		EventName:    result.EventName,
		Status:       result.Status,
		RecordedAt:   result.RecordedAt,
	})
}

func scanMetadata(r *http.Request, req scanRequest) attendanceDomain.ScanMetadata {
	meta := attendanceDomain.ScanMetadata{
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         clientIP(r),
		UserAgent:         r.UserAgent(),
	}
	if req.Latitude != nil && req.Longitude != nil {
		fix := &attendanceDomain.GeoFix{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if req.Accuracy != nil {
			fix.Accuracy = *req.Accuracy
		}
		meta.Location = fix
	}
	return meta
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type createEventRequest struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Date        string   `json:"date"`
	EndDate     string   `json:"end_date,omitempty"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Frequency   string   `json:"frequency,omitempty"`
	Weekdays    []string `json:"weekdays,omitempty"`
}

// CreateEvent handles POST /api/v1/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cmd := eventCommands.CreateEventCommand{
		Type:        eventsDomain.EventType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Frequency:   eventsDomain.Frequency(req.Frequency),
	}

	var err error
	if cmd.Date, err = sharedDomain.ParseDate(req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if req.EndDate != "" {
		if cmd.EndDate, err = sharedDomain.ParseDate(req.EndDate); err != nil {
			writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
	}
	if cmd.StartTime, err = sharedDomain.ParseTimeOfDay(req.StartTime); err != nil {
		writeError(w, http.StatusBadRequest, "start_time must be HH:MM")
		return
	}
	if cmd.EndTime, err = sharedDomain.ParseTimeOfDay(req.EndTime); err != nil {
		writeError(w, http.StatusBadRequest, "end_time must be HH:MM")
		return
	}
	if cmd.Weekdays, err = parseWeekdays(req.Weekdays); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createEvent.Handle(r.Context(), cmd)
	if err != nil {
		h.writeDomainError(w, err, "failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"event_id":      result.EventID,
		"qr_code":       result.QRCode,
		"session_count": result.SessionCount,
	})
}

// ListEvents handles GET /api/v1/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.listEvents.Handle(r.Context(), eventQueries.ListEventsQuery{})
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// GetEvent handles GET /api/v1/events/{qrCode}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	qrCode := r.PathValue("qrCode")
	if qrCode == "" {
		writeError(w, http.StatusBadRequest, "QR code is required")
		return
	}

	dto, err := h.eventLookup.Handle(r.Context(), eventQueries.GetEventByQRCodeQuery{QRCode: qrCode})
	if err != nil {
		h.writeDomainError(w, err, "failed to resolve QR code")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeactivateEvent handles POST /api/v1/events/{eventID}/deactivate
func (h *Handler) DeactivateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	if err := h.deactivateEvent.Handle(r.Context(), eventCommands.DeactivateEventCommand{EventID: eventID}); err != nil {
		h.writeDomainError(w, err, "failed to deactivate event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// RenewQRCode handles POST /api/v1/events/{eventID}/qrcode
func (h *Handler) RenewQRCode(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	result, err := h.renewQRCode.Handle(r.Context(), eventCommands.RenewQRCodeCommand{EventID: eventID})
	if err != nil {
		h.writeDomainError(w, err, "failed to renew QR code")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"qr_code": result.QRCode})
}

// ListCheckpoints handles GET /api/v1/events/{qrCode}/checkpoints
func (h *Handler) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	qrCode := r.PathValue("qrCode")
	query := attendanceQueries.ListCheckpointsQuery{QRCode: qrCode}

	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := sharedDomain.ParseDate(dateParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		query.Date = date
	} else {
		query.Date = sharedDomain.DateOf(time.Now().UTC())
	}

	checkpoints, err := h.listCheckpoints.Handle(r.Context(), query)
	if err != nil {
		h.writeDomainError(w, err, "failed to list checkpoints")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checkpoints": checkpoints})
}

type createCheckpointRequest struct {
	OwnerKind    string `json:"owner_kind"`
	OwnerID      string `json:"owner_id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	RequiredTime string `json:"required_time"`
	GraceMinutes int    `json:"grace_minutes"`
	AppliesTo    string `json:"applies_to,omitempty"`
	SpecificDate string `json:"specific_date,omitempty"`
	IsRequired   bool   `json:"is_required"`
	Order        int    `json:"order"`
}

// CreateCheckpoint handles POST /api/v1/checkpoints
func (h *Handler) CreateCheckpoint(w http.ResponseWriter, r *http.Request) {
	var req createCheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "owner_id must be a UUID")
		return
	}

	cmd := attendanceCommands.CreateCheckpointCommand{
		OwnerKind:    attendanceDomain.OwnerKind(req.OwnerKind),
		OwnerID:      ownerID,
		Type:         attendanceDomain.CheckpointType(req.Type),
		Name:         req.Name,
		Description:  req.Description,
		GraceMinutes: req.GraceMinutes,
		AppliesTo:    attendanceDomain.AppliesTo(req.AppliesTo),
		IsRequired:   req.IsRequired,
		Order:        req.Order,
	}
	if cmd.RequiredTime, err = sharedDomain.ParseTimeOfDay(req.RequiredTime); err != nil {
		writeError(w, http.StatusBadRequest, "required_time must be HH:MM")
		return
	}
	if req.SpecificDate != "" {
		if cmd.SpecificDate, err = sharedDomain.ParseDate(req.SpecificDate); err != nil {
			writeError(w, http.StatusBadRequest, "specific_date must be YYYY-MM-DD")
			return
		}
	}

	result, err := h.createCheckpoint.Handle(r.Context(), cmd)
	if err != nil {
		h.writeDomainError(w, err, "failed to create checkpoint")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"checkpoint_id": result.CheckpointID,
		"code":          result.Code,
		"window_start":  result.WindowStart,
		"window_end":    result.WindowEnd,
	})
}

// AttendanceReport handles GET /api/v1/events/{eventID}/report
func (h *Handler) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	report, err := h.report.Handle(r.Context(), attendanceQueries.AttendanceReportQuery{EventID: eventID})
	if err != nil {
		h.writeDomainError(w, err, "failed to build report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ListOccurrenceRecords handles GET /api/v1/events/{eventID}/records
func (h *Handler) ListOccurrenceRecords(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	query := attendanceQueries.ListOccurrenceRecordsQuery{
		Kind: eventsDomain.OccurrenceEvent,
		ID:   eventID,
	}
	// Multi-day events store records against session occurrences.
	if r.URL.Query().Get("kind") == "session" {
		query.Kind = eventsDomain.OccurrenceSession
	}
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := sharedDomain.ParseDate(dateParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		query.Date = date
	}

	records, err := h.occurrenceRecords.Handle(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to list records", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// ListAttendeeRecords handles GET /api/v1/attendees/{attendeeID}/records
func (h *Handler) ListAttendeeRecords(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathUUID(w, r, "attendeeID")
	if !ok {
		return
	}

	records, err := h.attendeeRecords.Handle(r.Context(), attendanceQueries.ListAttendeeRecordsQuery{AttendeeID: attendeeID})
	if err != nil {
		h.logger.Error("failed to list records", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

type registerAttendeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// RegisterAttendee handles POST /api/v1/attendees
func (h *Handler) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	var req registerAttendeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.registerAttendee.Handle(r.Context(), attendeeCommands.RegisterAttendeeCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeDomainError(w, err, "failed to register attendee")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          result.ID,
		"attendee_id": result.AttendeeID,
	})
}

type importAttendeesRequest struct {
	Rows []registerAttendeeRequest `json:"rows"`
}

// ImportAttendees handles POST /api/v1/attendees/import
func (h *Handler) ImportAttendees(w http.ResponseWriter, r *http.Request) {
	var req importAttendeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cmd := attendeeCommands.ImportAttendeesCommand{Rows: make([]attendeeCommands.ImportRow, len(req.Rows))}
	for i, row := range req.Rows {
		cmd.Rows[i] = attendeeCommands.ImportRow{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
		}
	}

	result, err := h.importAttendees.Handle(r.Context(), cmd)
	if err != nil {
		h.logger.Error("failed to import attendees", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to import attendees")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type validateAttendeeRequest struct {
	AttendeeID string `json:"attendee_id"`
}

// ValidateAttendee handles POST /api/v1/attendees/validate
func (h *Handler) ValidateAttendee(w http.ResponseWriter, r *http.Request) {
	var req validateAttendeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.AttendeeID == "" {
		writeError(w, http.StatusBadRequest, "attendee_id is required")
		return
	}

	dto, err := h.validateAttendee.Handle(r.Context(), attendeeQueries.ValidateAttendeeQuery{AttendeeID: req.AttendeeID})
	if err != nil {
		h.writeDomainError(w, err, "failed to validate attendee")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// ListAttendees handles GET /api/v1/attendees
func (h *Handler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.listAttendees.Handle(r.Context(), attendeeQueries.ListAttendeesQuery{})
	if err != nil {
		h.logger.Error("failed to list attendees", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list attendees")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attendees": attendees})
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, nil
	}

	byName := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	weekdays := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		weekdays = append(weekdays, day)
	}
	return weekdays, nil
}

// writeDomainError translates application errors into HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, attendanceCommands.ErrUnknownQRCode),
		errors.Is(err, attendanceCommands.ErrUnknownCheckpointCode),
		errors.Is(err, attendanceCommands.ErrUnknownAttendee),
		errors.Is(err, attendanceCommands.ErrOwnerNotFound),
		errors.Is(err, attendanceQueries.ErrEventNotFound),
		errors.Is(err, eventCommands.ErrEventNotFound),
		errors.Is(err, eventQueries.ErrEventNotFound),
		errors.Is(err, attendeeQueries.ErrAttendeeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, attendanceDomain.ErrDuplicateAttendance):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, eventsDomain.ErrEventInactive),
		errors.Is(err, eventsDomain.ErrDateOutOfRange),
		errors.Is(err, eventsDomain.ErrOccurrenceNotFound),
		errors.Is(err, attendanceDomain.ErrCheckpointMismatch),
		errors.Is(err, attendanceDomain.ErrCheckpointNotApplicable),
		errors.Is(err, attendeesDomain.ErrAttendeeInactive):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, eventsDomain.ErrEmptyName),
		errors.Is(err, eventsDomain.ErrInvalidTimeRange),
		errors.Is(err, eventsDomain.ErrInvalidDateRange),
		errors.Is(err, eventsDomain.ErrEndDateRequired),
		errors.Is(err, eventsDomain.ErrEndDateNotAllowed),
		errors.Is(err, eventsDomain.ErrRecurrenceRequired),
		errors.Is(err, eventsDomain.ErrInvalidFrequency),
		errors.Is(err, attendeesDomain.ErrEmptyName),
		errors.Is(err, attendanceDomain.ErrEmptyCheckpointName),
		errors.Is(err, attendanceDomain.ErrInvalidOrder),
		errors.Is(err, attendanceDomain.ErrInvalidOwner),
		errors.Is(err, attendanceDomain.ErrSpecificDateRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, "error", err)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
