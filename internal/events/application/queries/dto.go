package queries

import (
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	"github.com/google/uuid"
)

// EventDTO is the read model for an event.
type EventDTO struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Type         string       `json:"type"`
	Date         string       `json:"date"`
	EndDate      string       `json:"end_date,omitempty"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	Location     string       `json:"location,omitempty"`
	QRCode       string       `json:"qr_code"`
	IsActive     bool         `json:"is_active"`
	DurationDays int          `json:"duration_days"`
	Sessions     []SessionDTO `json:"sessions,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SessionDTO is the read model for one day of a multi-day event.
type SessionDTO struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Number    int       `json:"number"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Location  string    `json:"location,omitempty"`
	QRCode    string    `json:"qr_code"`
	IsActive  bool      `json:"is_active"`
}

func toEventDTO(event *domain.Event, sessions []*domain.EventSession) EventDTO {
	dto := EventDTO{
		ID:           event.ID(),
		Name:         event.Name(),
		Description:  event.Description(),
		Type:         string(event.Type()),
		Date:         event.Date().String(),
		StartTime:    event.StartTime().String(),
		EndTime:      event.EndTime().String(),
		Location:     event.Location(),
		QRCode:       event.QRCode(),
		IsActive:     event.IsActive(),
		DurationDays: event.DurationDays(),
		CreatedAt:    event.CreatedAt(),
	}
	if !event.EndDate().IsZero() {
		dto.EndDate = event.EndDate().String()
	}
	for _, s := range sessions {
		dto.Sessions = append(dto.Sessions, toSessionDTO(s))
	}
	return dto
}

func toSessionDTO(s *domain.EventSession) SessionDTO {
	return SessionDTO{
		ID:        s.ID(),
		Date:      s.SessionDate().String(),
		Number:    s.Number(),
		StartTime: s.StartTime().String(),
		EndTime:   s.EndTime().String(),
		Location:  s.Location(),
		QRCode:    s.QRCode(),
		IsActive:  s.IsActive(),
	}
}
