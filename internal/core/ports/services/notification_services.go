package services

import (
	"context"
	"time"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// CalendarEvent is the result of creating an external calendar event.
type CalendarEvent struct {
	EventID     string
	MeetingLink string
}

// CalendarClient abstracts the external calendar provider.
type CalendarClient interface {
	// CreateEvent creates a calendar event with a conference link attached.
	CreateEvent(ctx context.Context, summary, description string, start, end time.Time, attendees []string) (*CalendarEvent, error)
}

// MailSender abstracts outbound email delivery.
type MailSender interface {
	SendMail(ctx context.Context, to, subject, htmlBody string) error
}

// ConsultationSchedulerSvc creates the consultation meeting and confirmation
// emails for a new custom-agent entry. Every external call is best-effort:
// failures are logged and never propagated, so catalog-entry creation cannot
// fail or roll back because of this adapter.
type ConsultationSchedulerSvc interface {
	// ScheduleConsultation returns the meeting link that was (or would have
	// been) attached to the entry; on calendar failure it is a placeholder.
	ScheduleConsultation(ctx context.Context, entry *domain.ServiceCatalogEntry) string
}
