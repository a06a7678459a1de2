package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/synchroai/synchro_backend/internal/core/domain"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
)

// placeholderMeetingLink is handed out when the calendar provider is down so
// the purchase flow never stalls on scheduling.
const placeholderMeetingLink = "https://meet.google.com/abc-defg-hij"

// consultationDuration is the default length of a custom-agent consultation.
const consultationDuration = time.Hour

// consultationSchedulerImpl implements ConsultationSchedulerSvc. Every
// external call here is best-effort: a calendar or SMTP failure is logged and
// swallowed, never returned to the caller.
type consultationSchedulerImpl struct {
	BaseService
	calendar      portssvc.CalendarClient
	mailer        portssvc.MailSender
	operatorEmail string
}

// NewConsultationScheduler creates a new consultation scheduler.
func NewConsultationScheduler(calendar portssvc.CalendarClient, mailer portssvc.MailSender, operatorEmail string) portssvc.ConsultationSchedulerSvc {
	return &consultationSchedulerImpl{
		calendar:      calendar,
		mailer:        mailer,
		operatorEmail: operatorEmail,
	}
}

// Ensure consultationSchedulerImpl implements ConsultationSchedulerSvc
var _ portssvc.ConsultationSchedulerSvc = (*consultationSchedulerImpl)(nil)

func (s *consultationSchedulerImpl) ScheduleConsultation(ctx context.Context, entry *domain.ServiceCatalogEntry) string {
	cfg := entry.CustomAgent
	if cfg == nil {
		return ""
	}

	meetingLink := s.createMeeting(ctx, entry)
	s.sendConfirmations(ctx, entry, meetingLink)
	return meetingLink
}

func (s *consultationSchedulerImpl) createMeeting(ctx context.Context, entry *domain.ServiceCatalogEntry) string {
	cfg := entry.CustomAgent
	if s.calendar == nil || cfg.ConsultationAt == nil {
		return placeholderMeetingLink
	}

	start := *cfg.ConsultationAt
	event, err := s.calendar.CreateEvent(ctx,
		"SynchroAI Consultation: "+cfg.BusinessName,
		fmt.Sprintf("Custom AI agent consultation for %s.\nPlatform: %s\nRequirements: %s",
			cfg.BusinessName, cfg.Platform, cfg.Requirements),
		start,
		start.Add(consultationDuration),
		[]string{s.operatorEmail, cfg.ContactEmail},
	)
	if err != nil {
		s.LogWarn(ctx, "Failed to create consultation calendar event, using placeholder link",
			slog.String("entry_id", entry.EntryID),
			slog.String("error", err.Error()))
		return placeholderMeetingLink
	}
	if event.MeetingLink == "" {
		return placeholderMeetingLink
	}

	s.LogInfo(ctx, "Consultation event created",
		slog.String("entry_id", entry.EntryID),
		slog.String("event_id", event.EventID))
	return event.MeetingLink
}

// sendConfirmations mails both the operator and the requester. Each send is
// independent; one failing does not stop the other.
func (s *consultationSchedulerImpl) sendConfirmations(ctx context.Context, entry *domain.ServiceCatalogEntry, meetingLink string) {
	if s.mailer == nil {
		return
	}
	cfg := entry.CustomAgent

	when := "to be confirmed"
	if cfg.ConsultationAt != nil {
		when = cfg.ConsultationAt.Format(time.RFC1123)
	}

	operatorBody := fmt.Sprintf(
		`<h2>New custom agent request</h2>
<p><b>Business:</b> %s</p>
<p><b>Platform:</b> %s</p>
<p><b>Requirements:</b> %s</p>
<p><b>Consultation:</b> %s</p>
<p><b>Meeting link:</b> <a href="%s">%s</a></p>`,
		cfg.BusinessName, cfg.Platform, cfg.Requirements, when, meetingLink, meetingLink)

	if err := s.mailer.SendMail(ctx, s.operatorEmail, "New custom agent consultation: "+cfg.BusinessName, operatorBody); err != nil {
		s.LogWarn(ctx, "Failed to send operator confirmation email",
			slog.String("entry_id", entry.EntryID),
			slog.String("error", err.Error()))
	}

	requesterBody := fmt.Sprintf(
		`<h2>Your consultation is booked</h2>
<p>Thanks for choosing a custom AI agent for <b>%s</b>.</p>
<p>We will meet on <b>%s</b>.</p>
<p>Join here: <a href="%s">%s</a></p>`,
		cfg.BusinessName, when, meetingLink, meetingLink)

	if err := s.mailer.SendMail(ctx, cfg.ContactEmail, "Your SynchroAI consultation is booked", requesterBody); err != nil {
		s.LogWarn(ctx, "Failed to send requester confirmation email",
			slog.String("entry_id", entry.EntryID),
			slog.String("error", err.Error()))
	}
}
