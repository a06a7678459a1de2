// Package notification holds the outbound calendar and email adapters used
// by the custom-agent consultation flow.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
)

// calendarTimeout bounds the event-insert round trip to the calendar API.
const calendarTimeout = 15 * time.Second

// GoogleCalendarClient creates consultation events with a Meet link attached.
type GoogleCalendarClient struct {
	credentialsJSON []byte
	calendarID      string
}

// NewGoogleCalendarClient builds a client from service-account credentials.
// The calendar service itself is created per call so a bad credential shows
// up as a create-event error rather than a startup failure.
func NewGoogleCalendarClient(credentialsJSON []byte, calendarID string) *GoogleCalendarClient {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendarClient{
		credentialsJSON: credentialsJSON,
		calendarID:      calendarID,
	}
}

var _ portssvc.CalendarClient = (*GoogleCalendarClient)(nil)

func (c *GoogleCalendarClient) CreateEvent(ctx context.Context, summary, description string, start, end time.Time, attendees []string) (*portssvc.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, calendarTimeout)
	defer cancel()

	svc, err := calendar.NewService(ctx, option.WithCredentialsJSON(c.credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	event := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	for _, a := range attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: a})
	}

	created, err := svc.Events.Insert(c.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar event: %w", err)
	}

	return &portssvc.CalendarEvent{
		EventID:     created.Id,
		MeetingLink: created.HangoutLink,
	}, nil
}
