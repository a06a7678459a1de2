package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/synchroai/synchro_backend/internal/core/domain"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/core/services"
)

// MockCalendarClient is a mock type for the CalendarClient interface
type MockCalendarClient struct {
	mock.Mock
}

func (m *MockCalendarClient) CreateEvent(ctx context.Context, summary, description string, start, end time.Time, attendees []string) (*portssvc.CalendarEvent, error) {
	args := m.Called(ctx, summary, description, start, end, attendees)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CalendarEvent), args.Error(1)
}

// MockMailSender is a mock type for the MailSender interface
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendMail(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// --- Test Suite Setup ---

const testOperatorEmail = "ops@synchro.ai"

type ConsultationSchedulerTestSuite struct {
	suite.Suite
	mockCalendar *MockCalendarClient
	mockMailer   *MockMailSender
	scheduler    portssvc.ConsultationSchedulerSvc
}

func (suite *ConsultationSchedulerTestSuite) SetupTest() {
	suite.mockCalendar = new(MockCalendarClient)
	suite.mockMailer = new(MockMailSender)
	suite.scheduler = services.NewConsultationScheduler(suite.mockCalendar, suite.mockMailer, testOperatorEmail)
}

func (suite *ConsultationSchedulerTestSuite) customAgentEntry(at *time.Time) *domain.ServiceCatalogEntry {
	return &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		UserID:  uuid.NewString(),
		Type:    domain.ServiceCustomAgent,
		CustomAgent: &domain.CustomAgentConfig{
			BusinessName:   "Kopi Kenangan",
			Platform:       "whatsapp",
			Requirements:   "Handle bulk orders",
			ContactEmail:   "owner@kopi.example",
			ConsultationAt: at,
		},
	}
}

// --- Test Cases ---

func (suite *ConsultationSchedulerTestSuite) TestSchedule_UsesCalendarLink() {
	ctx := context.Background()
	at := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)
	entry := suite.customAgentEntry(&at)

	suite.mockCalendar.On("CreateEvent", ctx,
		"SynchroAI Consultation: Kopi Kenangan",
		mock.AnythingOfType("string"),
		at, at.Add(time.Hour),
		[]string{testOperatorEmail, "owner@kopi.example"},
	).Return(&portssvc.CalendarEvent{EventID: "evt_1", MeetingLink: "https://meet.google.com/xyz-real-link"}, nil).Once()
	suite.mockMailer.On("SendMail", ctx, testOperatorEmail, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockMailer.On("SendMail", ctx, "owner@kopi.example", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	link := suite.scheduler.ScheduleConsultation(ctx, entry)

	suite.Equal("https://meet.google.com/xyz-real-link", link)
	suite.mockCalendar.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *ConsultationSchedulerTestSuite) TestSchedule_CalendarFailureFallsBackAndStillMails() {
	ctx := context.Background()
	at := time.Now().Add(48 * time.Hour)
	entry := suite.customAgentEntry(&at)

	suite.mockCalendar.On("CreateEvent", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("calendar API unavailable")).Once()
	suite.mockMailer.On("SendMail", ctx, testOperatorEmail, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockMailer.On("SendMail", ctx, "owner@kopi.example", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	link := suite.scheduler.ScheduleConsultation(ctx, entry)

	suite.Equal("https://meet.google.com/abc-defg-hij", link)
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *ConsultationSchedulerTestSuite) TestSchedule_NoConsultationTimeSkipsCalendar() {
	ctx := context.Background()
	entry := suite.customAgentEntry(nil)

	suite.mockMailer.On("SendMail", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	link := suite.scheduler.ScheduleConsultation(ctx, entry)

	suite.Equal("https://meet.google.com/abc-defg-hij", link)
	suite.mockCalendar.AssertNotCalled(suite.T(), "CreateEvent")
}

func (suite *ConsultationSchedulerTestSuite) TestSchedule_OperatorMailFailureDoesNotStopRequesterMail() {
	ctx := context.Background()
	entry := suite.customAgentEntry(nil)

	suite.mockMailer.On("SendMail", ctx, testOperatorEmail, mock.Anything, mock.Anything).
		Return(errors.New("smtp: connection refused")).Once()
	suite.mockMailer.On("SendMail", ctx, "owner@kopi.example", mock.Anything, mock.Anything).Return(nil).Once()

	link := suite.scheduler.ScheduleConsultation(ctx, entry)

	suite.Equal("https://meet.google.com/abc-defg-hij", link)
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *ConsultationSchedulerTestSuite) TestSchedule_NonCustomAgentEntryIsIgnored() {
	ctx := context.Background()
	entry := &domain.ServiceCatalogEntry{
		EntryID: uuid.NewString(),
		Type:    domain.ServiceFAQBot,
	}

	link := suite.scheduler.ScheduleConsultation(ctx, entry)

	suite.Empty(link)
	suite.mockCalendar.AssertNotCalled(suite.T(), "CreateEvent")
	suite.mockMailer.AssertNotCalled(suite.T(), "SendMail")
}

func TestConsultationSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(ConsultationSchedulerTestSuite))
}
