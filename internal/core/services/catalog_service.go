package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/core/domain"
	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// catalogServiceImpl implements the CatalogSvcFacade interface
type catalogServiceImpl struct {
	BaseService
	serviceRepo portsrepo.ServiceRepositoryFacade
	wallet      portssvc.WalletWriterSvc
	scheduler   portssvc.ConsultationSchedulerSvc
	validate    *validator.Validate
}

// CatalogOption is a functional option for configuring the catalog service
type CatalogOption func(*catalogServiceImpl)

// WithConsultationScheduler adds the consultation scheduler dependency used
// for custom-agent entries.
func WithConsultationScheduler(scheduler portssvc.ConsultationSchedulerSvc) CatalogOption {
	return func(s *catalogServiceImpl) {
		s.scheduler = scheduler
	}
}

// NewCatalogService creates a new catalog service with the provided options.
func NewCatalogService(serviceRepo portsrepo.ServiceRepositoryFacade, wallet portssvc.WalletWriterSvc, options ...CatalogOption) portssvc.CatalogSvcFacade {
	svc := &catalogServiceImpl{
		serviceRepo: serviceRepo,
		wallet:      wallet,
		validate:    validator.New(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure catalogServiceImpl implements the CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogServiceImpl)(nil)

// validateConfig checks that exactly one config block is present, that it
// matches the declared type, and that it passes its schema validation.
func (s *catalogServiceImpl) validateConfig(t domain.ServiceType, faq *domain.FAQBotConfig, order *domain.OrderBotConfig, custom *domain.CustomAgentConfig) error {
	present := 0
	for _, ok := range []bool{faq != nil, order != nil, custom != nil} {
		if ok {
			present++
		}
	}
	if present != 1 {
		return fmt.Errorf("exactly one config block must be provided: %w", apperrors.ErrValidation)
	}

	var target any
	switch t {
	case domain.ServiceFAQBot:
		target = faq
	case domain.ServiceOrderBot:
		target = order
	case domain.ServiceCustomAgent:
		target = custom
	default:
		return fmt.Errorf("unknown service type %q: %w", t, apperrors.ErrValidation)
	}
	switch v := target.(type) {
	case *domain.FAQBotConfig:
		if v == nil {
			return fmt.Errorf("config block does not match service type %q: %w", t, apperrors.ErrValidation)
		}
	case *domain.OrderBotConfig:
		if v == nil {
			return fmt.Errorf("config block does not match service type %q: %w", t, apperrors.ErrValidation)
		}
	case *domain.CustomAgentConfig:
		if v == nil {
			return fmt.Errorf("config block does not match service type %q: %w", t, apperrors.ErrValidation)
		}
	}
	if err := s.validate.Struct(target); err != nil {
		return fmt.Errorf("invalid %s config: %w: %w", t, apperrors.ErrValidation, err)
	}
	return nil
}

func (s *catalogServiceImpl) CreateService(ctx context.Context, ownerID string, req dto.CreateServiceRequest) (*domain.ServiceCatalogEntry, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("unknown service type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if err := s.validateConfig(req.Type, req.FAQBot, req.OrderBot, req.CustomAgent); err != nil {
		return nil, err
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Type.DisplayName()
	}

	now := time.Now()
	entry := domain.ServiceCatalogEntry{
		EntryID:     uuid.NewString(),
		UserID:      ownerID,
		Type:        req.Type,
		Status:      domain.DefaultStatus(req.Type),
		DisplayName: displayName,
		Price:       domain.Price(req.Type),
		FAQBot:      req.FAQBot,
		OrderBot:    req.OrderBot,
		CustomAgent: req.CustomAgent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	// Charge the wallet before the entry exists: an entry must never be
	// visible without its purchase debit on the ledger.
	if _, err := s.wallet.Debit(ctx, ownerID, entry.Price, "Purchase: "+displayName); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save catalog entry after debit, refunding",
			slog.String("entry_id", entry.EntryID),
			slog.String("user_id", ownerID))
		if _, refundErr := s.wallet.Credit(ctx, ownerID, entry.Price, "Refund: "+displayName, ""); refundErr != nil {
			s.LogError(ctx, refundErr, "Failed to refund purchase debit",
				slog.String("entry_id", entry.EntryID),
				slog.String("user_id", ownerID))
		}
		return nil, fmt.Errorf("failed to save catalog entry: %w", err)
	}

	s.LogInfo(ctx, "Catalog entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("user_id", ownerID),
		slog.String("type", string(entry.Type)))

	if entry.Type == domain.ServiceCustomAgent && s.scheduler != nil {
		// Best-effort: the purchase stands even if scheduling or email fails.
		meetingLink := s.scheduler.ScheduleConsultation(ctx, &entry)
		entry.CustomAgent.MeetingLink = meetingLink
		if err := s.serviceRepo.UpdateEntry(ctx, entry); err != nil {
			s.LogWarn(ctx, "Failed to persist consultation meeting link",
				slog.String("entry_id", entry.EntryID),
				slog.String("error", err.Error()))
		}
	}

	return &entry, nil
}

func (s *catalogServiceImpl) GetService(ctx context.Context, entryID string, requesterID string) (*domain.ServiceCatalogEntry, error) {
	entry, err := s.serviceRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != requesterID {
		return nil, apperrors.ErrForbidden
	}
	return entry, nil
}

func (s *catalogServiceImpl) ListByOwner(ctx context.Context, ownerID string) ([]domain.ServiceCatalogEntry, error) {
	return s.serviceRepo.ListEntriesByOwner(ctx, ownerID)
}

func (s *catalogServiceImpl) UpdateService(ctx context.Context, entryID string, requesterID string, req dto.UpdateServiceRequest) (*domain.ServiceCatalogEntry, error) {
	entry, err := s.GetService(ctx, entryID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil && *req.Type != entry.Type {
		return nil, fmt.Errorf("service type cannot change after creation: %w", apperrors.ErrImmutableField)
	}

	if req.DisplayName != nil {
		entry.DisplayName = *req.DisplayName
	}

	// A config block in the request replaces the stored one wholesale; it
	// must belong to the entry's own type.
	if req.FAQBot != nil || req.OrderBot != nil || req.CustomAgent != nil {
		if err := s.validateConfig(entry.Type, req.FAQBot, req.OrderBot, req.CustomAgent); err != nil {
			return nil, err
		}
		switch entry.Type {
		case domain.ServiceFAQBot:
			entry.FAQBot = req.FAQBot
		case domain.ServiceOrderBot:
			entry.OrderBot = req.OrderBot
		case domain.ServiceCustomAgent:
			// The meeting link is operator-managed, keep it across edits.
			link := ""
			if entry.CustomAgent != nil {
				link = entry.CustomAgent.MeetingLink
			}
			entry.CustomAgent = req.CustomAgent
			if entry.CustomAgent.MeetingLink == "" {
				entry.CustomAgent.MeetingLink = link
			}
		}
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = requesterID

	if err := s.serviceRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update catalog entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *catalogServiceImpl) ToggleStatus(ctx context.Context, entryID string, requesterID string) (*domain.ServiceCatalogEntry, error) {
	entry, err := s.GetService(ctx, entryID, requesterID)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case domain.StatusActive:
		entry.Status = domain.StatusPaused
	case domain.StatusPaused:
		entry.Status = domain.StatusActive
	default:
		return nil, fmt.Errorf("entry is %s and cannot be toggled: %w", entry.Status, apperrors.ErrInvalidTransition)
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = requesterID

	if err := s.serviceRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to toggle catalog entry status", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Catalog entry status toggled",
		slog.String("entry_id", entryID),
		slog.String("status", string(entry.Status)))
	return entry, nil
}

func (s *catalogServiceImpl) DeleteService(ctx context.Context, entryID string, requesterID string) error {
	if _, err := s.GetService(ctx, entryID, requesterID); err != nil {
		return err
	}
	if err := s.serviceRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete catalog entry", slog.String("entry_id", entryID))
		return err
	}
	s.LogInfo(ctx, "Catalog entry deleted", slog.String("entry_id", entryID))
	return nil
}
