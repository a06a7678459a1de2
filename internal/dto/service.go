package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/synchroai/synchro_backend/internal/core/domain"
)

// CreateServiceRequest defines the data needed to purchase and configure a
// catalog entry. Exactly one config block must be present, matching Type;
// the service layer validates the variant against its schema.
type CreateServiceRequest struct {
	Type        domain.ServiceType        `json:"type" binding:"required"`
	DisplayName string                    `json:"displayName"`
	FAQBot      *domain.FAQBotConfig      `json:"faqBot,omitempty"`
	OrderBot    *domain.OrderBotConfig    `json:"orderBot,omitempty"`
	CustomAgent *domain.CustomAgentConfig `json:"customAgent,omitempty"`
}

// UpdateServiceRequest defines the data allowed when editing a catalog entry.
// The entry type is immutable; sending a different type fails the update.
type UpdateServiceRequest struct {
	Type        *domain.ServiceType       `json:"type,omitempty"` // Rejected if present and different
	DisplayName *string                   `json:"displayName,omitempty"`
	FAQBot      *domain.FAQBotConfig      `json:"faqBot,omitempty"`
	OrderBot    *domain.OrderBotConfig    `json:"orderBot,omitempty"`
	CustomAgent *domain.CustomAgentConfig `json:"customAgent,omitempty"`
}

// ServiceResponse defines the data returned for a catalog entry.
type ServiceResponse struct {
	EntryID     string                    `json:"entryID"`
	Type        domain.ServiceType        `json:"type"`
	Status      domain.ServiceStatus      `json:"status"`
	DisplayName string                    `json:"displayName"`
	Price       decimal.Decimal           `json:"price"`
	FAQBot      *domain.FAQBotConfig      `json:"faqBot,omitempty"`
	OrderBot    *domain.OrderBotConfig    `json:"orderBot,omitempty"`
	CustomAgent *domain.CustomAgentConfig `json:"customAgent,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// ListServicesResponse wraps the owner's catalog entries, newest first.
type ListServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ToServiceResponse converts a domain.ServiceCatalogEntry to its DTO.
func ToServiceResponse(e *domain.ServiceCatalogEntry) ServiceResponse {
	return ServiceResponse{
		EntryID:     e.EntryID,
		Type:        e.Type,
		Status:      e.Status,
		DisplayName: e.DisplayName,
		Price:       e.Price,
		FAQBot:      e.FAQBot,
		OrderBot:    e.OrderBot,
		CustomAgent: e.CustomAgent,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.LastUpdatedAt,
	}
}

// ToListServicesResponse converts a slice of entries to ListServicesResponse.
func ToListServicesResponse(entries []domain.ServiceCatalogEntry) ListServicesResponse {
	res := make([]ServiceResponse, len(entries))
	for i := range entries {
		res[i] = ToServiceResponse(&entries[i])
	}
	return ListServicesResponse{Services: res}
}
