package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType discriminates the kind of AI agent a catalog entry configures.
// The type of an entry is immutable after creation.
type ServiceType string

const (
	ServiceFAQBot      ServiceType = "faq-bot"
	ServiceOrderBot    ServiceType = "order-bot"
	ServiceCustomAgent ServiceType = "custom-agent"
)

// ServiceStatus is the lifecycle state of a catalog entry.
// Legal transitions: pending->active (explicit approval), active<->paused.
type ServiceStatus string

const (
	StatusPending ServiceStatus = "pending"
	StatusActive  ServiceStatus = "active"
	StatusPaused  ServiceStatus = "paused"
)

// PaymentMethod is a customer payment option accepted by an order bot.
type PaymentMethod string

const (
	PayBankTransfer   PaymentMethod = "bank-transfer"
	PayCashOnDelivery PaymentMethod = "cash-on-delivery"
	PayEWallet        PaymentMethod = "e-wallet"
)

// FAQItem is a single question/answer pair in an FAQ bot's knowledge base.
type FAQItem struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// FAQBotConfig is the configuration payload for a WhatsApp FAQ agent.
type FAQBotConfig struct {
	BusinessName     string    `json:"businessName" validate:"required"`
	WhatsappNumber   string    `json:"whatsappNumber" validate:"required,e164"`
	KnowledgeBaseURL string    `json:"knowledgeBaseURL,omitempty" validate:"omitempty,url"`
	FAQItems         []FAQItem `json:"faqItems" validate:"required,min=1,dive"`
}

// OrderBotConfig is the configuration payload for a WhatsApp order agent.
type OrderBotConfig struct {
	BusinessName             string          `json:"businessName" validate:"required"`
	WhatsappNumber           string          `json:"whatsappNumber" validate:"required,e164"`
	ProductCatalogURL        string          `json:"productCatalogURL" validate:"required,url"`
	PaymentMethods           []PaymentMethod `json:"paymentMethods" validate:"required,min=1,dive,oneof=bank-transfer cash-on-delivery e-wallet"`
	PaymentVerificationRules string          `json:"paymentVerificationRules" validate:"required"`
	OrderTrackingNotes       string          `json:"orderTrackingNotes,omitempty"`
}

// CustomAgentConfig is the configuration payload for a bespoke AI agent.
// Creation schedules a consultation meeting as a best-effort side effect.
type CustomAgentConfig struct {
	BusinessName   string     `json:"businessName" validate:"required"`
	Platform       string     `json:"platform" validate:"required,oneof=whatsapp website-chat email sms other"`
	Requirements   string     `json:"requirements" validate:"required"`
	Tone           string     `json:"tone" validate:"required,oneof=professional friendly casual formal"`
	ContactEmail   string     `json:"contactEmail" validate:"required,email"`
	ConsultationAt *time.Time `json:"consultationAt" validate:"required"`
	MeetingLink    string     `json:"meetingLink,omitempty"`
}

// ServiceCatalogEntry is one purchased, configured AI agent instance owned by
// exactly one user. Exactly one of the config pointers is non-nil, matching Type.
type ServiceCatalogEntry struct {
	EntryID     string          `json:"entryID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`  // Owner; checked on every read/write
	Type        ServiceType     `json:"type"`
	Status      ServiceStatus   `json:"status"`
	DisplayName string          `json:"displayName"`
	Price       decimal.Decimal `json:"price"` // Amount debited from the wallet at purchase

	FAQBot      *FAQBotConfig      `json:"faqBot,omitempty"`
	OrderBot    *OrderBotConfig    `json:"orderBot,omitempty"`
	CustomAgent *CustomAgentConfig `json:"customAgent,omitempty"`

	AuditFields
}

// DefaultStatus returns the lifecycle status a new entry of type t starts in.
// Custom agents wait for an operator consultation before going live.
func DefaultStatus(t ServiceType) ServiceStatus {
	if t == ServiceCustomAgent {
		return StatusPending
	}
	return StatusActive
}

// Price returns the one-time purchase price for a service type in USD.
func Price(t ServiceType) decimal.Decimal {
	switch t {
	case ServiceFAQBot:
		return decimal.NewFromInt(90)
	case ServiceOrderBot:
		return decimal.NewFromInt(125)
	case ServiceCustomAgent:
		return decimal.NewFromInt(199)
	}
	return decimal.Zero
}

// DisplayName returns the human-readable product name for a service type.
func (t ServiceType) DisplayName() string {
	switch t {
	case ServiceFAQBot:
		return "WhatsApp FAQ AI Agent"
	case ServiceOrderBot:
		return "WhatsApp Order AI Agent"
	case ServiceCustomAgent:
		return "Custom AI Agent"
	}
	return "AI Service"
}

// IsValid reports whether t is a known service type.
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceFAQBot, ServiceOrderBot, ServiceCustomAgent:
		return true
	}
	return false
}
