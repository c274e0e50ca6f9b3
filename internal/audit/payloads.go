package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Payload is the typed metadata of one audit event type.
type Payload interface {
	EventType() enums.AuditEventType
}

type EmailSent struct {
	PartnerName   string `json:"partnerName" validate:"required"`
	PartnerEmail  string `json:"partnerEmail" validate:"required,email"`
	InventoryCode string `json:"inventoryCode" validate:"required"`
	ClientName    string `json:"clientName" validate:"required"`
}

func (EmailSent) EventType() enums.AuditEventType { return enums.AuditEventEmailSent }

type ProposalGenerated struct {
	ClientName string  `json:"clientName" validate:"required"`
	ItemCount  int     `json:"itemCount" validate:"gte=0"`
	TotalBruto float64 `json:"totalBruto" validate:"gte=0"`
	PDFURL     *string `json:"pdfUrl,omitempty"`
}

func (ProposalGenerated) EventType() enums.AuditEventType { return enums.AuditEventProposalGenerated }

// ProposalStaged describes a draft written to a staging slot.
type ProposalStaged struct {
	ProposalID uuid.UUID `json:"proposalId" validate:"required"`
	ClientName string    `json:"clientName" validate:"required"`
	ItemCount  int       `json:"itemCount" validate:"gte=0"`
	TotalNeto  float64   `json:"totalNeto"`
	TotalBruto float64   `json:"totalBruto"`
	HasMockups bool      `json:"hasMockups"`
}

type ProposalPendingPDF struct {
	ProposalStaged
}

func (ProposalPendingPDF) EventType() enums.AuditEventType { return enums.AuditEventProposalPendingPDF }

type ProposalRichPending struct {
	ProposalStaged
}

func (ProposalRichPending) EventType() enums.AuditEventType {
	return enums.AuditEventProposalRichPending
}

type ProposalPDFGenerated struct {
	ProposalID uuid.UUID `json:"proposalId" validate:"required"`
	PDFURL     string    `json:"pdfUrl" validate:"required"`
}

func (ProposalPDFGenerated) EventType() enums.AuditEventType {
	return enums.AuditEventProposalPDFGenerated
}

// Availability change kinds.
const (
	ChangeStatus  = "status"
	ChangeBlock   = "block"
	ChangeUnblock = "unblock"
)

type AvailabilityChanged struct {
	InventoryID   uuid.UUID `json:"inventoryId" validate:"required"`
	InventoryCode string    `json:"inventoryCode" validate:"required"`
	Change        string    `json:"change" validate:"required,oneof=status block unblock"`
	Status        string    `json:"status,omitempty"`
	Dates         []string  `json:"dates,omitempty"`
}

func (AvailabilityChanged) EventType() enums.AuditEventType {
	return enums.AuditEventAvailabilityChanged
}

type CampaignDates struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

type ThirdPartyRequest struct {
	PartnerName    string        `json:"partnerName" validate:"required"`
	InventoryCodes []string      `json:"inventoryCodes" validate:"required,min=1,dive,required"`
	ClientName     string        `json:"clientName" validate:"required"`
	CampaignDates  CampaignDates `json:"campaignDates"`
}

func (ThirdPartyRequest) EventType() enums.AuditEventType { return enums.AuditEventThirdPartyRequest }

type PriceCalculated struct {
	InventoryCode string  `json:"inventoryCode" validate:"required"`
	CampaignDays  int     `json:"campaignDays" validate:"gte=0"`
	TotalNeto     float64 `json:"totalNeto"`
	TotalBruto    float64 `json:"totalBruto"`
}

func (PriceCalculated) EventType() enums.AuditEventType { return enums.AuditEventPriceCalculated }

type PDFGenerated struct {
	ProposalID *uuid.UUID `json:"proposalId,omitempty"`
	ClientName string     `json:"clientName" validate:"required"`
	TotalPages int        `json:"totalPages" validate:"gte=1"`
}

func (PDFGenerated) EventType() enums.AuditEventType { return enums.AuditEventPDFGenerated }

func newPayload(eventType enums.AuditEventType) (Payload, error) {
	switch eventType {
	case enums.AuditEventEmailSent:
		return &EmailSent{}, nil
	case enums.AuditEventProposalGenerated:
		return &ProposalGenerated{}, nil
	case enums.AuditEventProposalPendingPDF:
		return &ProposalPendingPDF{}, nil
	case enums.AuditEventProposalRichPending:
		return &ProposalRichPending{}, nil
	case enums.AuditEventProposalPDFGenerated:
		return &ProposalPDFGenerated{}, nil
	case enums.AuditEventAvailabilityChanged:
		return &AvailabilityChanged{}, nil
	case enums.AuditEventThirdPartyRequest:
		return &ThirdPartyRequest{}, nil
	case enums.AuditEventPriceCalculated:
		return &PriceCalculated{}, nil
	case enums.AuditEventPDFGenerated:
		return &PDFGenerated{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", eventType)
}

// DecodeMetadata parses raw metadata into the payload of eventType. Unknown
// fields and trailing data are rejected.
func DecodeMetadata(eventType enums.AuditEventType, raw json.RawMessage) (Payload, error) {
	payload, err := newPayload(eventType)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(payload); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", eventType, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("decode %s metadata: trailing data", eventType)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("invalid %s metadata: %w", eventType, err)
	}
	return payload, nil
}
