package enums

import "fmt"

// AuditEventType classifies audit log entries.
type AuditEventType string

const (
	AuditEventEmailSent            AuditEventType = "email_sent"
	AuditEventProposalGenerated    AuditEventType = "proposal_generated"
	AuditEventProposalPendingPDF   AuditEventType = "proposal_pending_pdf"
	AuditEventProposalRichPending  AuditEventType = "proposal_rich_pending"
	AuditEventProposalPDFGenerated AuditEventType = "proposal_pdf_generated"
	AuditEventAvailabilityChanged  AuditEventType = "availability_changed"
	AuditEventThirdPartyRequest    AuditEventType = "third_party_request"
	AuditEventPriceCalculated      AuditEventType = "price_calculated"
	AuditEventPDFGenerated         AuditEventType = "pdf_generated"
)

var validAuditEventTypes = []AuditEventType{
	AuditEventEmailSent,
	AuditEventProposalGenerated,
	AuditEventProposalPendingPDF,
	AuditEventProposalRichPending,
	AuditEventProposalPDFGenerated,
	AuditEventAvailabilityChanged,
	AuditEventThirdPartyRequest,
	AuditEventPriceCalculated,
	AuditEventPDFGenerated,
}

// String implements fmt.Stringer.
func (e AuditEventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known AuditEventType.
func (e AuditEventType) IsValid() bool {
	for _, candidate := range validAuditEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseAuditEventType converts raw input into an AuditEventType.
func ParseAuditEventType(value string) (AuditEventType, error) {
	for _, candidate := range validAuditEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit event type %q", value)
}
