package audit

import (
	"encoding/json"
	"testing"

	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMetadataMatchesEventType(t *testing.T) {
	payload, err := DecodeMetadata(enums.AuditEventEmailSent, json.RawMessage(`{
		"partnerName":"MediaMax","partnerEmail":"comercial@mediamax.com.ar",
		"inventoryCode":"GFG011","clientName":"Coca-Cola"}`))
	require.NoError(t, err)

	sent, ok := payload.(*EmailSent)
	require.True(t, ok)
	assert.Equal(t, "MediaMax", sent.PartnerName)
	assert.Equal(t, enums.AuditEventEmailSent, sent.EventType())
}

func TestDecodeMetadataRejectsUnknownFields(t *testing.T) {
	_, err := DecodeMetadata(enums.AuditEventPDFGenerated, json.RawMessage(`{"clientName":"ACME","totalPages":3,"extra":true}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestDecodeMetadataRejectsPayloadOfAnotherType(t *testing.T) {
	_, err := DecodeMetadata(enums.AuditEventThirdPartyRequest, json.RawMessage(`{
		"partnerName":"MediaMax","partnerEmail":"comercial@mediamax.com.ar",
		"inventoryCode":"GFG011","clientName":"Coca-Cola"}`))
	assert.Error(t, err)
}

func TestDecodeMetadataValidatesRequiredFields(t *testing.T) {
	_, err := DecodeMetadata(enums.AuditEventThirdPartyRequest, json.RawMessage(`{
		"partnerName":"MediaMax","inventoryCodes":[],"clientName":"ACME",
		"campaignDates":{"start":"2026-03-01","end":"2026-03-31"}}`))
	assert.Error(t, err)

	_, err = DecodeMetadata(enums.AuditEventAvailabilityChanged, json.RawMessage(`{
		"inventoryId":"6f1c2d8e-6a3b-4f8e-9d7a-2b1c3d4e5f60","inventoryCode":"GFG051","change":"paint"}`))
	assert.Error(t, err)
}

func TestDecodeMetadataEmbeddedStagedFields(t *testing.T) {
	payload, err := DecodeMetadata(enums.AuditEventProposalRichPending, json.RawMessage(`{
		"proposalId":"6f1c2d8e-6a3b-4f8e-9d7a-2b1c3d4e5f60","clientName":"ACME",
		"itemCount":2,"totalNeto":100,"totalBruto":121,"hasMockups":true}`))
	require.NoError(t, err)
	rich, ok := payload.(*ProposalRichPending)
	require.True(t, ok)
	assert.True(t, rich.HasMockups)
	assert.Equal(t, 2, rich.ItemCount)
}

func TestDecodeMetadataTrailingData(t *testing.T) {
	_, err := DecodeMetadata(enums.AuditEventPDFGenerated, json.RawMessage(`{"clientName":"ACME","totalPages":3} {}`))
	assert.Error(t, err)
}

func TestEveryEventTypeHasPayload(t *testing.T) {
	for _, eventType := range []enums.AuditEventType{
		enums.AuditEventEmailSent,
		enums.AuditEventProposalGenerated,
		enums.AuditEventProposalPendingPDF,
		enums.AuditEventProposalRichPending,
		enums.AuditEventProposalPDFGenerated,
		enums.AuditEventAvailabilityChanged,
		enums.AuditEventThirdPartyRequest,
		enums.AuditEventPriceCalculated,
		enums.AuditEventPDFGenerated,
	} {
		payload, err := newPayload(eventType)
		require.NoError(t, err, eventType)
		assert.Equal(t, eventType, payload.EventType())
	}
	_, err := newPayload("nope")
	assert.Error(t, err)
}
