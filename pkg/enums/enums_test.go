package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInventoryStatus(t *testing.T) {
	status, err := ParseInventoryStatus("pending_third_party")
	require.NoError(t, err)
	assert.Equal(t, InventoryStatusPendingThirdParty, status)

	_, err = ParseInventoryStatus("sold")
	assert.Error(t, err)
}

func TestInventoryStatusDisplay(t *testing.T) {
	assert.Equal(t, "Disponible", InventoryStatusAvailable.Display())
	assert.Equal(t, "Reservado", InventoryStatusReserved.Display())
	assert.Equal(t, "En mantenimiento", InventoryStatusMaintenance.Display())
	assert.Equal(t, "Pendiente confirmación", InventoryStatusPendingThirdParty.Display())

	assert.Equal(t, "Pendiente", InventoryStatusMaintenance.ShortDisplay())
	assert.Equal(t, "Reservado", InventoryStatusReserved.ShortDisplay())
}

func TestSupportTypeAndZone(t *testing.T) {
	assert.True(t, SupportTypeEspectacular.IsValid())
	assert.False(t, SupportType("Refugio").IsValid())

	zone, err := ParseZone("GBA Sur")
	require.NoError(t, err)
	assert.Equal(t, ZoneGBASur, zone)
	_, err = ParseZone("Rosario")
	assert.Error(t, err)
}

func TestAuditEventTypes(t *testing.T) {
	for _, raw := range []string{"email_sent", "proposal_rich_pending", "pdf_generated"} {
		_, err := ParseAuditEventType(raw)
		assert.NoError(t, err, raw)
	}
	_, err := ParseAuditEventType("login")
	assert.Error(t, err)
}

func TestProposalStatusAndDraftKind(t *testing.T) {
	status, err := ParseProposalStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, ProposalStatusApproved, status)
	assert.True(t, DraftKindRich.IsValid())
	assert.False(t, DraftKind("archived").IsValid())
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, CurrencyUSD, c)
	assert.Equal(t, "US$", c.Symbol())

	c, err = ParseCurrency("")
	require.NoError(t, err)
	assert.Equal(t, CurrencyARS, c)
	assert.Equal(t, "$", Currency("").Symbol())

	_, err = ParseCurrency("EUR")
	assert.Error(t, err)
}
