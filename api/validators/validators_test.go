package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteBody struct {
	InventoryID  string `json:"inventoryId" validate:"required"`
	CampaignDays int    `json:"campaignDays" validate:"gte=1,lte=365"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"inventoryId":"x","campaignDays":30,"extra":true}`))
	var body quoteBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, 30, body.CampaignDays)
}

func TestDecodeJSONBodyReportsFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"campaignDays":0}`))
	var body quoteBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]string)
	assert.Equal(t, "es obligatorio", details["inventoryId"])
	assert.Equal(t, "debe ser mayor o igual a 1", details["campaignDays"])
}

func TestDecodeJSONBodyRejectsMalformedAndEmpty(t *testing.T) {
	var body quoteBody
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)), &body)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``)), &body)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=20&bad=x&big=900", nil)

	v, err := ParseQueryInt(req, "limit", 50, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	v, err = ParseQueryInt(req, "missing", 50, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, v)

	_, err = ParseQueryInt(req, "bad", 50, 1, 500)
	assert.Error(t, err)
	_, err = ParseQueryInt(req, "big", 50, 1, 500)
	assert.Error(t, err)
}

func TestRequireQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?days=4000&zero=0&neg=-1&bad=x", nil)

	v, err := RequireQueryInt(req, "days", 0)
	require.NoError(t, err)
	assert.Equal(t, 4000, v)

	v, err = RequireQueryInt(req, "zero", 0)
	require.NoError(t, err)
	assert.Zero(t, v)

	for _, key := range []string{"missing", "neg", "bad"} {
		_, err = RequireQueryInt(req, key, 0)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), key)
	}
}

func TestParseQueryFloatAndBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?maxPrice=1500000.5&onlyAvailable=true&flag=maybe", nil)

	f, err := ParseQueryFloat(req, "maxPrice")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, 1500000.5, *f)

	f, err = ParseQueryFloat(req, "absent")
	require.NoError(t, err)
	assert.Nil(t, f)

	b, err := ParseQueryBool(req, "onlyAvailable")
	require.NoError(t, err)
	assert.True(t, *b)

	_, err = ParseQueryBool(req, "flag")
	assert.Error(t, err)
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	rc := chi.NewRouteContext()
	rc.URLParams.Add("id", id.String())
	rc.URLParams.Add("bad", "nope")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	got, err := ParseUUIDParam(req, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseUUIDParam(req, "bad")
	assert.Error(t, err)
	_, err = ParseUUIDParam(req, "missing")
	assert.Error(t, err)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Palermo", SanitizeString("  Palermo  ", 0))
	assert.Equal(t, "Pal", SanitizeString("Palermo", 3))
	assert.Equal(t, "GBA Sur", SanitizeString(" GBA \t  Sur ", 0))
	assert.Equal(t, "Ñuñ", SanitizeString("Ñuñoa", 3))
	assert.Equal(t, "GFG050", SanitizeString("GFG\x00050\x1b", 0))
	assert.Equal(t, "Zona", SanitizeString("Zona Norte", 5))
}
