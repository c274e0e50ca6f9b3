package partners

import (
	"context"
	"testing"

	"github.com/angelmondragon/ooh-agent-backend/internal/inventory"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/dbtest"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       Service
	repo      *Repository
	inventory *inventory.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn := dbtest.Open(t, &models.Partner{}, &models.InventoryItem{})
	repo := NewRepository(conn)
	inv := inventory.NewRepository(conn)
	svc, err := NewService(ServiceParams{Repo: repo, Inventory: inv})
	require.NoError(t, err)
	return fixture{svc: svc, repo: repo, inventory: inv}
}

func strPtr(v string) *string { return &v }

func (f fixture) addItem(t *testing.T, code, owner string) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		Code:              code,
		Type:              enums.SupportTypeEspectacular,
		Owner:             owner,
		Address:           "Panamericana Km 32",
		City:              "Pilar",
		Zone:              string(enums.ZoneGBANorte),
		RentalMonthly:     decimal.NewFromInt(2200000),
		ProductionCost:    decimal.NewFromInt(180000),
		InstallationCost:  decimal.NewFromInt(90000),
		MunicipalTax:      decimal.NewFromInt(40000),
		Currency:          enums.CurrencyARS,
		VisibleDimensions: "12m x 4m",
		Status:            enums.InventoryStatusAvailable,
		BaseImageURL:      "https://example.com/" + code + ".jpg",
	}
	require.NoError(t, f.inventory.Create(context.Background(), item))
	return item
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = NewService(ServiceParams{Repo: &Repository{}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateAndLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, CreateInput{Name: " Vía Pública SA ", Email: "comercial@viapublica.com", Phone: strPtr("+54 11 4000-1000")})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.PartnerID)

	byName, err := f.svc.GetByName(ctx, "Vía Pública SA")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.PartnerID, byName.ID)
	assert.Equal(t, "+54 11 4000-1000", *byName.Phone)
	assert.Nil(t, byName.Notes)

	byID, err := f.svc.GetByID(ctx, created.PartnerID)
	require.NoError(t, err)
	assert.Equal(t, byName, byID)

	missing, err := f.svc.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateRejectsDuplicatesAndBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateInput{Name: "Medios Exteriores", Email: "ventas@mediosext.com"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, CreateInput{Name: "Medios Exteriores", Email: "otro@mediosext.com"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = f.svc.Create(ctx, CreateInput{Name: "Sin Email", Email: "no-es-un-email"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = f.svc.Create(ctx, CreateInput{Name: "   ", Email: "a@b.com"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGetAllSortedByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Publicidad Sarmiento", "Atlas Outdoor", "Medios Exteriores"} {
		_, err := f.svc.Create(ctx, CreateInput{Name: name, Email: "contacto@example.com"})
		require.NoError(t, err)
	}

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Atlas Outdoor", all[0].Name)
	assert.Equal(t, "Publicidad Sarmiento", all[2].Name)
}

func TestUpdatePatchesSetFieldsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, CreateInput{Name: "Atlas Outdoor", Email: "old@atlas.com", Notes: strPtr("Contacto: Juan")})
	require.NoError(t, err)

	res, err := f.svc.Update(ctx, created.PartnerID, UpdateInput{Email: strPtr("new@atlas.com")})
	require.NoError(t, err)
	assert.True(t, res.Success)

	got, err := f.svc.GetByID(ctx, created.PartnerID)
	require.NoError(t, err)
	assert.Equal(t, "new@atlas.com", got.Email)
	assert.Equal(t, "Atlas Outdoor", got.Name)
	assert.Equal(t, "Contacto: Juan", *got.Notes)

	res, err = f.svc.Update(ctx, created.PartnerID, UpdateInput{})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestUpdateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.svc.Create(ctx, CreateInput{Name: "Atlas Outdoor", Email: "a@atlas.com"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, CreateInput{Name: "Medios Exteriores", Email: "m@mediosext.com"})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, uuid.New(), UpdateInput{Email: strPtr("x@y.com")})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Contains(t, err.Error(), "Partner no encontrado")

	_, err = f.svc.Update(ctx, uuid.New(), UpdateInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.Update(ctx, first.PartnerID, UpdateInput{Name: strPtr("Medios Exteriores")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = f.svc.Update(ctx, first.PartnerID, UpdateInput{Name: strPtr("  ")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, CreateInput{Name: "Atlas Outdoor", Email: "a@atlas.com"})
	require.NoError(t, err)

	res, err := f.svc.Remove(ctx, created.PartnerID)
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = f.svc.Remove(ctx, created.PartnerID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateAllEmails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Atlas Outdoor", "Medios Exteriores"} {
		_, err := f.svc.Create(ctx, CreateInput{Name: name, Email: "orig@example.com"})
		require.NoError(t, err)
	}

	res, err := f.svc.UpdateAllEmails(ctx, "qa@ooh-agent.test")
	require.NoError(t, err)
	assert.Equal(t, EmailsResult{Success: true, PartnersUpdated: 2, NewEmail: "qa@ooh-agent.test"}, res)

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	for _, p := range all {
		assert.Equal(t, "qa@ooh-agent.test", p.Email)
	}

	_, err = f.svc.UpdateAllEmails(ctx, "nope")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGetContactForInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, CreateInput{Name: "Vía Pública SA", Email: "comercial@viapublica.com", Phone: strPtr("+54 11 4000-1000")})
	require.NoError(t, err)

	house := f.addItem(t, "GFG050", enums.GlobalOwner)
	partnered := f.addItem(t, "VSA001", "Vía Pública SA")
	orphan := f.addItem(t, "XYZ900", "Desconocido SRL")

	res, err := f.svc.GetContactForInventory(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ContactLookup{Reason: "Soporte no encontrado"}, res)

	res, err = f.svc.GetContactForInventory(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, ContactLookup{Reason: "Soporte propio, no requiere contacto externo"}, res)

	res, err = f.svc.GetContactForInventory(ctx, orphan.ID)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, "No se encontró contacto para el partner: Desconocido SRL", res.Reason)

	res, err = f.svc.GetContactForInventory(ctx, partnered.ID)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "comercial@viapublica.com", res.Partner.Email)
	assert.Equal(t, "+54 11 4000-1000", *res.Partner.Phone)
	assert.Equal(t, "VSA001", res.InventoryCode)
	assert.Equal(t, "Panamericana Km 32", res.InventoryLocation)
}
