package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func houseInput() Input {
	return Input{
		InventoryID:      uuid.New(),
		Code:             "GFG050",
		CampaignDays:     30,
		RentalMonthly:    1500000,
		ProductionCost:   280000,
		InstallationCost: 140000,
		MunicipalTax:     85000,
		Currency:         "ARS",
	}
}

func TestCalculateHouseItemFullMonth(t *testing.T) {
	in := houseInput()
	got := DefaultRates().Calculate(in)

	assert.Equal(t, in.InventoryID, got.InventoryID)
	assert.Equal(t, "GFG050", got.Code)
	assert.Equal(t, 1500000.0, got.RentalProportional)
	assert.Equal(t, 85000.0, got.MunicipalTax)
	assert.Equal(t, 2005000.0, got.SubtotalNeto)
	assert.Equal(t, 401000.0, got.AgencyCommission)
	assert.Equal(t, 0.0, got.IntermediaryCommission)
	assert.Equal(t, 2406000.0, got.TotalNeto)
	assert.Equal(t, 505260.0, got.IVA)
	assert.Equal(t, 2911260.0, got.TotalBruto)
	assert.False(t, got.IsThirdParty)
	assert.Equal(t, "ARS", got.Currency)
}

func TestCalculateThirdPartyItemAddsIntermediary(t *testing.T) {
	in := Input{
		Code:             "GFG011",
		CampaignDays:     30,
		RentalMonthly:    950000,
		ProductionCost:   220000,
		InstallationCost: 120000,
		MunicipalTax:     55000,
		Currency:         "ARS",
		IsThirdParty:     true,
	}
	got := DefaultRates().Calculate(in)

	assert.Equal(t, 1345000.0, got.SubtotalNeto)
	assert.Equal(t, 269000.0, got.AgencyCommission)
	assert.Equal(t, 134500.0, got.IntermediaryCommission)
	assert.Equal(t, 1748500.0, got.TotalNeto)
	assert.Equal(t, 367185.0, got.IVA)
	assert.Equal(t, 2115685.0, got.TotalBruto)
	assert.True(t, got.IsThirdParty)
}

func TestCalculateProratesRentalAndTaxOnly(t *testing.T) {
	in := Input{
		Code:             "TEST",
		CampaignDays:     15,
		RentalMonthly:    1000000,
		ProductionCost:   100000,
		InstallationCost: 50000,
		MunicipalTax:     30000,
		Currency:         "ARS",
	}
	got := DefaultRates().Calculate(in)

	assert.Equal(t, 500000.0, got.RentalProportional)
	assert.Equal(t, 15000.0, got.MunicipalTax)
	assert.Equal(t, 100000.0, got.ProductionCost)
	assert.Equal(t, 50000.0, got.InstallationCost)
	assert.Equal(t, 665000.0, got.SubtotalNeto)
	assert.Equal(t, 798000.0, got.TotalNeto)
	assert.Equal(t, 965580.0, got.TotalBruto)
}

func TestCalculateIntermediaryOverride(t *testing.T) {
	rates := DefaultRates()
	on, off := true, false

	house := houseInput()
	house.IncludeIntermediaryCommission = &on
	assert.Equal(t, 200500.0, rates.Calculate(house).IntermediaryCommission)

	third := houseInput()
	third.IsThirdParty = true
	third.IncludeIntermediaryCommission = &off
	got := rates.Calculate(third)
	assert.Equal(t, 0.0, got.IntermediaryCommission)
	assert.True(t, got.IsThirdParty)
}

func TestCalculateEchoesOneTimeCostsUnrounded(t *testing.T) {
	in := houseInput()
	in.ProductionCost = 1234.567
	in.InstallationCost = 0.005
	got := DefaultRates().Calculate(in)
	assert.Equal(t, 1234.567, got.ProductionCost)
	assert.Equal(t, 0.005, got.InstallationCost)
}

func TestCalculateZeroDays(t *testing.T) {
	in := houseInput()
	in.CampaignDays = 0
	got := DefaultRates().Calculate(in)
	assert.Equal(t, 0.0, got.RentalProportional)
	assert.Equal(t, 0.0, got.MunicipalTax)
	assert.Equal(t, 420000.0, got.SubtotalNeto)
}

func TestCalculateUsesInjectedRates(t *testing.T) {
	rates := Rates{AgencyCommission: 0.15, IntermediaryCommission: 0.05, IVA: 0.105, DaysPerMonth: 31}
	in := Input{CampaignDays: 31, RentalMonthly: 310000, IsThirdParty: true}
	got := rates.Calculate(in)

	assert.Equal(t, 310000.0, got.RentalProportional)
	assert.Equal(t, 46500.0, got.AgencyCommission)
	assert.Equal(t, 15500.0, got.IntermediaryCommission)
	assert.Equal(t, 372000.0, got.TotalNeto)
	assert.Equal(t, 39060.0, got.IVA)
}

func TestRentalProportionalIsLinearBeforeRounding(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rates := DefaultRates()
	for i := 0; i < 500; i++ {
		in := Input{
			RentalMonthly: math.Floor(rng.Float64() * 5_000_000),
			CampaignDays:  rng.Intn(365),
		}
		c := rates.compute(in, rates.AgencyCommission, 0)
		require.Equal(t, in.RentalMonthly/30*float64(in.CampaignDays), c.rentalProportional)
	}
}

func TestTotalBrutoIsNetoPlusIVA(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rates := DefaultRates()
	for i := 0; i < 500; i++ {
		in := Input{
			CampaignDays:     rng.Intn(120),
			RentalMonthly:    math.Floor(rng.Float64() * 3_000_000),
			ProductionCost:   math.Floor(rng.Float64() * 500_000),
			InstallationCost: math.Floor(rng.Float64() * 250_000),
			MunicipalTax:     math.Floor(rng.Float64() * 150_000),
			IsThirdParty:     rng.Intn(2) == 0,
		}
		got := rates.Calculate(in)
		require.InDelta(t, got.TotalNeto*1.21, got.TotalBruto, 0.02, "input %+v", in)
		if !in.IsThirdParty {
			require.Zero(t, got.IntermediaryCommission)
		}
	}
}

func TestCalculateWholeUnits(t *testing.T) {
	in := Input{
		CampaignDays:     7,
		RentalMonthly:    420000,
		ProductionCost:   95000,
		InstallationCost: 55000,
		MunicipalTax:     28000,
		IsThirdParty:     true,
	}
	got := DefaultRates().CalculateWholeUnits(in)

	assert.Equal(t, 98000.0, got.RentalProportional)
	assert.Equal(t, 6533.0, got.MunicipalTax)
	assert.Equal(t, 95000.0, got.ProductionCost)
	assert.Equal(t, 254533.0, got.SubtotalNeto)
	assert.Equal(t, 50907.0, got.AgencyCommission)
	assert.Equal(t, 25453.0, got.IntermediaryCommission)
	assert.Equal(t, 330893.0, got.TotalNeto)
	assert.Equal(t, 69488.0, got.IVA)
	assert.Equal(t, 400381.0, got.TotalBruto)
}

func TestTotalsAreUnrounded(t *testing.T) {
	in := houseInput()
	in.CampaignDays = 7
	neto, bruto := DefaultRates().Totals(in)
	got := DefaultRates().Calculate(in)

	assert.Equal(t, got.TotalNeto, Round2(neto))
	assert.Equal(t, got.TotalBruto, Round2(bruto))
	assert.InDelta(t, neto*1.21, bruto, 1e-6)
}

func TestSimulateDefaultsAndOverrides(t *testing.T) {
	rates := DefaultRates()

	house := houseInput()
	sim := rates.Simulate(house, nil, nil)
	assert.Equal(t, 0.20, sim.AgencyRate)
	assert.Equal(t, 0.0, sim.IntermediaryRate)
	assert.Equal(t, 2406000.0, sim.TotalNeto)

	third := houseInput()
	third.IsThirdParty = true
	sim = rates.Simulate(third, nil, nil)
	assert.Equal(t, 0.10, sim.IntermediaryRate)
	assert.Equal(t, 200500.0, sim.IntermediaryCommission)

	agency, intermediary := 0.15, 0.0
	sim = rates.Simulate(third, &agency, &intermediary)
	assert.Equal(t, 300750.0, sim.AgencyCommission)
	assert.Equal(t, 0.0, sim.IntermediaryCommission)
	assert.Equal(t, 2305750.0, sim.TotalNeto)
}

func TestRatesFromConfigFallsBackOnDays(t *testing.T) {
	rates := RatesFromConfig(configWithDays(0))
	assert.Equal(t, 30, rates.DaysPerMonth)
	assert.Equal(t, 0.20, rates.AgencyCommission)
}

func TestRoundHelpers(t *testing.T) {
	assert.Equal(t, 10.13, Round2(10.125))
	assert.Equal(t, 1.23, Round2(1.2349))
	assert.Equal(t, 3.0, RoundUnit(2.5))
	assert.Equal(t, 20.0, math.Round(Percent(0.20)))
}

func configWithDays(days int) config.PricingConfig {
	return config.PricingConfig{
		AgencyCommissionRate:       0.20,
		IntermediaryCommissionRate: 0.10,
		IVARate:                    0.21,
		DaysPerMonth:               days,
	}
}

func TestRatesFromConfigCurrency(t *testing.T) {
	cfg := configWithDays(30)
	cfg.Currency = "usd"
	assert.Equal(t, enums.CurrencyUSD, RatesFromConfig(cfg).Currency)

	cfg.Currency = "EUR"
	assert.Equal(t, enums.CurrencyARS, RatesFromConfig(cfg).Currency)
}

func TestCalculateIsDeterministicAndFullMonthKeepsRental(t *testing.T) {
	rng := rand.New(rand.NewSource(30))
	rates := DefaultRates()

	for i := 0; i < 2000; i++ {
		rental := float64(rng.Intn(5_000_000) + 1)
		tax := float64(rng.Intn(200_000))
		in := Input{
			Code:             "GFG050",
			CampaignDays:     rng.Intn(400),
			RentalMonthly:    rental,
			ProductionCost:   float64(rng.Intn(500_000)),
			InstallationCost: float64(rng.Intn(200_000)),
			MunicipalTax:     tax,
			Currency:         "ARS",
			IsThirdParty:     rng.Intn(2) == 0,
		}
		require.Equal(t, rates.Calculate(in), rates.Calculate(in), "input %+v", in)

		in.CampaignDays = 30
		got := rates.Calculate(in)
		require.Equal(t, Round2(rental), got.RentalProportional, "rental %v", rental)
		require.Equal(t, Round2(tax), got.MunicipalTax, "tax %v", tax)
	}
}
