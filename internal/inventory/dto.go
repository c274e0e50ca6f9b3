package inventory

import (
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/google/uuid"
)

// Product sheet fallbacks for specs the catalog leaves empty.
const (
	DefaultResolution     = "el archivo de armado al 10% del tamaño a 300 dpi"
	DefaultSubFormat      = "No"
	DefaultMaterialSpec   = "Lona Front 8 oz"
	DefaultSendFormat     = "Illustrator: CS / AI – EPS / Photoshop: CS / TIFF"
	DefaultSendDeadline   = "7 días hábiles antes exhibición"
	DefaultAdditionalInfo = "Sin información adicional"
)

type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type Location struct {
	Address      string      `json:"address"`
	City         string      `json:"city"`
	Zone         string      `json:"zone"`
	Neighborhood *string     `json:"neighborhood,omitempty"`
	Coordinates  Coordinates `json:"coordinates"`
}

type Pricing struct {
	RentalMonthly    float64 `json:"rental_monthly"`
	ProductionCost   float64 `json:"production_cost"`
	InstallationCost float64 `json:"installation_cost"`
	MunicipalTax     float64 `json:"municipal_tax"`
	Currency         string  `json:"currency"`
}

type Specs struct {
	VisibleDimensions string  `json:"visible_dimensions"`
	TotalDimensions   *string `json:"total_dimensions,omitempty"`
	Resolution        *string `json:"resolution,omitempty"`
	Lighting          bool    `json:"lighting"`
	SubFormat         *string `json:"sub_format,omitempty"`
	MaterialSpec      *string `json:"material_spec,omitempty"`
	SendFormat        *string `json:"send_format,omitempty"`
	SendDeadline      *string `json:"send_deadline,omitempty"`
	AdditionalInfo    *string `json:"additional_info,omitempty"`
}

type Availability struct {
	Status       enums.InventoryStatus `json:"status"`
	BlockedDates []string              `json:"blocked_dates"`
}

type Media struct {
	BaseImageURL string `json:"base_image_url"`
}

type Metrics struct {
	DailyOTS int `json:"daily_ots"`
}

// Item is the catalog document returned by list and lookup queries.
type Item struct {
	ID           uuid.UUID         `json:"id"`
	Code         string            `json:"code"`
	Type         enums.SupportType `json:"type"`
	Owner        string            `json:"owner"`
	Location     Location          `json:"location"`
	Pricing      Pricing           `json:"pricing"`
	Specs        Specs             `json:"specs"`
	Availability Availability      `json:"availability"`
	Media        Media             `json:"media"`
	Metrics      Metrics           `json:"metrics"`
}

// DetailSpecs has every product sheet field resolved.
type DetailSpecs struct {
	VisibleDimensions string `json:"visible_dimensions"`
	TotalDimensions   string `json:"total_dimensions"`
	Resolution        string `json:"resolution"`
	Lighting          bool   `json:"lighting"`
	SubFormat         string `json:"sub_format"`
	MaterialSpec      string `json:"material_spec"`
	SendFormat        string `json:"send_format"`
	SendDeadline      string `json:"send_deadline"`
	AdditionalInfo    string `json:"additional_info"`
}

type DetailLocation struct {
	Address      string      `json:"address"`
	City         string      `json:"city"`
	Zone         string      `json:"zone"`
	Neighborhood string      `json:"neighborhood"`
	Coordinates  Coordinates `json:"coordinates"`
}

type DetailAvailability struct {
	Status        enums.InventoryStatus `json:"status"`
	BlockedDates  []string              `json:"blocked_dates"`
	DisplayStatus string                `json:"displayStatus"`
}

// DetailView feeds the product sheet of a proposal PDF.
type DetailView struct {
	ID           uuid.UUID          `json:"id"`
	Code         string             `json:"code"`
	Type         enums.SupportType  `json:"type"`
	Owner        string             `json:"owner"`
	IsThirdParty bool               `json:"isThirdParty"`
	Location     DetailLocation     `json:"location"`
	Specs        DetailSpecs        `json:"specs"`
	Pricing      Pricing            `json:"pricing"`
	Availability DetailAvailability `json:"availability"`
	Media        Media              `json:"media"`
	Metrics      Metrics            `json:"metrics"`
}

// AvailabilityCheck answers whether a support can be booked for a window.
type AvailabilityCheck struct {
	Available bool    `json:"available"`
	Reason    *string `json:"reason"`
}

type StatusResult struct {
	Success   bool                  `json:"success"`
	NewStatus enums.InventoryStatus `json:"newStatus"`
}

type DatesResult struct {
	Success      bool     `json:"success"`
	BlockedDates []string `json:"blockedDates"`
}

// SearchQuery mirrors the optional search criteria accepted over HTTP.
type SearchQuery struct {
	Zone          string  `json:"zone,omitempty"`
	Type          string  `json:"type,omitempty" validate:"omitempty,oneof=Medianera Columna Espectacular"`
	Owner         string  `json:"owner,omitempty"`
	OnlyAvailable bool    `json:"onlyAvailable,omitempty"`
	MaxPrice      float64 `json:"maxPrice,omitempty" validate:"gte=0"`
}

type AvailabilityQuery struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=available reserved maintenance pending_third_party"`
}

type DatesUpdate struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,required"`
}

func pricingFrom(item models.InventoryItem) Pricing {
	currency := item.Currency.OrDefault().String()
	return Pricing{
		RentalMonthly:    item.RentalMonthly.InexactFloat64(),
		ProductionCost:   item.ProductionCost.InexactFloat64(),
		InstallationCost: item.InstallationCost.InexactFloat64(),
		MunicipalTax:     item.MunicipalTax.InexactFloat64(),
		Currency:         currency,
	}
}

func blockedDates(item models.InventoryItem) []string {
	if item.BlockedDates == nil {
		return []string{}
	}
	return append([]string{}, item.BlockedDates...)
}

// ToItem maps a stored row onto the catalog document.
func ToItem(item models.InventoryItem) Item {
	return Item{
		ID:    item.ID,
		Code:  item.Code,
		Type:  item.Type,
		Owner: item.Owner,
		Location: Location{
			Address:      item.Address,
			City:         item.City,
			Zone:         item.Zone,
			Neighborhood: item.Neighborhood,
			Coordinates:  Coordinates{Lat: item.Lat, Long: item.Lng},
		},
		Pricing: pricingFrom(item),
		Specs: Specs{
			VisibleDimensions: item.VisibleDimensions,
			TotalDimensions:   item.TotalDimensions,
			Resolution:        item.Resolution,
			Lighting:          item.Lighting,
			SubFormat:         item.SubFormat,
			MaterialSpec:      item.MaterialSpec,
			SendFormat:        item.SendFormat,
			SendDeadline:      item.SendDeadline,
			AdditionalInfo:    item.AdditionalInfo,
		},
		Availability: Availability{Status: item.Status, BlockedDates: blockedDates(item)},
		Media:        Media{BaseImageURL: item.BaseImageURL},
		Metrics:      Metrics{DailyOTS: item.DailyOTS},
	}
}

func toItems(rows []models.InventoryItem) []Item {
	out := make([]Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToItem(row))
	}
	return out
}

func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

// ToDetailView resolves every optional spec to its product sheet default.
func ToDetailView(item models.InventoryItem) DetailView {
	return DetailView{
		ID:           item.ID,
		Code:         item.Code,
		Type:         item.Type,
		Owner:        item.Owner,
		IsThirdParty: item.IsThirdParty(),
		Location: DetailLocation{
			Address:      item.Address,
			City:         item.City,
			Zone:         item.Zone,
			Neighborhood: orDefault(item.Neighborhood, item.City),
			Coordinates:  Coordinates{Lat: item.Lat, Long: item.Lng},
		},
		Specs: DetailSpecs{
			VisibleDimensions: item.VisibleDimensions,
			TotalDimensions:   orDefault(item.TotalDimensions, item.VisibleDimensions),
			Resolution:        orDefault(item.Resolution, DefaultResolution),
			Lighting:          item.Lighting,
			SubFormat:         orDefault(item.SubFormat, DefaultSubFormat),
			MaterialSpec:      orDefault(item.MaterialSpec, DefaultMaterialSpec),
			SendFormat:        orDefault(item.SendFormat, DefaultSendFormat),
			SendDeadline:      orDefault(item.SendDeadline, DefaultSendDeadline),
			AdditionalInfo:    orDefault(item.AdditionalInfo, DefaultAdditionalInfo),
		},
		Pricing: pricingFrom(item),
		Availability: DetailAvailability{
			Status:        item.Status,
			BlockedDates:  blockedDates(item),
			DisplayStatus: item.Status.Display(),
		},
		Media:   Media{BaseImageURL: item.BaseImageURL},
		Metrics: Metrics{DailyOTS: item.DailyOTS},
	}
}
