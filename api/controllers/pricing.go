package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	"github.com/angelmondragon/ooh-agent-backend/api/validators"
	"github.com/angelmondragon/ooh-agent-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

func pricingUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable")
}

type itemPriceRequest struct {
	InventoryID                   uuid.UUID `json:"inventoryId" validate:"required"`
	CampaignDays                  int       `json:"campaignDays" validate:"gte=0"`
	IncludeIntermediaryCommission *bool     `json:"includeIntermediaryCommission,omitempty"`
}

// PricingQuote prices one support by id with cent rounding.
func PricingQuote(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pricingUnavailable())
			return
		}
		var req itemPriceRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		breakdown, err := svc.CalculateItemPrice(r.Context(), pricing.ItemPriceRequest{
			InventoryID:                   req.InventoryID,
			CampaignDays:                  req.CampaignDays,
			IncludeIntermediaryCommission: req.IncludeIntermediaryCommission,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}

// PricingByCode is the agent-facing quote. Unknown codes answer 200 with
// success=false so the agent can relay the message.
func PricingByCode(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pricingUnavailable())
			return
		}
		days, err := validators.RequireQueryInt(r, "days", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.CalculateByCode(r.Context(), strings.TrimSpace(chi.URLParam(r, "code")), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type proposalTotalRequest struct {
	Items []pricing.ItemRequest `json:"items" validate:"required,min=1,dive"`
}

func PricingProposalTotal(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pricingUnavailable())
			return
		}
		var req proposalTotalRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.CalculateProposalTotal(r.Context(), req.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, total)
	}
}

type simulationRequest struct {
	InventoryID            uuid.UUID `json:"inventoryId" validate:"required"`
	CampaignDays           int       `json:"campaignDays" validate:"gte=0"`
	CustomAgencyRate       *float64  `json:"customAgencyRate,omitempty" validate:"omitempty,gte=0,lte=1"`
	CustomIntermediaryRate *float64  `json:"customIntermediaryRate,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// PricingSimulate quotes with negotiated rates.
func PricingSimulate(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pricingUnavailable())
			return
		}
		var req simulationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sim, err := svc.SimulatePrice(r.Context(), pricing.SimulationRequest{
			InventoryID:            req.InventoryID,
			CampaignDays:           req.CampaignDays,
			CustomAgencyRate:       req.CustomAgencyRate,
			CustomIntermediaryRate: req.CustomIntermediaryRate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sim)
	}
}

func PricingConfig(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pricingUnavailable())
			return
		}
		responses.WriteSuccess(w, svc.Config())
	}
}
