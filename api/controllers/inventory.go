package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	"github.com/angelmondragon/ooh-agent-backend/api/validators"
	"github.com/angelmondragon/ooh-agent-backend/internal/inventory"
	"github.com/angelmondragon/ooh-agent-backend/internal/partners"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

const maxFilterLen = 120

func inventoryUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable")
}

func supportNotFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, inventory.NotFoundMessage)
}

// InventoryList returns the whole catalog, or a filtered search when any
// search parameter is present.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}

		query, filtered, err := parseSearchQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var items []inventory.Item
		if filtered {
			items, err = svc.Search(r.Context(), query)
		} else {
			items, err = svc.GetAll(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func parseSearchQuery(r *http.Request) (inventory.SearchQuery, bool, error) {
	query := inventory.SearchQuery{
		Zone:  validators.ParseQueryString(r, "zone", maxFilterLen),
		Type:  validators.ParseQueryString(r, "type", maxFilterLen),
		Owner: validators.ParseQueryString(r, "owner", maxFilterLen),
	}
	onlyAvailable, err := validators.ParseQueryBool(r, "onlyAvailable")
	if err != nil {
		return query, false, err
	}
	maxPrice, err := validators.ParseQueryFloat(r, "maxPrice")
	if err != nil {
		return query, false, err
	}
	if onlyAvailable != nil {
		query.OnlyAvailable = *onlyAvailable
	}
	if maxPrice != nil {
		query.MaxPrice = *maxPrice
	}
	filtered := query.Zone != "" || query.Type != "" || query.Owner != "" || query.OnlyAvailable || query.MaxPrice > 0
	return query, filtered, nil
}

// InventoryAvailable lists supports currently open for booking.
func InventoryAvailable(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		items, err := svc.GetAvailable(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func InventoryThirdParty(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		items, err := svc.GetThirdParty(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func InventoryByZone(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryBySegment("zone", logg, func(r *http.Request, v string) ([]inventory.Item, error) {
		if svc == nil {
			return nil, inventoryUnavailable()
		}
		return svc.GetByZone(r.Context(), v)
	})
}

func InventoryByType(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryBySegment("type", logg, func(r *http.Request, v string) ([]inventory.Item, error) {
		if svc == nil {
			return nil, inventoryUnavailable()
		}
		return svc.GetByType(r.Context(), v)
	})
}

func InventoryByOwner(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryBySegment("owner", logg, func(r *http.Request, v string) ([]inventory.Item, error) {
		if svc == nil {
			return nil, inventoryUnavailable()
		}
		return svc.GetByOwner(r.Context(), v)
	})
}

// inventoryBySegment passes one sanitized path segment to fetch.
func inventoryBySegment(param string, logg *logger.Logger, fetch func(*http.Request, string) ([]inventory.Item, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := validators.SanitizeString(chi.URLParam(r, param), maxFilterLen)
		if value == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, param+" es obligatorio"))
			return
		}
		items, err := fetch(r, value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// InventoryByCode resolves a support by its public code.
func InventoryByCode(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "code"))
		item, err := svc.GetByCode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if item == nil {
			responses.WriteError(r.Context(), logg, w, supportNotFound())
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func InventoryGet(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		id, err := validators.ParseUUIDParam(r, "inventoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if item == nil {
			responses.WriteError(r.Context(), logg, w, supportNotFound())
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryDetails returns the PDF-ready view of one support.
func InventoryDetails(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		id, err := validators.ParseUUIDParam(r, "inventoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.GetFullDetails(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if view == nil {
			responses.WriteError(r.Context(), logg, w, supportNotFound())
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type detailsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// InventoryMultipleDetails returns the detail view for every known id in the body.
func InventoryMultipleDetails(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		var req detailsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views, err := svc.GetMultipleFullDetails(r.Context(), req.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// InventoryAvailability checks a date window against status and blocked dates.
func InventoryAvailability(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		id, err := validators.ParseUUIDParam(r, "inventoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := inventory.AvailabilityQuery{
			StartDate: validators.ParseQueryString(r, "startDate", 32),
			EndDate:   validators.ParseQueryString(r, "endDate", 32),
		}
		if err := validators.ValidateStruct(query); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		check, err := svc.CheckAvailability(r.Context(), id, query.StartDate, query.EndDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, check)
	}
}

func InventoryUpdateStatus(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		id, err := validators.ParseUUIDParam(r, "inventoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req inventory.StatusUpdate
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// InventoryBlockDates adds dates to the support's blocked set.
func InventoryBlockDates(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryDates(logg, func(r *http.Request, id uuid.UUID, dates []string) (inventory.DatesResult, error) {
		if svc == nil {
			return inventory.DatesResult{}, inventoryUnavailable()
		}
		return svc.BlockDates(r.Context(), id, dates)
	})
}

// InventoryUnblockDates removes dates from the support's blocked set.
func InventoryUnblockDates(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return inventoryDates(logg, func(r *http.Request, id uuid.UUID, dates []string) (inventory.DatesResult, error) {
		if svc == nil {
			return inventory.DatesResult{}, inventoryUnavailable()
		}
		return svc.UnblockDates(r.Context(), id, dates)
	})
}

func inventoryDates(logg *logger.Logger, apply func(*http.Request, uuid.UUID, []string) (inventory.DatesResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "inventoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req inventory.DatesUpdate
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := apply(r, id, req.Dates)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// InventoryContact resolves the partner contact for a third-party support.
func InventoryContact(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, partnersUnavailable())
			return
		}
		id, err := validators.ParseUUIDParam(r, "inventoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lookup, err := svc.GetContactForInventory(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lookup)
	}
}
