package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	"github.com/angelmondragon/ooh-agent-backend/internal/seed"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

// seedAction wraps one seed operation. Only mounted outside production.
func seedAction[T any](svc seed.Service, logg *logger.Logger, run func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seed service unavailable"))
			return
		}
		result, err := run(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func SeedInventory(svc seed.Service, logg *logger.Logger) http.HandlerFunc {
	return seedAction(svc, logg, func(ctx context.Context) (seed.InventoryResult, error) { return svc.SeedInventory(ctx) })
}

func SeedPartners(svc seed.Service, logg *logger.Logger) http.HandlerFunc {
	return seedAction(svc, logg, func(ctx context.Context) (seed.PartnersResult, error) { return svc.SeedPartners(ctx) })
}

func SeedAll(svc seed.Service, logg *logger.Logger) http.HandlerFunc {
	return seedAction(svc, logg, func(ctx context.Context) (seed.AllResult, error) { return svc.SeedAll(ctx) })
}

func SeedClearInventory(svc seed.Service, logg *logger.Logger) http.HandlerFunc {
	return seedAction(svc, logg, func(ctx context.Context) (seed.ClearInventoryResult, error) { return svc.ClearInventory(ctx) })
}

func SeedClearPartners(svc seed.Service, logg *logger.Logger) http.HandlerFunc {
	return seedAction(svc, logg, func(ctx context.Context) (seed.ClearPartnersResult, error) { return svc.ClearPartners(ctx) })
}

func SeedClearAll(svc seed.Service, logg *logger.Logger) http.HandlerFunc {
	return seedAction(svc, logg, func(ctx context.Context) (seed.ClearAllResult, error) { return svc.ClearAll(ctx) })
}
