package controllers

import (
	"net/http"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	"github.com/angelmondragon/ooh-agent-backend/api/validators"
	"github.com/angelmondragon/ooh-agent-backend/internal/mockups"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

func mockupsUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "mockups service unavailable")
}

// MockupURL builds a single mockup URL from ?clientName, ?code and an optional ?type.
func MockupURL(svc mockups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, mockupsUnavailable())
			return
		}
		mockup, err := svc.GenerateMockupURL(
			validators.ParseQueryString(r, "clientName", maxFilterLen),
			validators.ParseQueryString(r, "code", 32),
			validators.ParseQueryString(r, "type", maxFilterLen),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, mockup)
	}
}

type mockupBatchRequest struct {
	ClientName string   `json:"clientName" validate:"required"`
	Codes      []string `json:"codes" validate:"required,min=1,dive,required"`
}

func MockupBatch(svc mockups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, mockupsUnavailable())
			return
		}
		var req mockupBatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		batch, err := svc.GenerateBatch(r.Context(), req.ClientName, req.Codes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, batch)
	}
}
