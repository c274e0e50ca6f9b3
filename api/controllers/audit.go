package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	"github.com/angelmondragon/ooh-agent-backend/api/validators"
	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/angelmondragon/ooh-agent-backend/pkg/pagination"
)

func auditUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable")
}

// record decodes T and writes it through log. Every audit write answers 201.
func record[T any](svc audit.Service, logg *logger.Logger, log func(context.Context, T) (audit.Entry, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, auditUnavailable())
			return
		}
		var payload T
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := log(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// AuditLog writes a generic event; metadata is checked against the event type.
func AuditLog(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return record(svc, logg, func(ctx context.Context, in audit.LogInput) (audit.Entry, error) {
		return svc.Log(ctx, in)
	})
}

func AuditEmailSent(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return record(svc, logg, func(ctx context.Context, in audit.EmailSent) (audit.Entry, error) {
		return svc.LogEmailSent(ctx, in)
	})
}

func AuditProposalGenerated(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return record(svc, logg, func(ctx context.Context, in audit.ProposalGenerated) (audit.Entry, error) {
		return svc.LogProposalGenerated(ctx, in)
	})
}

func AuditThirdPartyRequest(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return record(svc, logg, func(ctx context.Context, in audit.ThirdPartyRequest) (audit.Entry, error) {
		return svc.LogThirdPartyRequest(ctx, in)
	})
}

// AuditRecent pages newest first with an opaque cursor.
func AuditRecent(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, auditUnavailable())
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.GetRecent(r.Context(), limit, validators.ParseQueryString(r, "cursor", 512))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func AuditByEventType(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, auditUnavailable())
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.GetByEventType(r.Context(), chi.URLParam(r, "eventType"), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// AuditByDateRange takes ?start and ?end as RFC 3339 instants or YYYY-MM-DD dates.
func AuditByDateRange(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, auditUnavailable())
			return
		}
		entries, err := svc.GetByDateRange(r.Context(),
			validators.ParseQueryString(r, "start", 64),
			validators.ParseQueryString(r, "end", 64),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
