package controllers

import (
	"net/http"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	"github.com/angelmondragon/ooh-agent-backend/api/validators"
	"github.com/angelmondragon/ooh-agent-backend/internal/proposals"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

func proposalsUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable")
}

// stage decodes T and hands it to store. Every staging route answers 201.
func stage[T any](svc proposals.Service, logg *logger.Logger, store func(*http.Request, T) (proposals.StoreResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, proposalsUnavailable())
			return
		}
		var req T
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := store(r, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ProposalStagePending stages a summary proposal with caller-computed totals.
func ProposalStagePending(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return stage(svc, logg, func(r *http.Request, req proposals.StorePendingRequest) (proposals.StoreResult, error) {
		return svc.StorePendingProposal(r.Context(), req)
	})
}

// ProposalStageByCodes prices the codes server-side before staging.
func ProposalStageByCodes(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return stage(svc, logg, func(r *http.Request, req proposals.StoreByCodesRequest) (proposals.StoreResult, error) {
		return svc.StoreProposalByCodes(r.Context(), req)
	})
}

func ProposalStageRich(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return stage(svc, logg, func(r *http.Request, req proposals.StoreRichRequest) (proposals.StoreResult, error) {
		return svc.StoreRichProposal(r.Context(), req)
	})
}

func ProposalStageWithMockups(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return stage(svc, logg, func(r *http.Request, req proposals.StoreWithMockupsRequest) (proposals.StoreResult, error) {
		return svc.StoreProposalWithMockups(r.Context(), req)
	})
}

// ProposalLatestPending answers data=null when nothing is staged.
func ProposalLatestPending(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, proposalsUnavailable())
			return
		}
		latest, err := svc.GetLatestPendingProposal(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, latest)
	}
}

// ProposalLatestRich answers data=null when nothing is staged.
func ProposalLatestRich(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, proposalsUnavailable())
			return
		}
		latest, err := svc.GetLatestRichProposal(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, latest)
	}
}

// ProposalComplete attaches the rendered PDF and promotes the draft.
func ProposalComplete(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, proposalsUnavailable())
			return
		}
		var req proposals.CompleteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.CompleteProposal(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProposalList(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, proposalsUnavailable())
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := validators.ParseQueryString(r, "status", 32)
		list, err := svc.ListProposals(r.Context(), status, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ProposalGet(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, proposalsUnavailable())
			return
		}
		id, err := validators.ParseUUIDParam(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		proposal, err := svc.GetProposal(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if proposal == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "propuesta no encontrada"))
			return
		}
		responses.WriteSuccess(w, proposal)
	}
}

type proposalStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func ProposalUpdateStatus(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, proposalsUnavailable())
			return
		}
		id, err := validators.ParseUUIDParam(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProposal(ctx, id.String())
		}
		var req proposalStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := svc.UpdateStatus(ctx, id, req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
