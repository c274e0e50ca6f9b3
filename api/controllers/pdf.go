package controllers

import (
	"net/http"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	"github.com/angelmondragon/ooh-agent-backend/api/validators"
	"github.com/angelmondragon/ooh-agent-backend/internal/pdf"
	"github.com/angelmondragon/ooh-agent-backend/internal/proposals"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

func pdfUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "pdf service unavailable")
}

// writeDocument answers raw HTML for the renderer, or the JSON envelope when
// ?format=json is requested.
func writeDocument(w http.ResponseWriter, r *http.Request, result pdf.Result) {
	if r.URL.Query().Get("format") == "json" {
		responses.WriteSuccess(w, result)
		return
	}
	responses.WriteHTML(w, http.StatusOK, result.HTML)
}

// PDFLatest renders the latest staged rich proposal.
func PDFLatest(svc pdf.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pdfUnavailable())
			return
		}
		result, err := svc.RenderLatest(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDocument(w, r, result)
	}
}

// PDFRender renders the snapshot given in the body.
func PDFRender(svc pdf.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pdfUnavailable())
			return
		}
		var snapshot proposals.RichProposal
		if err := validators.DecodeJSONBody(r, &snapshot); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Render(r.Context(), snapshot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDocument(w, r, result)
	}
}
