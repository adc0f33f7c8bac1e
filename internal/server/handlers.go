package server

import (
	"fmt"
	"net/http"

	"github.com/law-makers/legisinfo/internal/engine"
	"github.com/law-makers/legisinfo/internal/reqctx"
	urlutil "github.com/law-makers/legisinfo/internal/utils/url"
	"github.com/rs/zerolog/hlog"
	"go.mau.fi/util/exhttp"
)

// DetailInvalidURL is returned when the url parameter is not a bill page
const DetailInvalidURL = "Invalid URL format. URL must be from parl.ca/legisinfo"

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleBill handles GET /api/bill?url=<bill page>
func (s *Server) handleBill(w http.ResponseWriter, r *http.Request) {
	billURL := r.URL.Query().Get("url")
	if !urlutil.HasPrefix(billURL, s.opts.BillURLPrefix) {
		hlog.FromRequest(r).Debug().Str("bill_url", billURL).Msg("Rejected bill URL")
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, ErrorResponse{Detail: DetailInvalidURL})
		return
	}

	record, err := s.scraper.Scrape(r.Context(), billURL)
	if err != nil {
		status := http.StatusInternalServerError
		detail := fmt.Sprintf("Processing failed: %v", err)
		if engine.IsClientError(err) {
			status = http.StatusBadRequest
			detail = err.Error()
		}

		hlog.FromRequest(r).Warn().
			Err(reqctx.NewRequestError(r.Context(), err)).
			Str("bill_url", billURL).
			Str("code", string(engine.CodeOf(err))).
			Int("status", status).
			Msg("Bill scrape failed")
		exhttp.WriteJSONResponse(w, status, ErrorResponse{Detail: detail})
		return
	}

	exhttp.WriteJSONResponse(w, http.StatusOK, record)
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	exhttp.WriteJSONResponse(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "Parliament bill scraper is running",
	})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	exhttp.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Welcome to Parliament Bill Scraper API",
		"bill":    "/api/bill?url=" + s.opts.BillURLPrefix + "<session>/<number>",
		"health":  "/api/health",
	})
}
