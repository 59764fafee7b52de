package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/extraction"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/intake"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/server/middleware"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/valuation"
)

// maxUploadSize bounds the multipart form for deck uploads (20 MB).
const maxUploadSize = 20 << 20

// handleParseDeck ingests a deck (uploaded PDF or URL), extracts a company
// profile, and installs it in the caller's session. Failures of the
// extraction or fetch services are reported as 200 with status "error" so the
// client can surface the message inline; malformed input is a 400.
func (s *Server) handleParseDeck(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	var fileBytes []byte
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		fileBytes, err = io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file: "+err.Error())
			return
		}
	}
	urlStr := r.FormValue("url")

	sess := s.sessions.Get(ownerID)
	gen := sess.BeginIngest()

	doc, err := s.normalizer.Ingest(r.Context(), fileBytes, urlStr)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrInvalidInput):
			s.errorResponse(w, http.StatusBadRequest, "Provide exactly one of 'file' or 'url'")
		case errors.Is(err, intake.ErrUnsupportedFormat):
			s.errorResponse(w, http.StatusBadRequest, "Uploaded file must be a PDF")
		default:
			// Fetch and PDF conversion failures are service-level.
			s.jsonResponse(w, http.StatusOK, types.AnalyzeResponse{
				Status:  "error",
				Message: serviceMessage(err),
			})
		}
		return
	}

	result, err := s.extractor.Extract(r.Context(), doc.RawText)
	if err != nil {
		s.jsonResponse(w, http.StatusOK, types.AnalyzeResponse{
			Status:  "error",
			Message: serviceMessage(err),
		})
		return
	}

	seeded := valuation.SeedGrowth(result.Profile)
	if !sess.ApplyExtraction(gen, doc, result.Profile) {
		log.Printf("[analyze] discarding stale extraction for owner %s", ownerID)
	} else {
		seeded = sess.Growth()
	}

	s.jsonResponse(w, http.StatusOK, types.AnalyzeResponse{
		Status:        "ok",
		Data:          &result.Profile,
		RawText:       result.RawText,
		GrowthPercent: seeded,
	})
}

// serviceMessage extracts the user-facing message from a service failure.
func serviceMessage(err error) string {
	var svcErr *extraction.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}

// handleChat answers a question grounded in the caller's analyzed deck.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	sess := s.sessions.Get(ownerID)
	answer, err := sess.Ask(r.Context(), s.chatSvc, req.Question)
	if err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ChatResponse{Answer: answer})
}

// handleListValuations returns the caller's saved valuations, newest first.
func (s *Server) handleListValuations(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recs, err := s.records.List(r.Context(), ownerID)
	if err != nil {
		s.errorResponse(w, httpStatus(err), "Failed to list valuations: "+err.Error())
		return
	}

	views := make([]types.ValuationRecordView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, types.ValuationRecordView{
			ID:              rec.ID,
			CompanyName:     rec.CompanyName,
			ValuationAmount: rec.ValuationAmount,
			SWOTAnalysis:    rec.SWOTAnalysis,
			CreatedAt:       rec.CreatedAt,
		})
	}
	s.jsonResponse(w, http.StatusOK, views)
}

// handleSaveValuation persists the caller's current analysis at the chosen
// growth assumption and clears the session.
func (s *Server) handleSaveValuation(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.SaveValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "growth_percent must be between 0 and 200")
		return
	}

	// Mirror the slider position into the session so a failed save leaves
	// the session holding the caller's last adjustment.
	sess := s.sessions.Get(ownerID)
	sess.SetGrowth(req.GrowthPercent)

	rec, err := s.records.Save(r.Context(), ownerID, req.GrowthPercent)
	if err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.ValuationRecordView{
		ID:              rec.ID,
		CompanyName:     rec.CompanyName,
		ValuationAmount: rec.ValuationAmount,
		SWOTAnalysis:    rec.SWOTAnalysis,
		CreatedAt:       rec.CreatedAt,
	})
}

// handleDeleteValuation removes one of the caller's saved valuations.
// Requires ?confirm=true; without it nothing is attempted.
func (s *Server) handleDeleteValuation(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recordID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid valuation ID format")
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := s.records.Delete(r.Context(), ownerID, recordID, confirmed); err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
