package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/openfund-app/backend/database"
	"github.com/openfund-app/backend/errs"
	"github.com/openfund-app/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultListLimit  = 10
	defaultListOffset = 0
)

type fundHandler struct {
	responder Responder
	logger    zerolog.Logger
	fundRepo  *database.FundRepo
}

func newFundHandler(fundRepo *database.FundRepo) fundHandler {
	logger := log.With().Str("handlerName", "fundHandler").Logger()

	return fundHandler{
		responder: NewResponder(logger),
		logger:    logger,
		fundRepo:  fundRepo,
	}
}

// parseID extracts a positive integer URL parameter
func parseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// queryInt reads an integer query parameter with a fallback
func queryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// listFunds returns a page of funds in insertion order
func (h fundHandler) listFunds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", defaultListLimit)
		offset := queryInt(r, "offset", defaultListOffset)

		funds, err := h.fundRepo.FindAll(limit, offset)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newFundResponses(funds))
	}
}

// getFund returns a single fund by ID or 404
func (h fundHandler) getFund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fundID, err := parseID(r, "fundID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fund, err := h.fundRepo.FindByID(fundID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newFundResponse(*fund))
	}
}

// listFundsByCategory returns every fund in the category; an unknown
// category yields an empty list
func (h fundHandler) listFundsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		funds, err := h.fundRepo.FindByCategory(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newFundResponses(funds))
	}
}

// createFund validates the payload and inserts a new fund
func (h fundHandler) createFund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CreateFundRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode fund request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := payload.Validate(time.Now().UTC()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fund := payload.ToModel()
		if err := h.fundRepo.Add(&fund); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, newFundResponse(fund))
	}
}

// updateFund applies a partial update; only fields present in the payload change
func (h fundHandler) updateFund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fundID, err := parseID(r, "fundID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.FundPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode fund patch body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateFundPatch(patch, time.Now().UTC()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fund, err := h.fundRepo.Update(fundID, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newFundResponse(*fund))
	}
}

// donate applies a donation to a fund, bumping collected and donate_count together
func (h fundHandler) donate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fundID, err := parseID(r, "fundID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload DonationRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode donation body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := payload.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fund, err := h.fundRepo.Donate(fundID, payload.Amount)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newFundResponse(*fund))
	}
}

// deleteFund removes a fund permanently
func (h fundHandler) deleteFund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fundID, err := parseID(r, "fundID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.fundRepo.Delete(fundID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "fund deleted successfully",
		})
	}
}
