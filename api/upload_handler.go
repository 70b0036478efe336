package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/openfund-app/backend/database"
	"github.com/openfund-app/backend/errs"
	"github.com/openfund-app/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 10 << 20 // 10MB

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	fundRepo  *database.FundRepo
	uploadDir string
}

func newUploadHandler(fundRepo *database.FundRepo, uploadDir string) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		fundRepo:  fundRepo,
		uploadDir: uploadDir,
	}
}

// uploadFundPhoto stores the uploaded file as uploads/{fund_id}.jpg and
// records the path on the fund.
func (h uploadHandler) uploadFundPhoto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fundID, err := parseID(r, "fundID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.fundRepo.FindByID(fundID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("file", "is required"))
			return
		}
		defer file.Close()

		if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
			h.logger.Error().Err(err).Str("dir", h.uploadDir).Msg("Failed to create upload directory")
			h.responder.WriteError(w, errs.NewApiErr(http.StatusInternalServerError, "failed to store photo"))
			return
		}

		fileName := fmt.Sprintf("%d.jpg", fundID)
		dst, err := os.Create(filepath.Join(h.uploadDir, fileName))
		if err != nil {
			h.logger.Error().Err(err).Str("file", fileName).Msg("Failed to create photo file")
			h.responder.WriteError(w, errs.NewApiErr(http.StatusInternalServerError, "failed to store photo"))
			return
		}
		defer dst.Close()

		if _, err := io.Copy(dst, file); err != nil {
			h.logger.Error().Err(err).Str("file", fileName).Msg("Failed to write photo file")
			h.responder.WriteError(w, errs.NewApiErr(http.StatusInternalServerError, "failed to store photo"))
			return
		}

		photoURL := "/uploads/" + fileName
		fund, err := h.fundRepo.Update(fundID, models.FundPatch{
			PhotoURL: models.Some(photoURL),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newFundResponse(*fund))
	}
}
