package albums

import (
	"errors"
	"log/slog"
	"net/http"

	internalmodels "github.com/adampresley/albumshare/cmd/albumshare/internal/models"
	"github.com/adampresley/albumshare/pkg/services"
)

func publishErrorResponse(err error) (int, internalmodels.ErrorResponse) {
	var (
		uploadErr  *services.UploadFailedError
		persistErr *services.PersistenceFailedError
	)

	switch {
	case errors.Is(err, services.ErrEmptySelection):
		return http.StatusBadRequest, internalmodels.ErrorResponse{
			Error: "Please select at least one image.",
		}

	case errors.As(err, &uploadErr):
		index := uploadErr.Index

		return http.StatusBadGateway, internalmodels.ErrorResponse{
			Error: "Upload failed.",
			Index: &index,
		}

	case errors.As(err, &persistErr):
		return http.StatusInternalServerError, internalmodels.ErrorResponse{
			Error: "Upload failed. The album could not be saved.",
		}
	}

	slog.Error("unexpected error publishing album", "error", err)

	return http.StatusInternalServerError, internalmodels.ErrorResponse{
		Error: "An unexpected error occurred publishing the album.",
	}
}
