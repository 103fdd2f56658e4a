package responses

import (
	"log/slog"
	"net/http"

	internalmodels "github.com/adampresley/albumshare/cmd/albumshare/internal/models"
	"github.com/goccy/go-json"
)

func WriteJson(w http.ResponseWriter, status int, value any) {
	b, err := json.Marshal(value)

	if err != nil {
		slog.Error("error encoding JSON response", "error", err)
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJson(w, status, internalmodels.ErrorResponse{Error: message})
}
