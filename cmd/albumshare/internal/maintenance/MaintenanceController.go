package maintenance

import (
	"log/slog"
	"net/http"

	internalmodels "github.com/adampresley/albumshare/cmd/albumshare/internal/models"
	"github.com/adampresley/albumshare/cmd/albumshare/internal/responses"
	"github.com/adampresley/albumshare/pkg/services"
)

type MaintenanceHandlers interface {
	Orphans(w http.ResponseWriter, r *http.Request)
}

type MaintenanceControllerConfig struct {
	OrphanService services.OrphanServicer
}

type MaintenanceController struct {
	orphanService services.OrphanServicer
}

func NewMaintenanceController(config MaintenanceControllerConfig) MaintenanceController {
	return MaintenanceController{
		orphanService: config.OrphanService,
	}
}

/*
GET /maintenance/orphans
*/
func (c MaintenanceController) Orphans(w http.ResponseWriter, r *http.Request) {
	keys, err := c.orphanService.FindOrphans(r.Context())

	if err != nil {
		slog.Error("error finding orphaned images", "error", err)
		responses.WriteError(w, http.StatusInternalServerError, "Could not scan for orphaned images.")
		return
	}

	responses.WriteJson(w, http.StatusOK, internalmodels.OrphansResponse{
		Keys:  keys,
		Count: len(keys),
	})
}
