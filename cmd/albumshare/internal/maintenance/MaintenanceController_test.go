package maintenance

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	internalmodels "github.com/adampresley/albumshare/cmd/albumshare/internal/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrphanService struct {
	keys []string
	err  error
}

func (f fakeOrphanService) FindOrphans(ctx context.Context) ([]string, error) {
	return f.keys, f.err
}

func TestOrphans(t *testing.T) {
	controller := NewMaintenanceController(MaintenanceControllerConfig{
		OrphanService: fakeOrphanService{keys: []string{"published/abcd1234/000-a.jpg"}},
	})

	w := httptest.NewRecorder()
	controller.Orphans(w, httptest.NewRequest(http.MethodGet, "/maintenance/orphans", nil))

	require.Equal(t, http.StatusOK, w.Code)

	got := internalmodels.OrphansResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, []string{"published/abcd1234/000-a.jpg"}, got.Keys)
}

func TestOrphans_Error(t *testing.T) {
	controller := NewMaintenanceController(MaintenanceControllerConfig{
		OrphanService: fakeOrphanService{err: fmt.Errorf("access denied")},
	})

	w := httptest.NewRecorder()
	controller.Orphans(w, httptest.NewRequest(http.MethodGet, "/maintenance/orphans", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
