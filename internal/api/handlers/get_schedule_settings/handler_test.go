package get_schedule_settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetSettings(context.Context) (*models.SettingsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{
		OpeningTime:            "09:00",
		ClosingTime:            "18:00",
		SlotGranularityMinutes: 15,
		DefaultDurationMinutes: 15,
		Timezone:               "Europe/Moscow",
	}, nil
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "09:00", body["openingTime"])
	assert.Equal(t, "18:00", body["closingTime"])
	assert.EqualValues(t, 15, body["slotGranularityMinutes"])

	rec = httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
