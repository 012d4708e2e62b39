package get_service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetService(_ context.Context, id int64) (*models.ServiceResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceResponse{ID: id, Title: "Стрижка", DurationMinutes: 30}, nil
}

func get(svc *fakeService, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/services/{serviceId}", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services/"+id, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	rec := get(&fakeService{}, "4")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(4), body.ID)
	assert.Equal(t, 30, body.DurationMinutes)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "four").Code)
	assert.Equal(t, http.StatusNotFound, get(&fakeService{err: catalog.ErrServiceNotFound}, "4").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: errors.New("db")}, "4").Code)
}
