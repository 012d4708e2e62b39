package list_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	got *models.ListBookingsRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil
}

func list(svc *fakeService, target, staffHeader string) *httptest.ResponseRecorder {
	h := middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if staffHeader != "" {
		req.Header.Set(middleware.StaffIDHeader, staffHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Filters(t *testing.T) {
	svc := &fakeService{}
	rec := list(svc, "/api/v1/bookings?status=Pending&from=2026-03-01T00:00:00Z&to=2026-03-08T00:00:00Z", "3")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.ViewerID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "Pending", *svc.got.Status)
	require.NotNil(t, svc.got.From)
	assert.True(t, svc.got.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, svc.got.To)
}

func TestHandler_NoFilters(t *testing.T) {
	svc := &fakeService{}
	rec := list(svc, "/api/v1/bookings", "3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Status)
	assert.Nil(t, svc.got.From)
	assert.Nil(t, svc.got.To)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		err    error
		status int
	}{
		{name: "no header", target: "/api/v1/bookings", status: http.StatusUnauthorized},
		{name: "bad from", target: "/api/v1/bookings?from=yesterday", header: "1", status: http.StatusBadRequest},
		{name: "bad to", target: "/api/v1/bookings?to=2026-03-01", header: "1", status: http.StatusBadRequest},
		{name: "unknown viewer", target: "/api/v1/bookings", header: "1", err: bookings.ErrUnknownViewer, status: http.StatusUnauthorized},
		{name: "invalid filter", target: "/api/v1/bookings", header: "1", err: fmt.Errorf("%w: status", bookings.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/bookings", header: "1", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := list(&fakeService{err: tt.err}, tt.target, tt.header)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
