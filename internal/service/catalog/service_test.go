package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeServices struct {
	services []*domain.Service
	err      error
}

func (f *fakeServices) GetService(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("service.repository: %w", domain.ErrServiceNotFound)
}

func (f *fakeServices) ListServices(context.Context) ([]*domain.Service, error) {
	return f.services, f.err
}

type fakeStaff struct {
	staff []*domain.Staff
	err   error
}

func (f *fakeStaff) ListBookableStaff(context.Context) ([]*domain.Staff, error) {
	return f.staff, f.err
}

func testConfig() domain.SchedulingConfig {
	return domain.SchedulingConfig{
		OpeningTime:            "09:00",
		ClosingTime:            "18:00",
		SlotGranularityMinutes: 15,
		DefaultDurationMinutes: 15,
		AdvanceBookingDays:     30,
		Location:               time.UTC,
	}
}

func newService(services *fakeServices, staff *fakeStaff) *Service {
	return NewService(services, staff, testConfig(), logger.NewNop())
}

func TestService_Services(t *testing.T) {
	services := &fakeServices{services: []*domain.Service{
		{ID: 1, Title: "Manicure", Price: 1500, DurationMinutes: 45},
		{ID: 2, Title: "Consultation"},
	}}
	svc := newService(services, &fakeStaff{})

	list, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Services, 2)
	assert.Equal(t, 45, list.Services[0].DurationMinutes)
	assert.Equal(t, 15, list.Services[1].DurationMinutes, "default duration")

	one, err := svc.GetService(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Consultation", one.Title)
	assert.Equal(t, 15, one.DurationMinutes)

	_, err = svc.GetService(context.Background(), 3)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.GetService(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	services.err = errors.New("connection refused")
	_, err = svc.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ListStaff(t *testing.T) {
	svc := newService(&fakeServices{}, &fakeStaff{staff: []*domain.Staff{
		{ID: 5, DisplayName: "Maria", Role: domain.RoleStaff, Active: true},
		{ID: 2, DisplayName: "Olga", Role: domain.RoleAdmin, Active: true},
	}})

	resp, err := svc.ListStaff(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Staff, 2)
	assert.Equal(t, int64(2), resp.Staff[0].ID)
	assert.Equal(t, "admin", resp.Staff[0].Role)
}

func TestService_GetSettings(t *testing.T) {
	svc := newService(&fakeServices{}, &fakeStaff{})

	resp, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.OpeningTime)
	assert.Equal(t, "18:00", resp.ClosingTime)
	assert.Equal(t, 30, resp.AdvanceBookingDays)
	assert.Equal(t, "UTC", resp.Timezone)

	svc.config.ClosingTime = "08:00"
	_, err = svc.GetSettings(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
