package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeRepo struct {
	bookings   map[int64]*domain.Booking
	err        error
	lastFilter domain.BookingsFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Booking
	for _, b := range f.bookings {
		if filter.StaffID == nil || *filter.StaffID == b.StaffID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeStaff map[int64]*domain.Staff

func (f fakeStaff) GetStaff(_ context.Context, id int64) (*domain.Staff, error) {
	s, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("staff.repository: %w", domain.ErrStaffNotFound)
	}
	return s, nil
}

func newService() (*Service, *fakeRepo) {
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, StaffID: 10, StartTime: start, DurationMinutes: 30, Status: domain.StatusPending},
		2: {ID: 2, StaffID: 20, StartTime: start, DurationMinutes: 45, Status: domain.StatusApproved, Seen: true},
	}}
	staff := fakeStaff{
		10: {ID: 10, Role: domain.RoleStaff, Active: true},
		20: {ID: 20, Role: domain.RoleStaff, Active: true},
		99: {ID: 99, Role: domain.RoleAdmin, Active: true},
	}
	return NewService(repo, staff, logger.NewNop()), repo
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), 2, 20)
	require.NoError(t, err)
	assert.Equal(t, "Approved", resp.Status)
	assert.True(t, resp.Seen)
	assert.Equal(t, resp.StartTime.Add(45*time.Minute), resp.EndTime)

	_, err = svc.GetByID(context.Background(), 2, 10)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 2, 99)
	assert.NoError(t, err, "admin sees every booking")

	_, err = svc.GetByID(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), 1, 555)
	assert.ErrorIs(t, err, ErrUnknownViewer)

	_, err = svc.GetByID(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrUnknownViewer)
}

func TestService_ListScopesByRole(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{ViewerID: 10})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(10), resp.Bookings[0].StaffID)
	require.NotNil(t, repo.lastFilter.StaffID)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{ViewerID: 99, Status: ptr.Ptr("approved")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Nil(t, repo.lastFilter.StaffID)
	assert.Equal(t, domain.StatusApproved, *repo.lastFilter.Status)
}

func TestService_ListErrors(t *testing.T) {
	svc, repo := newService()
	from := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{ViewerID: 99, Status: ptr.Ptr("Seen")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{ViewerID: 99, From: &from, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.err = errors.New("connection refused")
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{ViewerID: 99})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestFromDomainBookingList_Empty(t *testing.T) {
	resp := models.FromDomainBookingList(nil)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}
