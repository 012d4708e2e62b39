package transition_status

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/keylock"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type memoryStore struct {
	mu        sync.Mutex
	bookings  map[int64]*domain.Booking
	updateErr error
	updates   int
}

func newStore(bookings ...*domain.Booking) *memoryStore {
	s := &memoryStore{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memoryStore) FindForStaffOnDate(_ context.Context, staffID int64, _ time.Time, exclude []domain.BookingStatus) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.StaffID != staffID {
			continue
		}
		excluded := false
		for _, st := range exclude {
			if b.Status == st {
				excluded = true
			}
		}
		if !excluded {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memoryStore) UpdateStatus(_ context.Context, id int64, update domain.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	update.Apply(b)
	s.updates++
	return nil
}

func (s *memoryStore) get(id int64) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.bookings[id]
}

const (
	staffMember int64 = 1
	otherStaff  int64 = 2
	admin       int64 = 7
)

type staffDirectory struct {
	staff map[int64]*domain.Staff
	err   error
}

func newDirectory() *staffDirectory {
	return &staffDirectory{staff: map[int64]*domain.Staff{
		staffMember: {ID: staffMember, Role: domain.RoleStaff, Active: true},
		otherStaff:  {ID: otherStaff, Role: domain.RoleStaff, Active: true},
		admin:       {ID: admin, Role: domain.RoleAdmin, Active: true},
	}}
}

func (d *staffDirectory) GetStaff(_ context.Context, id int64) (*domain.Staff, error) {
	if d.err != nil {
		return nil, d.err
	}
	s, ok := d.staff[id]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	return s, nil
}

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	transitions []string
	conflicts   []string
}

func (m *fakeMetrics) StatusTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

func (m *fakeMetrics) BookingConflict(stage string) {
	m.conflicts = append(m.conflicts, stage)
}

var day = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newUseCase(store *memoryStore) (*UseCase, *fakeMetrics) {
	m := &fakeMetrics{}
	cfg := domain.SchedulingConfig{
		OpeningTime:            "09:00",
		ClosingTime:            "18:00",
		SlotGranularityMinutes: 15,
		DefaultDurationMinutes: 15,
		Location:               time.UTC,
	}
	locker := lock.Instrument(keylock.New(), "memory", time.Second, nil)

	uc := NewUseCase(store, newDirectory(), passTx{}, locker, m, cfg, logger.NewNop())
	uc.timeProvider = fixedTime{now: at(8, 0)}
	return uc, m
}

func booking(id, staffID int64, status domain.BookingStatus, start time.Time) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ServiceID:       1,
		StaffID:         staffID,
		CustomerName:    "Anna",
		PhoneNumber:     "+79001234567",
		StartTime:       start,
		DurationMinutes: 30,
		Status:          status,
	}
}

func TestExecute_LifecycleHappyPath(t *testing.T) {
	store := newStore(booking(1, 1, domain.StatusPending, at(10, 0)))
	uc, m := newUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "Approved", resp.Status)

	resp, err = uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "completed", AdminNotes: ptr.Ptr("done")})
	require.NoError(t, err)
	assert.Equal(t, "Completed", resp.Status)
	assert.Equal(t, "done", *resp.AdminNotes)

	assert.Equal(t, []string{"Pending->Approved", "Approved->Completed"}, m.transitions)
	assert.Equal(t, domain.StatusCompleted, store.get(1).Status)
}

func TestExecute_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.BookingStatus
		status string
	}{
		{name: "rejected to completed", from: domain.StatusRejected, status: "Completed"},
		{name: "pending to completed", from: domain.StatusPending, status: "Completed"},
		{name: "undefined status", from: domain.StatusPending, status: "Cancelled"},
		{name: "completed is terminal", from: domain.StatusCompleted, status: "Approved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(booking(1, 1, tt.from, at(10, 0)))
			uc, _ := newUseCase(store)

			_, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: tt.status})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Zero(t, store.updates)
		})
	}
}

func TestExecute_SeenIsAFlag(t *testing.T) {
	store := newStore(booking(1, 1, domain.StatusRejected, at(10, 0)))
	uc, _ := newUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Seen"})
	require.NoError(t, err)
	assert.True(t, resp.Seen)
	assert.Equal(t, "Rejected", resp.Status)
}

func TestExecute_Suggest(t *testing.T) {
	store := newStore(booking(1, 1, domain.StatusPending, at(10, 0)))
	uc, _ := newUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Suggested"})
	assert.ErrorIs(t, err, ErrSuggestedTimeRequired)

	_, err = uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Suggested", SuggestedTime: ptr.Ptr(at(17, 45))})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot, "ends after closing")

	_, err = uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Suggested", SuggestedTime: ptr.Ptr(at(7, 30))})
	assert.ErrorIs(t, err, ErrTooLateToBook)

	resp, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Suggested", SuggestedTime: ptr.Ptr(at(14, 0))})
	require.NoError(t, err)
	assert.Equal(t, "Suggested", resp.Status)
	assert.Equal(t, at(14, 0), *resp.SuggestedTime)
	assert.Equal(t, at(10, 0), resp.StartTime, "suggestion does not move the booking yet")
}

func TestExecute_AcceptSuggestionReschedules(t *testing.T) {
	b := booking(1, 1, domain.StatusSuggested, at(10, 0))
	b.SuggestedTime = ptr.Ptr(at(14, 0))
	store := newStore(b, booking(2, 1, domain.StatusRejected, at(14, 0)))
	uc, _ := newUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Approved"})
	require.NoError(t, err)

	assert.True(t, resp.Rescheduled)
	assert.Equal(t, at(14, 0), resp.StartTime)
	assert.Equal(t, at(14, 30), resp.EndTime)
	assert.Nil(t, resp.SuggestedTime)
	assert.Equal(t, at(14, 0), store.get(1).StartTime)
}

func TestExecute_AcceptSuggestionConflict(t *testing.T) {
	b := booking(1, 1, domain.StatusSuggested, at(10, 0))
	b.SuggestedTime = ptr.Ptr(at(14, 0))
	store := newStore(b, booking(2, 1, domain.StatusApproved, at(14, 15)))
	uc, m := newUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Approved"})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, []string{"decision"}, m.conflicts)
	assert.Equal(t, domain.StatusSuggested, store.get(1).Status)
}

func TestExecute_AcceptSuggestionOverlappingItself(t *testing.T) {
	b := booking(1, 1, domain.StatusSuggested, at(10, 0))
	b.SuggestedTime = ptr.Ptr(at(10, 15))
	store := newStore(b)
	uc, _ := newUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, at(10, 15), resp.StartTime)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       *Request
		updateErr error
		wantErr   error
	}{
		{name: "bad id", req: &Request{Status: "Approved"}, wantErr: ErrInvalidInput},
		{name: "no status", req: &Request{ActorID: admin, BookingID: 1}, wantErr: ErrInvalidInput},
		{name: "unknown booking", req: &Request{ActorID: admin, BookingID: 9, Status: "Approved"}, wantErr: ErrBookingNotFound},
		{
			name:    "notes too long",
			req:     &Request{ActorID: admin, BookingID: 1, Status: "Approved", AdminNotes: ptr.Ptr(string(make([]byte, domain.MaxAdminNotesLength+1)))},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "serialization failure",
			req:       &Request{ActorID: admin, BookingID: 1, Status: "Approved"},
			updateErr: fmt.Errorf("%w: 40001", txmanager.ErrSerializationFailure),
			wantErr:   ErrSlotConflict,
		},
		{
			name:      "store failure",
			req:       &Request{ActorID: admin, BookingID: 1, Status: "Approved"},
			updateErr: errors.New("connection reset"),
			wantErr:   ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(booking(1, 1, domain.StatusPending, at(10, 0)))
			store.updateErr = tt.updateErr
			uc, _ := newUseCase(store)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ActorPermissions(t *testing.T) {
	tests := []struct {
		name    string
		actorID int64
		wantErr error
	}{
		{name: "own booking", actorID: staffMember},
		{name: "admin", actorID: admin},
		{name: "foreign booking", actorID: otherStaff, wantErr: ErrAccessDenied},
		{name: "unknown staff", actorID: 404, wantErr: ErrUnknownActor},
		{name: "missing staff", actorID: 0, wantErr: ErrUnknownActor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(booking(1, staffMember, domain.StatusPending, at(10, 0)))
			uc, _ := newUseCase(store)

			resp, err := uc.Execute(context.Background(), &Request{ActorID: tt.actorID, BookingID: 1, Status: "Rejected"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, store.updates)
				assert.Equal(t, domain.StatusPending, store.get(1).Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Rejected", resp.Status)
		})
	}
}

func TestExecute_StaffDirectoryFailure(t *testing.T) {
	store := newStore(booking(1, staffMember, domain.StatusPending, at(10, 0)))
	uc, _ := newUseCase(store)
	uc.staff = &staffDirectory{err: errors.New("directory down")}

	_, err := uc.Execute(context.Background(), &Request{ActorID: admin, BookingID: 1, Status: "Approved"})
	assert.ErrorIs(t, err, ErrInternal)
}
