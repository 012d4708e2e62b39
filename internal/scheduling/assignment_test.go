package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestResolver_Assign(t *testing.T) {
	r := NewResolver(0)

	t.Run("skips busy staff", func(t *testing.T) {
		bookings := []*domain.Booking{booking(1, 1, at(10, 0), 30, domain.StatusApproved)}

		staffID, err := r.Assign(NewInterval(at(10, 0), 15*time.Minute), []int64{1, 2}, bookings)
		require.NoError(t, err)
		assert.Equal(t, int64(2), staffID)
	})

	t.Run("first fit", func(t *testing.T) {
		staffID, err := r.Assign(NewInterval(at(10, 0), 15*time.Minute), []int64{3, 5, 7}, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), staffID)
	})

	t.Run("nobody free", func(t *testing.T) {
		bookings := []*domain.Booking{booking(1, 1, at(9, 0), 120, domain.StatusPending)}

		_, err := r.Assign(NewInterval(at(10, 0), 15*time.Minute), []int64{1}, bookings)
		assert.ErrorIs(t, err, ErrNoStaffAvailable)
	})

	t.Run("empty roster", func(t *testing.T) {
		_, err := r.Assign(NewInterval(at(10, 0), 15*time.Minute), nil, nil)
		assert.ErrorIs(t, err, ErrNoStaffAvailable)
	})

	t.Run("deterministic", func(t *testing.T) {
		bookings := []*domain.Booking{
			booking(1, 1, at(10, 0), 30, domain.StatusApproved),
			booking(2, 3, at(10, 0), 30, domain.StatusRejected),
		}
		roster := SortRoster([]int64{3, 2, 1})
		candidate := NewInterval(at(10, 0), 15*time.Minute)

		first, err := r.Assign(candidate, roster, bookings)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := r.Assign(candidate, roster, bookings)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
		assert.Equal(t, int64(2), first)
	})
}

func TestSortRoster(t *testing.T) {
	in := []int64{5, 1, 3, 1}

	assert.Equal(t, []int64{1, 3, 5}, SortRoster(in))
	assert.Equal(t, []int64{5, 1, 3, 1}, in, "input must not be modified")
	assert.Empty(t, SortRoster(nil))
}
