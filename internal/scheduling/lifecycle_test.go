package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, s)

	s, err = ParseStatus("Seen")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSeen, s)

	_, err = ParseStatus("Cancelled")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_Table(t *testing.T) {
	tests := []struct {
		from    domain.BookingStatus
		to      string
		wantErr bool
	}{
		{from: domain.StatusPending, to: "Approved"},
		{from: domain.StatusPending, to: "Rejected"},
		{from: domain.StatusApproved, to: "Completed"},
		{from: domain.StatusSuggested, to: "Approved"},
		{from: domain.StatusSuggested, to: "Rejected"},
		{from: domain.StatusRejected, to: "Completed", wantErr: true},
		{from: domain.StatusPending, to: "Completed", wantErr: true},
		{from: domain.StatusApproved, to: "Pending", wantErr: true},
		{from: domain.StatusCompleted, to: "Approved", wantErr: true},
		{from: domain.StatusRejected, to: "Approved", wantErr: true},
		{from: domain.StatusPending, to: "Pending", wantErr: true},
		{from: domain.StatusPending, to: "Archived", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			b := &domain.Booking{ID: 1, Status: tt.from, StartTime: at(10, 0)}
			update, err := Transition(b, TransitionRequest{Status: tt.to})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tt.to), update.Status)
		})
	}
}

func TestTransition_PendingApprovedCompleted(t *testing.T) {
	b := &domain.Booking{ID: 1, Status: domain.StatusPending, StartTime: at(10, 0)}

	update, err := Transition(b, TransitionRequest{Status: "Approved"})
	require.NoError(t, err)
	update.Apply(b)

	update, err = Transition(b, TransitionRequest{Status: "Completed"})
	require.NoError(t, err)
	update.Apply(b)

	assert.Equal(t, domain.StatusCompleted, b.Status)
	assert.True(t, b.IsTerminal())
}

func TestTransition_SeenFromAnyState(t *testing.T) {
	for _, status := range domain.WorkflowStatuses {
		t.Run(string(status), func(t *testing.T) {
			b := &domain.Booking{ID: 1, Status: status, StartTime: at(10, 0)}

			update, err := Transition(b, TransitionRequest{Status: "Seen"})
			require.NoError(t, err)
			assert.Equal(t, status, update.Status, "seen keeps the workflow status")
			assert.True(t, update.Seen)
			assert.Nil(t, update.StartTime)
		})
	}
}

func TestTransition_Suggested(t *testing.T) {
	b := &domain.Booking{ID: 1, Status: domain.StatusPending, StartTime: at(10, 0)}

	_, err := Transition(b, TransitionRequest{Status: "Suggested"})
	assert.ErrorIs(t, err, ErrSuggestedTimeRequired)

	suggested := at(14, 0)
	update, err := Transition(b, TransitionRequest{
		Status:        "Suggested",
		SuggestedTime: &suggested,
		AdminNotes:    ptr.Ptr("busy in the morning"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuggested, update.Status)
	assert.Equal(t, &suggested, update.SuggestedTime)
	assert.Equal(t, "busy in the morning", *update.AdminNotes)
	assert.Nil(t, update.StartTime, "suggesting does not move the booking yet")
}

func TestTransition_AcceptSuggestionReschedules(t *testing.T) {
	suggested := at(14, 0)
	b := &domain.Booking{
		ID:            1,
		Status:        domain.StatusSuggested,
		StartTime:     at(10, 0),
		SuggestedTime: &suggested,
		AdminNotes:    ptr.Ptr("note"),
	}

	update, err := Transition(b, TransitionRequest{Status: "Approved"})
	require.NoError(t, err)

	require.NotNil(t, update.StartTime)
	assert.True(t, update.StartTime.Equal(suggested))
	assert.Nil(t, update.SuggestedTime)
	assert.Equal(t, "note", *update.AdminNotes, "notes are kept when not provided")

	update.Apply(b)
	assert.Equal(t, domain.StatusApproved, b.Status)
	assert.True(t, b.StartTime.Equal(suggested))
}

func TestTransition_DoesNotMutate(t *testing.T) {
	b := &domain.Booking{ID: 1, Status: domain.StatusPending, StartTime: at(10, 0)}

	_, err := Transition(b, TransitionRequest{Status: "Approved", AdminNotes: ptr.Ptr("ok")})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Nil(t, b.AdminNotes)
}
