package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransition(t *testing.T) {
	statuses := []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusApproved,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			a := &Appointment{Status: from}
			require.NoError(t, a.Transition(to), "%s -> %s", from, to)
			assert.Equal(t, to, a.Status)
		}
	}

	a := &Appointment{Status: AppointmentStatusApproved}
	assert.Error(t, a.Transition("rescheduled"))
	assert.Equal(t, AppointmentStatusApproved, a.Status)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RolePatient, false},
		{"patient", RolePatient, false},
		{"doctor", RoleDoctor, false},
		{"admin", RoleAdmin, false},
		{"Admin", "", true},
		{"nurse", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/admin", RoleAdmin.DashboardPath())
	assert.Equal(t, "/doctor", RoleDoctor.DashboardPath())
	assert.Equal(t, "/patient", RolePatient.DashboardPath())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/01/2025")
	assert.Error(t, err)

	// Only the zero-padded form is accepted.
	_, err = ParseDate("2025-1-1")
	assert.Error(t, err)

	today := Today()
	assert.Zero(t, today.Hour())
	assert.Equal(t, time.UTC, today.Location())
}
