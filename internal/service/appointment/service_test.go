package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository/memory"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

type countingRecorder struct {
	counts map[string]int
}

func (r *countingRecorder) AppointmentStatus(status string) {
	r.counts[status]++
}

type fixture struct {
	store    *memory.Store
	svc      *Service
	recorder *countingRecorder
	patient  *model.Patient
	patientU *model.User
	doctor   *model.Doctor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	pu := &model.User{Username: "alice", Role: model.RolePatient, Name: "Alice", Email: "a@x.com"}
	require.NoError(t, store.Users().Create(ctx, pu))
	p := &model.Patient{UserID: pu.ID}
	require.NoError(t, store.Patients().Create(ctx, p))

	du := &model.User{Username: "drbob", Role: model.RoleDoctor, Name: "Bob", Email: "b@x.com"}
	require.NoError(t, store.Users().Create(ctx, du))
	d := &model.Doctor{UserID: du.ID, Specialization: "Cardiology"}
	require.NoError(t, store.Doctors().Create(ctx, d))

	rec := &countingRecorder{counts: map[string]int{}}
	return &fixture{
		store:    store,
		svc:      NewService(store, rec),
		recorder: rec,
		patient:  p,
		patientU: pu,
		doctor:   d,
	}
}

func TestBookIsAlwaysPending(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	appt, err := f.svc.Book(ctx, f.patientU.ID, f.doctor.ID, &model.BookAppointmentRequest{
		Date:  "2025-01-01",
		Time:  "10:00",
		Notes: "checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.Equal(t, f.patient.ID, appt.PatientID)
	assert.Equal(t, 1, f.recorder.counts["pending"])

	list, err := f.svc.ListForPatient(ctx, f.patient.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].DoctorName)
	assert.Equal(t, "Alice", list[0].PatientName)
	assert.Equal(t, "2025-01-01", list[0].Date.Format(model.DateLayout))
}

func TestBookErrors(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	tests := []struct {
		name     string
		userID   int64
		doctorID int64
		date     string
		status   int
	}{
		{"unknown doctor", f.patientU.ID, 99, "2025-01-01", 404},
		{"no patient profile", 99, f.doctor.ID, "2025-01-01", 404},
		{"bad date", f.patientU.ID, f.doctor.ID, "tomorrow", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Book(ctx, tt.userID, tt.doctorID, &model.BookAppointmentRequest{Date: tt.date, Time: "10:00"})
			assert.Equal(t, tt.status, apperrors.StatusOf(err))
		})
	}

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSetStatusFollowsLastChange(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	appt, err := f.svc.Book(ctx, f.patientU.ID, f.doctor.ID, &model.BookAppointmentRequest{Date: "2025-01-01", Time: "10:00"})
	require.NoError(t, err)

	for _, s := range []model.AppointmentStatus{
		model.AppointmentStatusApproved,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusPending,
		model.AppointmentStatusCancelled,
	} {
		_, err := f.svc.SetStatus(ctx, appt.ID, s)
		require.NoError(t, err)
	}

	got, err := f.store.Appointments().Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)
	assert.Equal(t, 2, f.recorder.counts["cancelled"])
}

func TestSetStatusErrors(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.SetStatus(ctx, 42, model.AppointmentStatusApproved)
	assert.Equal(t, 404, apperrors.StatusOf(err))

	appt, err := f.svc.Book(ctx, f.patientU.ID, f.doctor.ID, &model.BookAppointmentRequest{Date: "2025-01-01", Time: "10:00"})
	require.NoError(t, err)
	_, err = f.svc.SetStatus(ctx, appt.ID, "archived")
	assert.Equal(t, 400, apperrors.StatusOf(err))
}

func TestListForDoctor(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.Book(ctx, f.patientU.ID, f.doctor.ID, &model.BookAppointmentRequest{Date: "2025-01-01", Time: "10:00"})
	require.NoError(t, err)

	mine, err := f.svc.ListForDoctor(ctx, f.doctor.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := f.svc.ListForDoctor(ctx, f.doctor.ID+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}
