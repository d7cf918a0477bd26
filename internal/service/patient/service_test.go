package patient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository/memory"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

func addPatient(t *testing.T, store *memory.Store, username string) *model.Patient {
	t.Helper()
	ctx := context.Background()
	u := &model.User{Username: username, Role: model.RolePatient, Name: username, Email: username + "@x.com"}
	require.NoError(t, store.Users().Create(ctx, u))
	p := &model.Patient{UserID: u.ID, Gender: "female"}
	require.NoError(t, store.Patients().Create(ctx, p))
	return p
}

func TestListForDoctorIsDistinct(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store)

	alice := addPatient(t, store, "alice")
	carol := addPatient(t, store, "carol")
	addPatient(t, store, "dave")

	for _, a := range []*model.Appointment{
		{PatientID: alice.ID, DoctorID: 1, Status: model.AppointmentStatusPending},
		{PatientID: alice.ID, DoctorID: 1, Status: model.AppointmentStatusCancelled},
		{PatientID: carol.ID, DoctorID: 1, Status: model.AppointmentStatusCompleted},
		{PatientID: carol.ID, DoctorID: 2, Status: model.AppointmentStatusPending},
	} {
		require.NoError(t, store.Appointments().Create(ctx, a))
	}

	patients, err := svc.ListForDoctor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "alice", patients[0].User.Username)
	assert.Equal(t, "carol", patients[1].User.Username)

	none, err := svc.ListForDoctor(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateOwnProfile(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store)
	p := addPatient(t, store, "alice")

	_, err := svc.UpdateOwnProfile(ctx, p.UserID, &model.UpdatePatientRequest{
		Name:       "Alice A.",
		Phone:      "999",
		Gender:     "female",
		BloodGroup: "O+",
		Address:    "1 Main St",
		DOB:        "1990-05-01",
	})
	require.NoError(t, err)

	// An empty date of birth keeps the stored one.
	_, err = svc.UpdateOwnProfile(ctx, p.UserID, &model.UpdatePatientRequest{Name: "Alice A.", BloodGroup: "A-"})
	require.NoError(t, err)

	got, err := svc.GetByUserID(ctx, p.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", got.User.Name)
	assert.Equal(t, "alice@x.com", got.User.Email)
	assert.Equal(t, "A-", got.BloodGroup)
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, "1990-05-01", got.DateOfBirth.Format(model.DateLayout))

	_, err = svc.UpdateOwnProfile(ctx, p.UserID, &model.UpdatePatientRequest{Name: "x", DOB: "May 1st"})
	assert.Equal(t, 400, apperrors.StatusOf(err))

	_, err = svc.UpdateOwnProfile(ctx, 99, &model.UpdatePatientRequest{Name: "x"})
	assert.Equal(t, 404, apperrors.StatusOf(err))
}
