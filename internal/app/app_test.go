package app_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ehospital/internal/model"
)

func TestPatientBooksAppointment(t *testing.T) {
	a, srv := newServer(t)

	admin := newBrowser(t, srv)
	admin.login("admin", "admin123")
	addDoctorBob(t, admin)

	alice := newBrowser(t, srv)
	registerAlice(t, alice)

	resp := alice.login("alice", "pw1")
	require.Equal(t, "/patient", resp.Path)
	assert.True(t, resp.Contains("Login successful"))

	resp = alice.post("/patient/apt/book/1", url.Values{
		"date":   {"2025-01-01"},
		"time":   {"10:00"},
		"notes":  {"chest pain"},
		"status": {"approved"},
	})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "/patient/apts", resp.Path)
	assert.True(t, resp.Contains("Appointment booked successfully"))
	assert.True(t, resp.Contains("2025-01-01"))
	assert.True(t, resp.Contains("10:00"))
	assert.True(t, resp.Contains("pending"))
	assert.False(t, resp.Contains("approved"))

	appt, err := a.Store.Appointments().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.Equal(t, int64(1), appt.DoctorID)
}

func TestDoctorChangesAppointmentStatus(t *testing.T) {
	a, srv := newServer(t)
	ctx := context.Background()

	admin := newBrowser(t, srv)
	resp := admin.login("admin", "admin123")
	require.Equal(t, "/admin", resp.Path)
	addDoctorBob(t, admin)

	alice := newBrowser(t, srv)
	registerAlice(t, alice)
	alice.login("alice", "pw1")
	alice.post("/patient/apt/book/1", url.Values{"date": {"2025-01-01"}, "time": {"10:00"}})

	bob := newBrowser(t, srv)
	resp = bob.login("drbob", "pw")
	require.Equal(t, "/doctor", resp.Path)

	resp = bob.get("/doctor/apt/1/approve")
	assert.Equal(t, "/doctor/apts", resp.Path)
	assert.True(t, resp.Contains("Appointment approved"))
	appt, err := a.Store.Appointments().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusApproved, appt.Status)

	resp = bob.get("/doctor/apt/1/cancel")
	assert.True(t, resp.Contains("Appointment cancelled"))
	appt, err = a.Store.Appointments().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, appt.Status)

	// No restriction on leaving a terminal status.
	bob.get("/doctor/apt/1/complete")
	appt, err = a.Store.Appointments().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, appt.Status)

	resp = bob.get("/doctor/apt/99/approve")
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestRoleGates(t *testing.T) {
	_, srv := newServer(t)

	anon := newBrowser(t, srv)
	for _, tt := range []struct {
		path    string
		message string
	}{
		{"/admin", "Admin access required"},
		{"/admin/docs", "Admin access required"},
		{"/doctor/apts", "Doctor access required"},
		{"/patient/profile", "Patient access required"},
	} {
		resp := anon.get(tt.path)
		assert.Equal(t, "/", resp.Path, tt.path)
		assert.True(t, resp.Contains(tt.message), tt.path)
	}

	alice := newBrowser(t, srv)
	registerAlice(t, alice)
	alice.login("alice", "pw1")

	resp := alice.get("/admin/pats")
	assert.Equal(t, "/", resp.Path)
	assert.True(t, resp.Contains("Admin access required"))

	resp = alice.get("/doctor")
	assert.True(t, resp.Contains("Doctor access required"))

	resp = alice.get("/patient")
	assert.Equal(t, "/patient", resp.Path)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestLoginFailures(t *testing.T) {
	_, srv := newServer(t)
	b := newBrowser(t, srv)

	resp := b.login("admin", "wrong")
	assert.Equal(t, "/login", resp.Path)
	assert.True(t, resp.Contains("Invalid credentials"))
	assert.Empty(t, b.sessionToken())

	resp = b.login("nobody", "admin123")
	assert.True(t, resp.Contains("Invalid credentials"))
}

func TestRegistrationUniqueness(t *testing.T) {
	a, srv := newServer(t)
	ctx := context.Background()

	b := newBrowser(t, srv)
	registerAlice(t, b)

	resp := b.post("/register", url.Values{
		"username": {"alice"},
		"password": {"other"},
		"name":     {"Other Alice"},
		"email":    {"other@x.com"},
	})
	assert.Equal(t, "/register", resp.Path)
	assert.True(t, resp.Contains("Username already exists"))

	resp = b.post("/register", url.Values{
		"username": {"alice2"},
		"password": {"other"},
		"name":     {"Other Alice"},
		"email":    {"a@x.com"},
	})
	assert.Equal(t, "/register", resp.Path)
	assert.True(t, resp.Contains("Email already exists"))

	_, err := a.Store.Users().GetByUsername(ctx, "alice2")
	assert.Error(t, err)
	patients, err := a.Store.Patients().List(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 1)

	resp = b.post("/register", url.Values{
		"username": {"carol"},
		"password": {"pw"},
		"name":     {"Carol"},
		"email":    {"c@x.com"},
		"role":     {"nurse"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestOverlongFieldsRejected(t *testing.T) {
	a, srv := newServer(t)
	ctx := context.Background()

	b := newBrowser(t, srv)
	resp := b.post("/register", url.Values{
		"username":    {"dave"},
		"password":    {"pw"},
		"name":        {"Dave"},
		"email":       {"d@x.com"},
		"phone":       {"+1 (555) 123-456789"},
		"gender":      {"male"},
		"blood_group": {"A+"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.True(t, resp.Contains("phone must be at most 15 characters"), resp.Body)

	resp = b.post("/register", url.Values{
		"username":    {"dave"},
		"password":    {"pw"},
		"name":        {"Dave"},
		"email":       {"d@x.com"},
		"blood_group": {"AB positive"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	_, err := a.Store.Users().GetByUsername(ctx, "dave")
	assert.Error(t, err)

	registerAlice(t, b)
	b.login("alice", "pw1")
	resp = b.post("/patient/profile", url.Values{
		"name":   {"Alice"},
		"gender": {"prefer not to say"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	p, err := a.Store.Patients().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "female", p.Gender)

	admin := newBrowser(t, srv)
	admin.login("admin", "admin123")
	resp = admin.post("/admin/doc/add", url.Values{
		"username":       {"drlong"},
		"password":       {"pw"},
		"name":           {"Long"},
		"email":          {"l@x.com"},
		"phone":          {"555-0100-555-0100"},
		"specialization": {"Cardiology"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	_, err = a.Store.Users().GetByUsername(ctx, "drlong")
	assert.Error(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	_, srv := newServer(t)

	b := newBrowser(t, srv)
	b.login("admin", "admin123")
	token := b.sessionToken()
	require.NotEmpty(t, token)

	resp := b.get("/logout")
	assert.Equal(t, "/", resp.Path)
	assert.True(t, resp.Contains("Logged out successfully"))
	assert.Empty(t, b.sessionToken())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/admin", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	noFollow := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	r, err := noFollow.Do(req)
	require.NoError(t, err)
	defer r.Body.Close()
	assert.Equal(t, http.StatusFound, r.StatusCode)
	assert.Equal(t, "/", r.Header.Get("Location"))
}

func TestAdminManagesDoctors(t *testing.T) {
	a, srv := newServer(t)
	ctx := context.Background()

	admin := newBrowser(t, srv)
	admin.login("admin", "admin123")
	addDoctorBob(t, admin)

	resp := admin.post("/admin/doc/add", url.Values{
		"username":       {"drbob"},
		"password":       {"pw"},
		"name":           {"Bob Again"},
		"email":          {"bob2@x.com"},
		"specialization": {"Cardiology"},
	})
	assert.Equal(t, "/admin/doc/add", resp.Path)
	assert.True(t, resp.Contains("Username already exists"))

	resp = admin.post("/admin/doc/edit/1", url.Values{
		"name":           {"Robert"},
		"email":          {"robert@x.com"},
		"phone":          {"555-0300"},
		"specialization": {"Neurology"},
		"experience":     {"12"},
		"fee":            {"650"},
		"availability":   {"Weekends"},
	})
	assert.Equal(t, "/admin/docs", resp.Path)
	assert.True(t, resp.Contains("Doctor updated successfully"))
	assert.True(t, resp.Contains("Neurology"))

	resp = admin.post("/admin/doc/add", url.Values{
		"username":       {"drcarol"},
		"password":       {"pw"},
		"name":           {"Carol"},
		"email":          {"c@x.com"},
		"specialization": {"Oncology"},
		"fee":            {"cheap"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = admin.get("/admin/doc/edit/42")
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = admin.get("/admin")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Contains("Robert"))

	_, err := a.Store.Doctors().Get(ctx, 1)
	require.NoError(t, err)
}

func TestDeletingDoctorKeepsAppointmentsAndRecords(t *testing.T) {
	a, srv := newServer(t)
	ctx := context.Background()

	admin := newBrowser(t, srv)
	admin.login("admin", "admin123")
	addDoctorBob(t, admin)

	alice := newBrowser(t, srv)
	registerAlice(t, alice)
	alice.login("alice", "pw1")
	alice.post("/patient/apt/book/1", url.Values{"date": {"2025-01-01"}, "time": {"10:00"}})

	bob := newBrowser(t, srv)
	bob.login("drbob", "pw")
	resp := bob.post("/doctor/rec/add/1", url.Values{"diagnosis": {"Flu"}, "prescription": {"Rest"}})
	assert.Equal(t, "/doctor/recs", resp.Path)
	assert.True(t, resp.Contains("Medical record added"))

	resp = admin.get("/admin/doc/delete/1")
	assert.Equal(t, "/admin/docs", resp.Path)
	assert.True(t, resp.Contains("Doctor deleted successfully"))

	_, err := a.Store.Users().GetByUsername(ctx, "drbob")
	assert.Error(t, err)

	appts, err := a.Store.Appointments().List(ctx, &model.AppointmentFilters{})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, int64(1), appts[0].DoctorID)

	recs, err := a.Store.MedicalRecords().List(ctx, &model.MedicalRecordFilters{PatientID: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	resp = admin.get("/admin/apts")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Contains("2025-01-01"))

	resp = alice.get("/patient/recs")
	assert.True(t, resp.Contains("Flu"))

	resp = admin.get("/admin/doc/delete/1")
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestPatientWorkflows(t *testing.T) {
	a, srv := newServer(t)
	ctx := context.Background()

	admin := newBrowser(t, srv)
	admin.login("admin", "admin123")
	addDoctorBob(t, admin)

	alice := newBrowser(t, srv)
	registerAlice(t, alice)
	alice.login("alice", "pw1")

	resp := alice.get("/patient/docs")
	assert.True(t, resp.Contains("Cardiology"))

	resp = alice.get("/patient/apt/book/7")
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = alice.post("/patient/apt/book/1", url.Values{"date": {"01/01/2025"}, "time": {"10:00"}})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = alice.post("/patient/apt/book/1", url.Values{"date": {"2025-01-01"}})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	alice.post("/patient/apt/book/1", url.Values{"date": {"2025-01-01"}, "time": {"10:00"}})
	resp = alice.get("/patient/apt/cancel/1")
	assert.Equal(t, "/patient/apts", resp.Path)
	assert.True(t, resp.Contains("Appointment cancelled"))
	assert.True(t, resp.Contains("cancelled"))

	resp = alice.post("/patient/profile", url.Values{
		"name":        {"Alice A."},
		"phone":       {"555-0199"},
		"gender":      {"female"},
		"blood_group": {"AB-"},
		"address":     {"1 Main St"},
	})
	assert.Equal(t, "/patient/profile", resp.Path)
	assert.True(t, resp.Contains("Profile updated"))

	p, err := a.Store.Patients().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", p.User.Name)
	assert.Equal(t, "AB-", p.BloodGroup)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, "1990-05-01", p.DateOfBirth.Format(model.DateLayout))
}

func TestDoctorWithoutProfileSeesEmptyLists(t *testing.T) {
	_, srv := newServer(t)

	b := newBrowser(t, srv)
	resp := b.post("/register", url.Values{
		"username": {"drdave"},
		"password": {"pw"},
		"name":     {"Dave"},
		"email":    {"d@x.com"},
		"role":     {"doctor"},
	})
	require.Equal(t, "/login", resp.Path)

	resp = b.login("drdave", "pw")
	assert.Equal(t, "/doctor", resp.Path)
	assert.Equal(t, http.StatusOK, resp.Status)

	for _, path := range []string{"/doctor/apts", "/doctor/pats", "/doctor/recs", "/doctor/profile"} {
		resp = b.get(path)
		assert.Equal(t, http.StatusOK, resp.Status, path)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	_, srv := newServer(t)
	b := newBrowser(t, srv)

	resp := b.get("/health")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Contains(`"UP"`))

	resp = b.get("/ready")
	assert.Equal(t, http.StatusOK, resp.Status)

	b.get("/")
	resp = b.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Contains("ehospital_http_requests_total"))
}

func TestConfiguredBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxBodySize = 512
	a, srv := newServerWith(t, cfg)

	b := newBrowser(t, srv)
	resp := b.post("/register", url.Values{
		"username": {"erin"},
		"password": {"pw"},
		"name":     {"Erin"},
		"email":    {"e@x.com"},
		"address":  {strings.Repeat("a", 1024)},
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Status)

	_, err := a.Store.Users().GetByUsername(context.Background(), "erin")
	assert.Error(t, err)

	resp = b.post("/register", url.Values{
		"username": {"erin"},
		"password": {"pw"},
		"name":     {"Erin"},
		"email":    {"e@x.com"},
	})
	assert.Equal(t, "/login", resp.Path)
}
