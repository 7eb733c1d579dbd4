package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-backend/internal/domains/appointment/model"
	doctorModel "clinic-backend/internal/domains/doctor/model"
	patientModel "clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/shared"
	"clinic-backend/internal/shared/apperror"
)

// =====================================================
// FAKES
// =====================================================

type fakeAppointments struct {
	items map[uuid.UUID]*model.Appointment
	order []uuid.UUID
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{items: make(map[uuid.UUID]*model.Appointment)}
}

func clone(a *model.Appointment) *model.Appointment {
	cp := *a
	cp.DoctorIDs = append([]uuid.UUID(nil), a.DoctorIDs...)
	return &cp
}

func (f *fakeAppointments) filter(keep func(*model.Appointment) bool) []*model.Appointment {
	out := make([]*model.Appointment, 0)
	for _, id := range f.order {
		if a, ok := f.items[id]; ok && keep(a) {
			out = append(out, clone(a))
		}
	}
	return out
}

func (f *fakeAppointments) Create(_ context.Context, a *model.Appointment) (*model.Appointment, error) {
	cp := clone(a)
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	f.items[cp.ID] = cp
	f.order = append(f.order, cp.ID)
	return clone(cp), nil
}

func (f *fakeAppointments) GetByID(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, model.ErrAppointmentNotFound
	}
	return clone(a), nil
}

func (f *fakeAppointments) List(_ context.Context) ([]*model.Appointment, error) {
	return f.filter(func(*model.Appointment) bool { return true }), nil
}

func (f *fakeAppointments) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return f.filter(func(a *model.Appointment) bool {
		for _, id := range a.DoctorIDs {
			if id == doctorID {
				return true
			}
		}
		return false
	}), nil
}

func (f *fakeAppointments) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return f.filter(func(a *model.Appointment) bool { return a.PatientID == patientID }), nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, model.ErrAppointmentNotFound
	}
	a.Status = status
	return clone(a), nil
}

func (f *fakeAppointments) UpdateTime(_ context.Context, id uuid.UUID, at time.Time) (*model.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, model.ErrAppointmentNotFound
	}
	a.AppointmentTime = at
	return clone(a), nil
}

func (f *fakeAppointments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return model.ErrAppointmentNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeDoctors map[uuid.UUID]*doctorModel.Doctor

func (f fakeDoctors) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*doctorModel.Doctor, error) {
	out := make([]*doctorModel.Doctor, 0, len(ids))
	for _, id := range ids {
		if d, ok := f[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakePatients map[uuid.UUID]*patientModel.Patient

func (f fakePatients) GetByID(_ context.Context, id uuid.UUID) (*patientModel.Patient, error) {
	p, ok := f[id]
	if !ok {
		return nil, patientModel.ErrPatientNotFound
	}
	return p, nil
}

type recordingPublisher struct {
	events []shared.AppointmentEventPayload
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e shared.AppointmentEventPayload) error {
	p.events = append(p.events, e)
	return p.err
}

type fakeEvents struct {
	events []*model.AppointmentEvent
}

func (f *fakeEvents) ListByAppointment(_ context.Context, id uuid.UUID) ([]*model.AppointmentEvent, error) {
	out := make([]*model.AppointmentEvent, 0)
	for _, e := range f.events {
		if e.AppointmentID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

// =====================================================
// FIXTURE
// =====================================================

type fixture struct {
	svc       ServiceInterface
	repo      *fakeAppointments
	publisher *recordingPublisher
	events    *fakeEvents
	patient   *patientModel.Patient
	house     *doctorModel.Doctor
	wilson    *doctorModel.Doctor
}

func newFixture() *fixture {
	patient := &patientModel.Patient{ID: uuid.New(), FirstName: "Jane", LastName: "Doe", MiddleName: "Ann",
		DateOfBirth: time.Date(1990, 3, 7, 0, 0, 0, 0, time.UTC)}
	house := &doctorModel.Doctor{ID: uuid.New(), Username: "ghouse", FirstName: "Gregory", LastName: "House"}
	wilson := &doctorModel.Doctor{ID: uuid.New(), Username: "jwilson", FirstName: "James", LastName: "Wilson"}

	f := &fixture{
		repo:      newFakeAppointments(),
		publisher: &recordingPublisher{},
		events:    &fakeEvents{},
		patient:   patient,
		house:     house,
		wilson:    wilson,
	}
	f.svc = NewAppointmentService(
		f.repo,
		fakeDoctors{house.ID: house, wilson.ID: wilson},
		fakePatients{patient.ID: patient},
		f.publisher,
		f.events,
	)
	return f
}

func (f *fixture) request(doctors ...uuid.UUID) model.CreateAppointmentRequest {
	at := shared.NewLocalDateTime(time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC))
	pid := f.patient.ID
	return model.CreateAppointmentRequest{
		AppointmentTime: &at,
		Status:          model.StatusScheduled,
		PatientID:       &pid,
		DoctorIDs:       doctors,
	}
}

func (f *fixture) book(t *testing.T, actor string) *model.AppointmentResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.request(f.house.ID), actor)
	require.NoError(t, err)
	return resp
}

// =====================================================
// TESTS
// =====================================================

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates patient and doctors and records the creator", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.Create(ctx, f.request(f.house.ID, f.wilson.ID), "ghouse")
		require.NoError(t, err)
		assert.Equal(t, "ghouse", resp.CreatedBy)
		assert.Equal(t, model.StatusScheduled, resp.Status)
		assert.Equal(t, "2024-03-07T10:00:00", resp.AppointmentTime.String())
		require.NotNil(t, resp.Patient)
		assert.Equal(t, f.patient.ID, resp.Patient.ID)
		assert.Len(t, resp.Doctors, 2)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, shared.EventAppointmentCreated, f.publisher.events[0].EventType)
		assert.Equal(t, "ghouse", f.publisher.events[0].Actor)
	})

	t.Run("duplicate doctor ids are collapsed", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.Create(ctx, f.request(f.house.ID, f.house.ID), "ghouse")
		require.NoError(t, err)
		assert.Len(t, resp.Doctors, 1)
		assert.Len(t, f.repo.items[resp.ID].DoctorIDs, 1)
	})

	t.Run("unknown patient", func(t *testing.T) {
		f := newFixture()
		req := f.request(f.house.ID)
		other := uuid.New()
		req.PatientID = &other

		_, err := f.svc.Create(ctx, req, "ghouse")
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
		assert.Equal(t, model.ErrCodePatientNotFound, appErr.Code)
		assert.Empty(t, f.repo.items)
	})

	t.Run("any unknown doctor fails the whole request", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, f.request(f.house.ID, uuid.New()), "ghouse")
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, model.ErrCodeDoctorNotFound, appErr.Code)
		assert.Empty(t, f.repo.items)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("validation failures are reported per field", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, model.CreateAppointmentRequest{Status: "Pending"}, "ghouse")
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		for _, field := range []string{"appointmentTime", "status", "patientId", "doctorIds"} {
			assert.Contains(t, appErr.Fields, field)
		}
	})

	t.Run("long usernames are kept verbatim", func(t *testing.T) {
		f := newFixture()
		actor := strings.Repeat("a", 40) + ".clinic-staff@example.org"

		resp, err := f.svc.Create(ctx, f.request(f.house.ID), actor)
		require.NoError(t, err)
		assert.Equal(t, actor, resp.CreatedBy)

		got, err := f.svc.Cancel(ctx, resp.ID, actor)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
		require.Len(t, f.publisher.events, 2)
		assert.Equal(t, actor, f.publisher.events[1].Actor)
	})

	t.Run("publisher failure does not fail the request", func(t *testing.T) {
		f := newFixture()
		f.publisher.err = errors.New("redis down")

		resp, err := f.svc.Create(ctx, f.request(f.house.ID), "ghouse")
		require.NoError(t, err)
		assert.Contains(t, f.repo.items, resp.ID)
	})
}

func TestGet(t *testing.T) {
	f := newFixture()
	created := f.book(t, "ghouse")

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.Get(context.Background(), uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.book(t, "ghouse")
	_, err := f.svc.Create(ctx, f.request(f.wilson.ID), "jwilson")
	require.NoError(t, err)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byHouse, err := f.svc.ListByDoctor(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Len(t, byHouse, 1)

	byPatient, err := f.svc.ListByPatient(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)

	none, err := f.svc.ListByDoctor(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("creator cancels and may cancel again", func(t *testing.T) {
		f := newFixture()
		created := f.book(t, "ghouse")

		got, err := f.svc.Cancel(ctx, created.ID, "ghouse")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)

		got, err = f.svc.Cancel(ctx, created.ID, "ghouse")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
	})

	t.Run("other users are forbidden and nothing changes", func(t *testing.T) {
		f := newFixture()
		created := f.book(t, "ghouse")

		_, err := f.svc.Cancel(ctx, created.ID, "jwilson")
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
		assert.Equal(t, model.ErrCodeNotCreator, appErr.Code)
		assert.Equal(t, model.StatusScheduled, f.repo.items[created.ID].Status)
	})

	t.Run("unknown id is not found before authorization", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Cancel(ctx, uuid.New(), "anyone")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("creator deletes", func(t *testing.T) {
		f := newFixture()
		created := f.book(t, "ghouse")

		require.NoError(t, f.svc.Delete(ctx, created.ID, "ghouse"))
		assert.NotContains(t, f.repo.items, created.ID)
		last := f.publisher.events[len(f.publisher.events)-1]
		assert.Equal(t, shared.EventAppointmentDeleted, last.EventType)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		f := newFixture()
		created := f.book(t, "ghouse")

		err := f.svc.Delete(ctx, created.ID, "jwilson")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		assert.Contains(t, f.repo.items, created.ID)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	newTime := shared.NewLocalDateTime(time.Date(2024, 4, 1, 15, 30, 0, 0, time.UTC))

	t.Run("creator reschedules", func(t *testing.T) {
		f := newFixture()
		created := f.book(t, "ghouse")

		got, err := f.svc.Update(ctx, created.ID, model.UpdateAppointmentRequest{AppointmentTime: &newTime}, "ghouse")
		require.NoError(t, err)
		assert.Equal(t, "2024-04-01T15:30:00", got.AppointmentTime.String())
		assert.Equal(t, model.StatusScheduled, got.Status)
		assert.Len(t, got.Doctors, 1)
	})

	t.Run("missing time is an invalid argument", func(t *testing.T) {
		f := newFixture()
		created := f.book(t, "ghouse")

		_, err := f.svc.Update(ctx, created.ID, model.UpdateAppointmentRequest{}, "ghouse")
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindInvalidArgument, appErr.Kind)
		assert.Equal(t, model.ErrCodeMissingTime, appErr.Code)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		f := newFixture()
		created := f.book(t, "ghouse")

		_, err := f.svc.Update(ctx, created.ID, model.UpdateAppointmentRequest{AppointmentTime: &newTime}, "jwilson")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		assert.Equal(t, 2024, f.repo.items[created.ID].AppointmentTime.Year())
		assert.Equal(t, time.March, f.repo.items[created.ID].AppointmentTime.Month())
	})
}

func TestHistory(t *testing.T) {
	f := newFixture()
	created := f.book(t, "ghouse")
	f.events.events = []*model.AppointmentEvent{
		{AppointmentID: created.ID, EventType: string(shared.EventAppointmentCreated), Actor: "ghouse"},
		{AppointmentID: uuid.New(), EventType: string(shared.EventAppointmentCreated), Actor: "other"},
	}

	got, err := f.svc.History(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = f.svc.History(context.Background(), uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
