//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-backend/internal/domains/doctor/model"
	"clinic-backend/internal/infrastructure/database/dbtest"
)

func newTestRepository(t *testing.T) (RepositoryInterface, *dbtest.MemoryCache) {
	t.Helper()
	pool := dbtest.NewPool(t, nil)
	c := dbtest.NewMemoryCache()
	return NewPostgresRepository(pool, c, time.Minute), c
}

func seedDoctors(t *testing.T, repo RepositoryInterface, doctors ...*model.Doctor) []*model.Doctor {
	t.Helper()
	out := make([]*model.Doctor, 0, len(doctors))
	for _, d := range doctors {
		created, err := repo.Create(context.Background(), d)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func usernames(doctors []*model.Doctor) []string {
	names := make([]string, 0, len(doctors))
	for _, d := range doctors {
		names = append(names, d.Username)
	}
	return names
}

func TestPostgresRepository_Search(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	seedDoctors(t, repo,
		&model.Doctor{Username: "ghouse", FirstName: "Gregory", LastName: "House"},
		&model.Doctor{Username: "jwilson", FirstName: "James", LastName: "Wilson"},
		&model.Doctor{Username: "lcuddy", FirstName: "Lisa", LastName: "Cuddy"},
		&model.Doctor{Username: "pct_100", FirstName: "Percy", LastName: "Hundred"},
	)

	cases := []struct {
		term string
		want []string
	}{
		{"HOUSE", []string{"ghouse"}},
		{"gregory house", []string{"ghouse"}},
		{"wilson JAMES", []string{"jwilson"}},
		{"cudd", []string{"lcuddy"}},
		{"jwil", []string{"jwilson"}},
		{"s", []string{"lcuddy", "ghouse", "jwilson"}},
		{"_", []string{"pct_100"}},
		{"%", []string{}},
		{"nobody", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			got, err := repo.Search(ctx, tc.term)
			require.NoError(t, err)
			assert.Equal(t, tc.want, usernames(got))
		})
	}
}

func TestPostgresRepository_CreateAndUpdateUniqueness(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	seeded := seedDoctors(t, repo,
		&model.Doctor{Username: "ghouse", FirstName: "Gregory", LastName: "House"},
		&model.Doctor{Username: "jwilson", FirstName: "James", LastName: "Wilson"},
	)

	_, err := repo.Create(ctx, &model.Doctor{Username: "ghouse", FirstName: "Other", LastName: "House"})
	assert.ErrorIs(t, err, model.ErrUsernameTaken)

	clash := *seeded[1]
	clash.Username = "ghouse"
	_, err = repo.Update(ctx, &clash)
	assert.ErrorIs(t, err, model.ErrUsernameTaken)

	exists, err := repo.ExistsByUsername(ctx, "jwilson")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresRepository_GetByIDCachesAndUpdateInvalidates(t *testing.T) {
	repo, c := newTestRepository(t)
	ctx := context.Background()

	d := seedDoctors(t, repo, &model.Doctor{Username: "ghouse", FirstName: "Gregory", LastName: "House"})[0]
	key := doctorCacheKeyPrefix + d.ID.String()

	_, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, c.Has(key))

	d.LastName = "Housego"
	_, err = repo.Update(ctx, d)
	require.NoError(t, err)
	assert.False(t, c.Has(key))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Housego", got.LastName)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrDoctorNotFound)
}

func TestPostgresRepository_GetByIDsAndPaging(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	seeded := seedDoctors(t, repo,
		&model.Doctor{Username: "ghouse", FirstName: "Gregory", LastName: "House"},
		&model.Doctor{Username: "jwilson", FirstName: "James", LastName: "Wilson"},
		&model.Doctor{Username: "lcuddy", FirstName: "Lisa", LastName: "Cuddy"},
	)

	got, err := repo.GetByIDs(ctx, []uuid.UUID{seeded[0].ID, seeded[2].ID, uuid.New()})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ghouse", "lcuddy"}, usernames(got))

	page, total, err := repo.ListPaged(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"ghouse", "jwilson"}, usernames(page))
}

func TestPostgresRepository_DeleteGuardedByAppointments(t *testing.T) {
	pool := dbtest.NewPool(t, nil)
	repo := NewPostgresRepository(pool, dbtest.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	d := seedDoctors(t, repo, &model.Doctor{Username: "ghouse", FirstName: "Gregory", LastName: "House"})[0]

	var patientID, appointmentID uuid.UUID
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO patients (first_name, last_name, middle_name, date_of_birth)
		VALUES ('Jane', 'Doe', 'Ann', '1990-03-07') RETURNING id`).Scan(&patientID))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, appointment_time, status, created_by)
		VALUES ($1, '2024-03-07 10:00:00', 'Scheduled', 'ghouse') RETURNING id`, patientID).Scan(&appointmentID))
	_, err := pool.Exec(ctx, `INSERT INTO doctor_appointments (appointment_id, doctor_id) VALUES ($1, $2)`, appointmentID, d.ID)
	require.NoError(t, err)

	count, err := repo.CountAppointments(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.ErrorIs(t, repo.Delete(ctx, d.ID), model.ErrDoctorHasAppointments)

	_, err = pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, appointmentID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, d.ID))
	assert.ErrorIs(t, repo.Delete(ctx, d.ID), model.ErrDoctorNotFound)
}
