package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCompanyRepo(db)
	cols := []string{"company_id", "name", "address", "contact_email", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies ORDER BY name, company_id")).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("c-1", "Acme", "1 Main St", nil, ts("08:00"), ts("08:00")).
			AddRow("c-2", "Globex", nil, "ops@globex.example", ts("08:00"), ts("09:00")))
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Address)
	assert.Equal(t, "1 Main St", *all[0].Address)
	assert.Nil(t, all[0].ContactEmail)
	assert.Nil(t, all[1].Address)

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE company_id = ?")).WithArgs("c-9").
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.GetByID(context.Background(), "c-9")
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE company_id = ?")).WithArgs("c-1").
		WillReturnError(errors.New("boom"))
	_, err = repo.GetByID(context.Background(), "c-1")
	assert.EqualError(t, err, "boom")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacilityRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFacilityRepo(db)
	cols := []string{"facility_id", "name", "type", "capacity", "location", "management_policy", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM facilities WHERE facility_id = ?")).WithArgs("f-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("f-1", "Room A", "meeting_room", 8, "3F", "front desk", ts("08:00"), ts("08:00")))
	f, err := repo.GetByID(context.Background(), "f-1")
	require.NoError(t, err)
	assert.Equal(t, 8, f.Capacity)
	require.NotNil(t, f.ManagementPolicy)
	assert.Equal(t, "front desk", *f.ManagementPolicy)

	mock.ExpectQuery(regexp.QuoteMeta("FROM facilities WHERE facility_id = ?")).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	mock.ExpectQuery(regexp.QuoteMeta("FROM facilities ORDER BY name, facility_id")).
		WillReturnRows(sqlmock.NewRows(cols))
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)
	cols := []string{"user_id", "name", "email", "company_id", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id=? LIMIT 1")).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u-1", "Hanako", "hanako@example.com", "c-1", ts("08:00")))
	u, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "hanako@example.com", u.Email)
	require.NotNil(t, u.CompanyID)
	assert.Equal(t, "c-1", *u.CompanyID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id=? LIMIT 1")).WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.GetByID(context.Background(), "u-2")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
