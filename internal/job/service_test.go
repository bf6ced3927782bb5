package job

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/service-jobboard-go/internal/job/entity"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func jobColumnsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "salary", "equity", "company_handle"})
}

func TestCreateReturnsGeneratedID(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO jobs (title, salary, equity, company_handle) VALUES ($1, $2, $3, $4) RETURNING id, title, salary, equity, company_handle`)).
		WithArgs("c1_job", 150000, "0", "c1").
		WillReturnRows(jobColumnsRows().AddRow(7, "c1_job", 150000, "0", "c1"))

	created, err := svc.Create(context.Background(), &entity.Job{
		Title:         "c1_job",
		Salary:        intPtr(150000),
		Equity:        strPtr("0"),
		CompanyHandle: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "c1_job", created.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO jobs`)).
		WithArgs("c3_job", 90000, "0.05", "c3").
		WillReturnRows(jobColumnsRows().AddRow(3, "c3_job", 90000, "0.05", "c3"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, salary, equity, company_handle FROM jobs WHERE id=$1`)).
		WithArgs(int64(3)).
		WillReturnRows(jobColumnsRows().AddRow(3, "c3_job", 90000, "0.05", "c3"))

	created, err := svc.Create(context.Background(), &entity.Job{
		Title:         "c3_job",
		Salary:        intPtr(90000),
		Equity:        strPtr("0.05"),
		CompanyHandle: "c3",
	})
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithoutFiltersTakesFindAllPath(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, salary, equity, company_handle FROM jobs ORDER BY title`)).
		WillReturnRows(jobColumnsRows().
			AddRow(1, "c1_job", 150000, "0", "c1").
			AddRow(2, "c3_job", 90000, "0.05", "c3"))

	jobs, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "c1_job", jobs[0].Title)
	assert.Equal(t, "c3_job", jobs[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEquityOperatorSelection(t *testing.T) {
	cases := []struct {
		name      string
		minSalary string
		hasEquity string
		wantSQL   string
		wantArg   int
		rows      *sqlmock.Rows
		wantTitle string
	}{
		{
			name:      "hasEquity true keeps only positive equity",
			hasEquity: "true",
			wantSQL:   `WHERE salary >= $1 AND equity > 0 ORDER BY title`,
			wantArg:   0,
			rows:      jobColumnsRows().AddRow(2, "c3_job", 90000, "0.05", "c3"),
			wantTitle: "c3_job",
		},
		{
			name:      "hasEquity false keeps only zero equity",
			hasEquity: "false",
			wantSQL:   `WHERE salary >= $1 AND equity = 0 ORDER BY title`,
			wantArg:   0,
			rows:      jobColumnsRows().AddRow(1, "c1_job", 150000, "0", "c1"),
			wantTitle: "c1_job",
		},
		{
			name:      "minSalary alone leaves equity unfiltered",
			minSalary: "100000",
			wantSQL:   `WHERE salary >= $1 AND equity >= 0 ORDER BY title`,
			wantArg:   100000,
			rows:      jobColumnsRows().AddRow(1, "c1_job", 150000, "0", "c1"),
			wantTitle: "c1_job",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock := newMockService(t)
			mock.ExpectQuery(regexp.QuoteMeta(tc.wantSQL)).
				WithArgs(tc.wantArg).
				WillReturnRows(tc.rows)

			jobs, err := svc.List(context.Background(), tc.minSalary, tc.hasEquity)
			require.NoError(t, err)
			require.Len(t, jobs, 1)
			assert.Equal(t, tc.wantTitle, jobs[0].Title)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListRejectsNonNumericMinSalary(t *testing.T) {
	svc, _ := newMockService(t)
	_, err := svc.List(context.Background(), "plenty", "")
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))
}

func TestGetMissingJobIsNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, salary, equity, company_handle FROM jobs WHERE id=$1`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Contains(t, err.Error(), "99")
}

func TestUpdateReplacesAllFields(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE jobs SET title=$1, salary=$2, equity=$3, company_handle=$4 WHERE id=$5 RETURNING id, title, salary, equity, company_handle`)).
		WithArgs("c1_job_new", 150000, "0", "c1", int64(1)).
		WillReturnRows(jobColumnsRows().AddRow(1, "c1_job_new", 150000, "0", "c1"))

	updated, err := svc.Update(context.Background(), 1, &entity.Job{
		Title:         "c1_job_new",
		Salary:        intPtr(150000),
		Equity:        strPtr("0"),
		CompanyHandle: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1_job_new", updated.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingJobIsNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE jobs SET`)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Update(context.Background(), 42, &entity.Job{Title: "x", CompanyHandle: "c1"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Contains(t, err.Error(), "42")
}

func TestRemove(t *testing.T) {
	t.Run("deletes the row", func(t *testing.T) {
		svc, mock := newMockService(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM jobs WHERE id=$1`)).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, svc.Remove(context.Background(), 1))
	})

	t.Run("missing id is not found", func(t *testing.T) {
		svc, mock := newMockService(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM jobs WHERE id=$1`)).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		err := svc.Remove(context.Background(), 99)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}
