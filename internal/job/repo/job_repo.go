package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/openboard/service-jobboard-go/internal/job/entity"
)

// JobRepo provides data access for the jobs table using sqlx.
type JobRepo struct {
	db *sqlx.DB
}

func NewJobRepo(db *sqlx.DB) *JobRepo { return &JobRepo{db: db} }

// EnsureTable creates the jobs table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *JobRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS jobs (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL,
  salary INTEGER CHECK (salary >= 0),
  equity NUMERIC CHECK (equity <= 1.0),
  company_handle TEXT NOT NULL REFERENCES companies(handle) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_jobs_company_handle ON jobs(company_handle);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const jobColumns = `id, title, salary, equity, company_handle`

// Create inserts a new job row and returns it with the generated id.
// Duplicate titles are allowed.
func (r *JobRepo) Create(ctx context.Context, in *entity.Job) (*entity.Job, error) {
	const q = `INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + jobColumns
	var out entity.Job
	if err := r.db.GetContext(ctx, &out, q, in.Title, in.Salary, in.Equity, in.CompanyHandle); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindAll returns every job ordered by title.
func (r *JobRepo) FindAll(ctx context.Context) ([]entity.Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs ORDER BY title`
	jobs := []entity.Job{}
	if err := r.db.SelectContext(ctx, &jobs, q); err != nil {
		return nil, err
	}
	return jobs, nil
}

// FilterBy returns jobs matching the resolved predicate, ordered by title.
// The equity operator comes from a closed enum; only the literal token is
// interpolated, the salary bound is bound positionally.
func (r *JobRepo) FilterBy(ctx context.Context, f entity.Filter) ([]entity.Job, error) {
	op := ">="
	switch f.Equity {
	case entity.EquityPositive:
		op = ">"
	case entity.EquityNone:
		op = "="
	}
	q := `SELECT ` + jobColumns + ` FROM jobs
		WHERE salary >= $1 AND equity ` + op + ` 0
		ORDER BY title`
	jobs := []entity.Job{}
	if err := r.db.SelectContext(ctx, &jobs, q, f.MinSalary); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetByID fetches one job or sql.ErrNoRows.
func (r *JobRepo) GetByID(ctx context.Context, id int64) (*entity.Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`
	var out entity.Job
	if err := r.db.GetContext(ctx, &out, q, id); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces all mutable fields of a job. Returns sql.ErrNoRows when
// the id does not exist.
func (r *JobRepo) Update(ctx context.Context, id int64, in *entity.Job) (*entity.Job, error) {
	const q = `UPDATE jobs SET title=$1, salary=$2, equity=$3, company_handle=$4
		WHERE id=$5
		RETURNING ` + jobColumns
	var out entity.Job
	if err := r.db.GetContext(ctx, &out, q, in.Title, in.Salary, in.Equity, in.CompanyHandle, id); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a job and reports how many rows matched.
func (r *JobRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
