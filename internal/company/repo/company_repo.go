package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openboard/service-jobboard-go/internal/company/entity"
)

// CompanyRepo provides data access for the companies table using sqlx.
type CompanyRepo struct {
	db *sqlx.DB
}

func NewCompanyRepo(db *sqlx.DB) *CompanyRepo { return &CompanyRepo{db: db} }

// EnsureTable creates the companies table if not exists (idempotent).
func (r *CompanyRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS companies (
  handle TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  num_employees INTEGER CHECK (num_employees >= 0),
  logo_url TEXT
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const companyColumns = `handle, name, description, num_employees, logo_url`

// Create inserts a new company row.
func (r *CompanyRepo) Create(ctx context.Context, in *entity.Company) (*entity.Company, error) {
	const q = `INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + companyColumns
	var out entity.Company
	if err := r.db.GetContext(ctx, &out, q, in.Handle, in.Name, in.Description, in.NumEmployees, in.LogoURL); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindAll returns every company ordered by name.
func (r *CompanyRepo) FindAll(ctx context.Context) ([]entity.Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM companies ORDER BY name`
	companies := []entity.Company{}
	if err := r.db.SelectContext(ctx, &companies, q); err != nil {
		return nil, err
	}
	return companies, nil
}

// GetByHandle fetches one company or sql.ErrNoRows.
func (r *CompanyRepo) GetByHandle(ctx context.Context, handle string) (*entity.Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM companies WHERE handle=$1`
	var out entity.Company
	if err := r.db.GetContext(ctx, &out, q, handle); err != nil {
		return nil, err
	}
	return &out, nil
}

// PartialUpdate applies a prebuilt SET clause (see pkg/sqlutil) to one
// company. The handle is bound after the clause's own placeholders.
func (r *CompanyRepo) PartialUpdate(ctx context.Context, handle, setClause string, args []any) (*entity.Company, error) {
	q := fmt.Sprintf(`UPDATE companies SET %s WHERE handle=$%d RETURNING %s`,
		setClause, len(args)+1, companyColumns)
	var out entity.Company
	if err := r.db.GetContext(ctx, &out, q, append(args, handle)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a company and reports how many rows matched.
func (r *CompanyRepo) Delete(ctx context.Context, handle string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE handle=$1`, handle)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
