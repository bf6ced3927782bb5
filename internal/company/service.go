package company

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/openboard/service-jobboard-go/internal/company/entity"
	companyrepo "github.com/openboard/service-jobboard-go/internal/company/repo"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
	"github.com/openboard/service-jobboard-go/pkg/sqlutil"
)

// patchColumns maps payload field names whose column name differs.
var patchColumns = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// Patch is a partial company update; only non-nil fields are applied.
type Patch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,gte=0"`
	LogoURL      *string `json:"logoUrl"`
}

// fields lists the supplied updates in payload field order.
func (p *Patch) fields() []sqlutil.Field {
	var fs []sqlutil.Field
	if p.Name != nil {
		fs = append(fs, sqlutil.Field{Name: "name", Value: *p.Name})
	}
	if p.Description != nil {
		fs = append(fs, sqlutil.Field{Name: "description", Value: *p.Description})
	}
	if p.NumEmployees != nil {
		fs = append(fs, sqlutil.Field{Name: "numEmployees", Value: *p.NumEmployees})
	}
	if p.LogoURL != nil {
		fs = append(fs, sqlutil.Field{Name: "logoUrl", Value: *p.LogoURL})
	}
	return fs
}

// Service encapsulates company lifecycle logic over the repository.
type Service struct {
	repo *companyrepo.CompanyRepo
}

func NewService(db *sqlx.DB, r *companyrepo.CompanyRepo) *Service {
	if r == nil {
		r = companyrepo.NewCompanyRepo(db)
	}
	return &Service{repo: r}
}

// Create inserts a company.
func (s *Service) Create(ctx context.Context, in *entity.Company) (*entity.Company, error) {
	return s.repo.Create(ctx, in)
}

// List returns all companies.
func (s *Service) List(ctx context.Context) ([]entity.Company, error) {
	return s.repo.FindAll(ctx)
}

// Get returns a company by handle.
func (s *Service) Get(ctx context.Context, handle string) (*entity.Company, error) {
	out, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no company: %s", handle)
		}
		return nil, err
	}
	return out, nil
}

// Update applies a partial update. An empty patch is a bad request, not a
// no-op statement.
func (s *Service) Update(ctx context.Context, handle string, p *Patch) (*entity.Company, error) {
	set, args, err := sqlutil.PartialUpdate(p.fields(), patchColumns)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.PartialUpdate(ctx, handle, set, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no company: %s", handle)
		}
		return nil, err
	}
	return out, nil
}

// Remove deletes a company by handle.
func (s *Service) Remove(ctx context.Context, handle string) error {
	rows, err := s.repo.Delete(ctx, handle)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("no company: %s", handle)
	}
	return nil
}
