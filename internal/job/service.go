package job

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/openboard/service-jobboard-go/internal/job/entity"
	jobrepo "github.com/openboard/service-jobboard-go/internal/job/repo"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

// Service encapsulates job listing and lifecycle logic over the repository.
type Service struct {
	repo *jobrepo.JobRepo
}

func NewService(db *sqlx.DB, r *jobrepo.JobRepo) *Service {
	if r == nil {
		r = jobrepo.NewJobRepo(db)
	}
	return &Service{repo: r}
}

// Create inserts a job and returns it with the generated id.
func (s *Service) Create(ctx context.Context, in *entity.Job) (*entity.Job, error) {
	return s.repo.Create(ctx, in)
}

// List returns jobs matching the optional query filters. When neither
// parameter is supplied the unfiltered path is taken; it yields the same
// rows as filtering with defaults but stays a distinct branch.
func (s *Service) List(ctx context.Context, minSalary, hasEquity string) ([]entity.Job, error) {
	if minSalary == "" && hasEquity == "" {
		return s.repo.FindAll(ctx)
	}
	f, err := ResolveFilter(minSalary, hasEquity)
	if err != nil {
		return nil, err
	}
	return s.repo.FilterBy(ctx, f)
}

// Get returns a job by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Job, error) {
	out, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no job: %d", id)
		}
		return nil, err
	}
	return out, nil
}

// Update replaces all mutable fields of a job.
func (s *Service) Update(ctx context.Context, id int64, in *entity.Job) (*entity.Job, error) {
	out, err := s.repo.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no job: %d", id)
		}
		return nil, err
	}
	return out, nil
}

// Remove deletes a job by id.
func (s *Service) Remove(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("no job: %d", id)
	}
	return nil
}
