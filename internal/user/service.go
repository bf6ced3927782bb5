package user

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/jmoiron/sqlx"

	"github.com/openboard/service-jobboard-go/internal/user/entity"
	userrepo "github.com/openboard/service-jobboard-go/internal/user/repo"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
	"github.com/openboard/service-jobboard-go/pkg/sqlutil"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// patchColumns maps payload field names whose column name differs.
var patchColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// Patch is a partial user update; only non-nil fields are applied. The
// username itself is immutable.
type Patch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
	IsAdmin   *bool   `json:"isAdmin"`
}

func (p *Patch) fields() []sqlutil.Field {
	var fs []sqlutil.Field
	if p.FirstName != nil {
		fs = append(fs, sqlutil.Field{Name: "firstName", Value: *p.FirstName})
	}
	if p.LastName != nil {
		fs = append(fs, sqlutil.Field{Name: "lastName", Value: *p.LastName})
	}
	if p.Email != nil {
		fs = append(fs, sqlutil.Field{Name: "email", Value: *p.Email})
	}
	if p.IsAdmin != nil {
		fs = append(fs, sqlutil.Field{Name: "isAdmin", Value: *p.IsAdmin})
	}
	return fs
}

// UserService orchestrates account registration, authentication and
// lifecycle flows.
type UserService struct {
	repo   *userrepo.UserRepo
	hasher PasswordHasher
}

func NewUserService(db *sqlx.DB, r *userrepo.UserRepo, hasher PasswordHasher) *UserService {
	if r == nil {
		r = userrepo.NewUserRepo(db)
	}
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &UserService{repo: r, hasher: hasher}
}

// Register creates an account with a hashed password and returns it.
func (s *UserService) Register(ctx context.Context, u *entity.User, password string) (*entity.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = &hash
	return s.repo.Create(ctx, u)
}

// Authenticate verifies a username/password pair. Unknown users and wrong
// passwords fail identically to avoid account enumeration.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.repo.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if u.PasswordHash == nil || !s.hasher.Verify(*u.PasswordHash, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	u.PasswordHash = nil
	return u, nil
}

// Get returns a user by username.
func (s *UserService) Get(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no user: %s", username)
		}
		return nil, err
	}
	return u, nil
}

// Update applies a partial update. An empty patch is a bad request.
func (s *UserService) Update(ctx context.Context, username string, p *Patch) (*entity.User, error) {
	set, args, err := sqlutil.PartialUpdate(p.fields(), patchColumns)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.PartialUpdate(ctx, username, set, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no user: %s", username)
		}
		return nil, err
	}
	return u, nil
}

// Remove deletes an account by username.
func (s *UserService) Remove(ctx context.Context, username string) error {
	rows, err := s.repo.Delete(ctx, username)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("no user: %s", username)
	}
	return nil
}
