package repo

import (
	"context"
	"errors"

	dom "github.com/adi-1080/notesapp/internal/domain"
	"github.com/adi-1080/notesapp/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateEmail is returned by Create when the unique index on
// users.email rejects the insert. The constraint is the authority for
// concurrent registrations; callers must not rely on a pre-check alone.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepo provides account persistence.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (dom.User, error)
	Create(ctx context.Context, email, passwordHash string, fullName *string) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// FindByEmail returns the account by exact (case-sensitive) email.
// Returns pgx.ErrNoRows if no such account exists.
func (r *PGUserRepo) FindByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// Create inserts a new account and returns it. Returns ErrDuplicateEmail
// on a unique-constraint violation.
func (r *PGUserRepo) Create(ctx context.Context, email, passwordHash string, fullName *string) (dom.User, error) {
	query := `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, full_name, password_hash, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, email, fullName, passwordHash).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrDuplicateEmail
		}
		return dom.User{}, err
	}
	return u, nil
}
