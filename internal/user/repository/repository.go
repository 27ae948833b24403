package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/prashast-singh/to-do/internal/common/db"
	"github.com/prashast-singh/to-do/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUUID(ctx context.Context, uuid domain.UUID) (domain.User, error)
	UpdatePassword(ctx context.Context, uuid domain.UUID, passwordHash string) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Create relies on the database to assign the uuid and created_at. The
// unique constraint on email is the authoritative duplicate check; a 23505
// maps to ErrEmailAlreadyExists so racing registrations cannot both win.
func (r *PgRepository) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING uuid, email, password_hash, created_at`,
		email,
		passwordHash,
	)

	var user domain.User
	err := row.Scan(&user.UUID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			db.MeasureQueryDuration("create user", start)
			return domain.User{}, ErrEmailAlreadyExists
		}
		return domain.User{}, db.HandleExecError(err, "create user", start)
	}

	db.MeasureQueryDuration("create user", start)
	return user, nil
}

// FindByEmail matches the stored email exactly; lookups are case-sensitive.
func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT uuid, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.UUID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, "find user by email", start)
	}

	return user, nil
}

func (r *PgRepository) FindByUUID(ctx context.Context, uuid domain.UUID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT uuid, email, password_hash, created_at FROM users WHERE uuid = $1`,
		string(uuid),
	)

	var user domain.User
	err := row.Scan(&user.UUID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, "find user by uuid", start)
	}

	return user, nil
}

func (r *PgRepository) UpdatePassword(ctx context.Context, uuid domain.UUID, passwordHash string) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET password_hash = $2 WHERE uuid = $1`,
		string(uuid),
		passwordHash,
	)
	if err != nil {
		return db.HandleExecError(err, "update user password", start)
	}

	db.MeasureQueryDuration("update user password", start)
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
