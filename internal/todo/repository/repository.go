package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/prashast-singh/to-do/internal/common/db"
	"github.com/prashast-singh/to-do/internal/todo/domain"
)

// ErrTodoNotFound is returned both when no row exists and when the row is
// owned by someone else; the repository cannot tell the two apart because
// every query filters by owner server-side.
var ErrTodoNotFound = errors.New("todo not found")

type Repository interface {
	Create(ctx context.Context, content, ownerUUID string) (domain.Todo, error)
	FindByOwner(ctx context.Context, ownerUUID string) ([]domain.Todo, error)
	FindByIDAndOwner(ctx context.Context, id int64, ownerUUID string) (domain.Todo, error)
	UpdateContent(ctx context.Context, id int64, ownerUUID, content string) (domain.Todo, error)
	Delete(ctx context.Context, id int64, ownerUUID string) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, content, ownerUUID string) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO todos (content, owner_uuid)
		 VALUES ($1, $2)
		 RETURNING id, uuid, content, owner_uuid, created_at, updated_at`,
		content,
		ownerUUID,
	)

	var todo domain.Todo
	err := row.Scan(&todo.ID, &todo.UUID, &todo.Content, &todo.OwnerUUID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return domain.Todo{}, db.HandleExecError(err, "create todo", start)
	}

	db.MeasureQueryDuration("create todo", start)
	return todo, nil
}

func (r *PgRepository) FindByOwner(ctx context.Context, ownerUUID string) ([]domain.Todo, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, uuid, content, owner_uuid, created_at, updated_at
		 FROM todos
		 WHERE owner_uuid = $1
		 ORDER BY created_at DESC, id DESC`,
		ownerUUID,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list todos", start)
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.UUID, &t.Content, &t.OwnerUUID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, db.HandleExecError(err, "scan todo", start)
		}
		todos = append(todos, t)
	}

	if rows.Err() != nil {
		return nil, db.HandleExecError(rows.Err(), "list todos", start)
	}

	db.MeasureQueryDuration("list todos", start)
	return todos, nil
}

func (r *PgRepository) FindByIDAndOwner(ctx context.Context, id int64, ownerUUID string) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, uuid, content, owner_uuid, created_at, updated_at
		 FROM todos
		 WHERE id = $1 AND owner_uuid = $2`,
		id,
		ownerUUID,
	)

	var todo domain.Todo
	err := row.Scan(&todo.ID, &todo.UUID, &todo.Content, &todo.OwnerUUID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return domain.Todo{}, db.HandleQueryError(err, ErrTodoNotFound, "find todo by id", start)
	}

	return todo, nil
}

// UpdateContent mutates in a single conditional statement; ownership and
// existence are checked by the same WHERE clause that performs the write.
func (r *PgRepository) UpdateContent(ctx context.Context, id int64, ownerUUID, content string) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE todos
		 SET content = $3, updated_at = now()
		 WHERE id = $1 AND owner_uuid = $2
		 RETURNING id, uuid, content, owner_uuid, created_at, updated_at`,
		id,
		ownerUUID,
		content,
	)

	var todo domain.Todo
	err := row.Scan(&todo.ID, &todo.UUID, &todo.Content, &todo.OwnerUUID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return domain.Todo{}, db.HandleQueryError(err, ErrTodoNotFound, "update todo", start)
	}

	return todo, nil
}

func (r *PgRepository) Delete(ctx context.Context, id int64, ownerUUID string) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM todos WHERE id = $1 AND owner_uuid = $2`,
		id,
		ownerUUID,
	)
	if err != nil {
		return db.HandleExecError(err, "delete todo", start)
	}

	db.MeasureQueryDuration("delete todo", start)
	if tag.RowsAffected() == 0 {
		return ErrTodoNotFound
	}
	return nil
}
