package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/prashast-singh/to-do/internal/common/constants"
	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
	"github.com/prashast-singh/to-do/internal/common/logger"
	"github.com/prashast-singh/to-do/internal/observability/metrics"
	"github.com/prashast-singh/to-do/internal/todo/domain"
	todorepo "github.com/prashast-singh/to-do/internal/todo/repository"
)

type TodoService struct {
	repo todorepo.Repository
	log  *logger.Logger
}

func NewTodoService(repo todorepo.Repository, log *logger.Logger) *TodoService {
	return &TodoService{repo: repo, log: log}
}

func (s *TodoService) Create(ctx context.Context, content, ownerUUID string) (domain.Todo, error) {
	if err := validateContent(content); err != nil {
		return domain.Todo{}, err
	}

	todo, err := s.repo.Create(ctx, content, ownerUUID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_uuid": ownerUUID,
			"action":     "todo_create_failed",
		}).Errorf("create todo failed: %v", err)
		return domain.Todo{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	metrics.TodosCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"todo_id":    todo.ID,
		"owner_uuid": ownerUUID,
		"action":     "todo_created",
	}).Info("todo created")

	return todo, nil
}

// List returns the owner's todos newest-created first; no todos is an empty
// slice, not an error.
func (s *TodoService) List(ctx context.Context, ownerUUID string) ([]domain.Todo, error) {
	todos, err := s.repo.FindByOwner(ctx, ownerUUID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_uuid": ownerUUID,
			"action":     "todo_list_failed",
		}).Errorf("list todos failed: %v", err)
		return nil, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	return todos, nil
}

// Get looks up by (id, owner) in one scoped query. A todo owned by someone
// else surfaces exactly like a missing one.
func (s *TodoService) Get(ctx context.Context, id int64, ownerUUID string) (domain.Todo, error) {
	todo, err := s.repo.FindByIDAndOwner(ctx, id, ownerUUID)
	if err != nil {
		return domain.Todo{}, s.mapLookupError(ctx, err, id, ownerUUID)
	}

	return todo, nil
}

// Update re-validates ownership through the same scoped lookup as Get. When
// content is nil the record is returned unchanged.
func (s *TodoService) Update(ctx context.Context, id int64, ownerUUID string, content *string) (domain.Todo, error) {
	if content == nil {
		return s.Get(ctx, id, ownerUUID)
	}

	if err := validateContent(*content); err != nil {
		return domain.Todo{}, err
	}

	todo, err := s.repo.UpdateContent(ctx, id, ownerUUID, *content)
	if err != nil {
		return domain.Todo{}, s.mapLookupError(ctx, err, id, ownerUUID)
	}

	metrics.TodosUpdated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"todo_id":    id,
		"owner_uuid": ownerUUID,
		"action":     "todo_updated",
	}).Info("todo updated")

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64, ownerUUID string) error {
	if err := s.repo.Delete(ctx, id, ownerUUID); err != nil {
		return s.mapLookupError(ctx, err, id, ownerUUID)
	}

	metrics.TodosDeleted.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"todo_id":    id,
		"owner_uuid": ownerUUID,
		"action":     "todo_deleted",
	}).Info("todo deleted")

	return nil
}

func (s *TodoService) mapLookupError(ctx context.Context, err error, id int64, ownerUUID string) error {
	if errors.Is(err, todorepo.ErrTodoNotFound) {
		metrics.OwnershipRejections.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"todo_id":    id,
			"owner_uuid": ownerUUID,
			"action":     "todo_not_found",
		}).Warn("todo lookup rejected")
		return commonerrors.ErrTodoNotFound
	}

	s.log.WithFields(ctx, logger.Fields{
		"todo_id":    id,
		"owner_uuid": ownerUUID,
		"action":     "todo_store_failed",
	}).Errorf("todo store operation failed: %v", err)
	return commonerrors.ErrStoreUnavailable.WithCause(err)
}

// ErrInvalidContent carries the content bounds in the caller-facing message.
var ErrInvalidContent = commonerrors.NewDomainError(
	"VALIDATION_ERROR",
	commonerrors.CategoryValidation,
	400,
	"content must be between 1 and 500 characters",
)

func validateContent(content string) error {
	length := utf8.RuneCountInString(content)
	if length < constants.TodoContentMinLength || length > constants.TodoContentMaxLength {
		return ErrInvalidContent
	}
	return nil
}
