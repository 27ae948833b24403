package todo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	tododomain "github.com/prashast-singh/to-do/internal/todo/domain"
	todorepo "github.com/prashast-singh/to-do/internal/todo/repository"
)

type mockTodoRepo struct {
	createFunc           func(ctx context.Context, content, ownerUUID string) (tododomain.Todo, error)
	findByOwnerFunc      func(ctx context.Context, ownerUUID string) ([]tododomain.Todo, error)
	findByIDAndOwnerFunc func(ctx context.Context, id int64, ownerUUID string) (tododomain.Todo, error)
	updateContentFunc    func(ctx context.Context, id int64, ownerUUID, content string) (tododomain.Todo, error)
	deleteFunc           func(ctx context.Context, id int64, ownerUUID string) error
}

func (m *mockTodoRepo) Create(ctx context.Context, content, ownerUUID string) (tododomain.Todo, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, content, ownerUUID)
	}
	return tododomain.Todo{ID: 1, UUID: uuid.NewString(), Content: content, OwnerUUID: ownerUUID}, nil
}

func (m *mockTodoRepo) FindByOwner(ctx context.Context, ownerUUID string) ([]tododomain.Todo, error) {
	if m.findByOwnerFunc != nil {
		return m.findByOwnerFunc(ctx, ownerUUID)
	}
	return make([]tododomain.Todo, 0), nil
}

func (m *mockTodoRepo) FindByIDAndOwner(ctx context.Context, id int64, ownerUUID string) (tododomain.Todo, error) {
	if m.findByIDAndOwnerFunc != nil {
		return m.findByIDAndOwnerFunc(ctx, id, ownerUUID)
	}
	return tododomain.Todo{}, todorepo.ErrTodoNotFound
}

func (m *mockTodoRepo) UpdateContent(ctx context.Context, id int64, ownerUUID, content string) (tododomain.Todo, error) {
	if m.updateContentFunc != nil {
		return m.updateContentFunc(ctx, id, ownerUUID, content)
	}
	return tododomain.Todo{}, todorepo.ErrTodoNotFound
}

func (m *mockTodoRepo) Delete(ctx context.Context, id int64, ownerUUID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, ownerUUID)
	}
	return todorepo.ErrTodoNotFound
}

// fakeTodoStore mirrors the scoped query semantics of the real repository:
// every lookup and mutation filters by owner, so a foreign row behaves exactly
// like a missing one.
type fakeTodoStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]tododomain.Todo
	now    time.Time
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{
		nextID: 1,
		rows:   make(map[int64]tododomain.Todo),
		now:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeTodoStore) Create(_ context.Context, content, ownerUUID string) (tododomain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = s.now.Add(time.Second)
	todo := tododomain.Todo{
		ID:        s.nextID,
		UUID:      uuid.NewString(),
		Content:   content,
		OwnerUUID: ownerUUID,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.rows[todo.ID] = todo
	s.nextID++
	return todo, nil
}

func (s *fakeTodoStore) FindByOwner(_ context.Context, ownerUUID string) ([]tododomain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := make([]tododomain.Todo, 0)
	// Newest-created first, matching the real query's ordering.
	for id := s.nextID - 1; id >= 1; id-- {
		if t, ok := s.rows[id]; ok && t.OwnerUUID == ownerUUID {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

func (s *fakeTodoStore) FindByIDAndOwner(_ context.Context, id int64, ownerUUID string) (tododomain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.rows[id]
	if !ok || t.OwnerUUID != ownerUUID {
		return tododomain.Todo{}, todorepo.ErrTodoNotFound
	}
	return t, nil
}

func (s *fakeTodoStore) UpdateContent(_ context.Context, id int64, ownerUUID, content string) (tododomain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.rows[id]
	if !ok || t.OwnerUUID != ownerUUID {
		return tododomain.Todo{}, todorepo.ErrTodoNotFound
	}
	s.now = s.now.Add(time.Second)
	t.Content = content
	t.UpdatedAt = s.now
	s.rows[id] = t
	return t, nil
}

func (s *fakeTodoStore) Delete(_ context.Context, id int64, ownerUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.rows[id]
	if !ok || t.OwnerUUID != ownerUUID {
		return todorepo.ErrTodoNotFound
	}
	delete(s.rows, id)
	return nil
}
