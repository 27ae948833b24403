package user

import (
	"context"
	"errors"

	userdomain "github.com/prashast-singh/to-do/internal/user/domain"
	userrepo "github.com/prashast-singh/to-do/internal/user/repository"
)

var errMismatch = errors.New("password mismatch")

type mockUserRepo struct {
	createFunc         func(ctx context.Context, email, passwordHash string) (userdomain.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (userdomain.User, error)
	findByUUIDFunc     func(ctx context.Context, uuid userdomain.UUID) (userdomain.User, error)
	updatePasswordFunc func(ctx context.Context, uuid userdomain.UUID, passwordHash string) error
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, email, passwordHash)
	}
	return userdomain.User{
		UUID:         "00000000-0000-0000-0000-000000000001",
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByUUID(ctx context.Context, uuid userdomain.UUID) (userdomain.User, error) {
	if m.findByUUIDFunc != nil {
		return m.findByUUIDFunc(ctx, uuid)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, uuid userdomain.UUID, passwordHash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, uuid, passwordHash)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
	hashCalls   int
}

func (m *mockHasher) Hash(password string) (string, error) {
	m.hashCalls++
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash == "hashed:"+password {
		return nil
	}
	return errMismatch
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "jti-1", nil
}
