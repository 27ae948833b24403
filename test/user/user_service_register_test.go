package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prashast-singh/to-do/internal/common/clock"
	"github.com/prashast-singh/to-do/internal/common/constants"
	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
	"github.com/prashast-singh/to-do/internal/common/logger"
	userdomain "github.com/prashast-singh/to-do/internal/user/domain"
	userrepo "github.com/prashast-singh/to-do/internal/user/repository"
	"github.com/prashast-singh/to-do/internal/user/service"
)

func setupUserService(t *testing.T) (*service.UserService, *mockUserRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	_ = t
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, _ := logger.New("", "test", "info")

	issuer := service.NewTokenIssuer(constants.TestJWTSecret, idGen, constants.TestTokenTTL, mockClock)
	svc := service.NewUserService(repo, hasher, issuer, log)

	return svc, repo, hasher, idGen, mockClock
}

func TestUserService_Register_Success(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	email := "alice@example.com"
	password := "password123"
	hashedPassword := "hashed_password123"

	hasher.hashFunc = func(p string) (string, error) {
		if p != password {
			t.Errorf("expected password %s to be hashed, got %s", password, p)
		}
		return hashedPassword, nil
	}

	repo.createFunc = func(_ context.Context, gotEmail, gotHash string) (userdomain.User, error) {
		if gotEmail != email {
			t.Errorf("expected email %s, got %s", email, gotEmail)
		}
		if gotHash != hashedPassword {
			t.Errorf("expected hash %s, got %s", hashedPassword, gotHash)
		}
		return userdomain.User{
			UUID:         "11111111-1111-1111-1111-111111111111",
			Email:        gotEmail,
			PasswordHash: gotHash,
			CreatedAt:    time.Now(),
		}, nil
	}

	result, err := svc.Register(context.Background(), email, password)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Identity.Email != email {
		t.Errorf("expected identity email %s, got %s", email, result.Identity.Email)
	}
	if result.Identity.UUID == "" {
		t.Error("expected non-empty identity uuid")
	}
	if result.Token == "" {
		t.Error("expected non-empty token")
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(_ context.Context, email string) (userdomain.User, error) {
		return userdomain.User{UUID: "existing", Email: email}, nil
	}

	_, err := svc.Register(context.Background(), "alice@example.com", "password123")
	if !errors.Is(err, commonerrors.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
	if hasher.hashCalls != 0 {
		t.Errorf("expected hasher not to be called for a known duplicate, got %d calls", hasher.hashCalls)
	}
}

func TestUserService_Register_DuplicateOnInsert(t *testing.T) {
	svc, repo, _, _, _ := setupUserService(t)

	// The pre-check misses a concurrent insert; the unique constraint catches it.
	repo.createFunc = func(_ context.Context, _, _ string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrEmailAlreadyExists
	}

	_, err := svc.Register(context.Background(), "alice@example.com", "password123")
	if !errors.Is(err, commonerrors.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestUserService_Register_StoreUnavailable(t *testing.T) {
	svc, repo, _, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(_ context.Context, _ string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection refused")
	}

	_, err := svc.Register(context.Background(), "alice@example.com", "password123")
	if !errors.Is(err, commonerrors.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestUserService_Register_HashFailure(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	hasher.hashFunc = func(_ string) (string, error) {
		return "", errors.New("bcrypt failure")
	}
	repo.createFunc = func(_ context.Context, _, _ string) (userdomain.User, error) {
		t.Error("create must not be called when hashing fails")
		return userdomain.User{}, nil
	}

	_, err := svc.Register(context.Background(), "alice@example.com", "password123")
	if !errors.Is(err, commonerrors.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
