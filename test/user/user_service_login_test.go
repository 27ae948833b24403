package user

import (
	"context"
	"errors"
	"testing"
	"time"

	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
	userdomain "github.com/prashast-singh/to-do/internal/user/domain"
	userrepo "github.com/prashast-singh/to-do/internal/user/repository"
)

func TestUserService_Login_Success(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(_ context.Context, email string) (userdomain.User, error) {
		return userdomain.User{
			UUID:         "11111111-1111-1111-1111-111111111111",
			Email:        email,
			PasswordHash: "stored-hash",
			CreatedAt:    time.Now(),
		}, nil
	}
	hasher.compareFunc = func(hash, password string) error {
		if hash != "stored-hash" {
			t.Errorf("expected stored hash to be compared, got %s", hash)
		}
		if password != "password123" {
			t.Errorf("expected submitted password to be compared, got %s", password)
		}
		return nil
	}

	result, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" {
		t.Error("expected non-empty token")
	}
	if result.Identity.Email != "alice@example.com" {
		t.Errorf("expected identity email alice@example.com, got %s", result.Identity.Email)
	}
}

func TestUserService_Login_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(_ context.Context, _ string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(unknownErr, commonerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}

	repo.findByEmailFunc = func(_ context.Context, email string) (userdomain.User, error) {
		return userdomain.User{UUID: "u1", Email: email, PasswordHash: "stored-hash"}, nil
	}
	hasher.compareFunc = func(_, _ string) error {
		return errMismatch
	}
	_, wrongErr := svc.Login(context.Background(), "alice@example.com", "wrongpassword")
	if !errors.Is(wrongErr, commonerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}

	// A caller probing for account existence learns nothing.
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("expected identical error messages, got %q and %q", unknownErr.Error(), wrongErr.Error())
	}
}

func TestUserService_Login_StoreUnavailable(t *testing.T) {
	svc, repo, _, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(_ context.Context, _ string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection refused")
	}

	_, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if !errors.Is(err, commonerrors.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	var storedHash string
	repo.findByUUIDFunc = func(_ context.Context, uuid userdomain.UUID) (userdomain.User, error) {
		return userdomain.User{UUID: uuid, Email: "alice@example.com", PasswordHash: "old-hash"}, nil
	}
	hasher.compareFunc = func(hash, password string) error {
		if hash != "old-hash" || password != "oldpassword1" {
			return errMismatch
		}
		return nil
	}
	hasher.hashFunc = func(p string) (string, error) {
		return "new-hash:" + p, nil
	}
	repo.updatePasswordFunc = func(_ context.Context, _ userdomain.UUID, hash string) error {
		storedHash = hash
		return nil
	}

	err := svc.ChangePassword(context.Background(), "u1", "oldpassword1", "newpassword1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if storedHash != "new-hash:newpassword1" {
		t.Errorf("expected new hash to be stored, got %q", storedHash)
	}
}

func TestUserService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	repo.findByUUIDFunc = func(_ context.Context, uuid userdomain.UUID) (userdomain.User, error) {
		return userdomain.User{UUID: uuid, PasswordHash: "old-hash"}, nil
	}
	hasher.compareFunc = func(_, _ string) error {
		return errMismatch
	}
	repo.updatePasswordFunc = func(_ context.Context, _ userdomain.UUID, _ string) error {
		t.Error("update must not be called when the current password is wrong")
		return nil
	}

	err := svc.ChangePassword(context.Background(), "u1", "wrongpassword", "newpassword1")
	if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
