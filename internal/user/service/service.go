package service

import (
	"context"
	"errors"

	commoncrypto "github.com/prashast-singh/to-do/internal/common/crypto"
	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
	"github.com/prashast-singh/to-do/internal/common/logger"
	"github.com/prashast-singh/to-do/internal/observability/metrics"
	"github.com/prashast-singh/to-do/internal/user/domain"
	userrepo "github.com/prashast-singh/to-do/internal/user/repository"
)

type UserService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	issuer *TokenIssuer
	log    *logger.Logger
}

func NewUserService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	issuer *TokenIssuer,
	log *logger.Logger,
) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		log:    log,
	}
}

type AuthResult struct {
	Identity domain.Identity
	Token    string
}

// Register checks for an existing email before hashing so a duplicate does
// not pay the bcrypt cost. The check is not atomic with the insert; the
// unique constraint closes that race and the violation also maps to
// ErrDuplicateIdentity.
func (s *UserService) Register(ctx context.Context, email, password string) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "register_attempt",
	}).Info("register attempt")

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_email_exists",
		}).Warn("register failed: already exists")
		return AuthResult{}, commonerrors.ErrDuplicateIdentity
	}
	if !errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, commonerrors.ErrInternal.WithCause(err)
	}

	user, err := s.repo.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "register_email_exists",
			}).Warn("register failed: already exists")
			return AuthResult{}, commonerrors.ErrDuplicateIdentity
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   email,
			"user_id": string(user.UUID),
			"action":  "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternal.WithCause(err)
	}

	metrics.RegistrationsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.UUID),
		"action":  "register_success",
	}).Info("register success")

	return AuthResult{Identity: user.Identity(), Token: token}, nil
}

// Login returns the same error for an unknown email and for a wrong
// password; the caller gets no signal which one it was.
func (s *UserService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginFailuresTotal.Inc()
			return AuthResult{}, commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginFailuresTotal.Inc()
		return AuthResult{}, commonerrors.ErrInvalidCredentials
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   email,
			"user_id": string(user.UUID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternal.WithCause(err)
	}

	metrics.LoginsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.UUID),
		"action":  "login_success",
	}).Info("login success")

	return AuthResult{Identity: user.Identity(), Token: token}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, uuid domain.UUID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByUUID(ctx, uuid)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(uuid),
			"action":  "password_change_fetch_failed",
		}).Errorf("password change failed: %v", err)
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(uuid),
			"action":  "password_change_invalid_password",
		}).Warn("password change failed: invalid current password")
		return commonerrors.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return commonerrors.ErrInternal.WithCause(err)
	}

	if err := s.repo.UpdatePassword(ctx, uuid, hash); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(uuid),
			"action":  "password_change_update_failed",
		}).Errorf("password change failed: %v", err)
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	metrics.PasswordChangesTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(uuid),
		"action":  "password_change_success",
	}).Info("password change success")

	return nil
}
