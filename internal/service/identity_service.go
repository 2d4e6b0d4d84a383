package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-identity/internal/auth"
	"storefront-identity/internal/domain"
	"storefront-identity/internal/repository"
	"storefront-identity/internal/storage"
)

var (
	// ErrValidation indicates malformed or missing required input fields.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials covers both unknown email and password mismatch;
	// callers always see the same failure for either.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRegistrationFailed indicates the store rejected the registration write.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrFederatedAuthFailed indicates the third-party assertion did not verify.
	ErrFederatedAuthFailed = errors.New("federated authentication failed")
	// ErrUnauthorized indicates a bearer token that does not resolve to a user.
	ErrUnauthorized = errors.New("unauthorized")
)

// IdentityService exposes account registration and authentication operations.
// Each call is an independent unit of work; the only shared state is the user
// store and the read-only signing key.
type IdentityService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	FederatedLogin(ctx context.Context, assertion string) (string, *domain.User, error)
	ResolveUser(ctx context.Context, token string) (*domain.User, error)
}

type identityService struct {
	users         repository.UserRepository
	tokens        *auth.TokenIssuer
	verifier      auth.IdentityVerifier
	avatars       storage.AvatarStore
	verifyTimeout time.Duration
	logger        *logrus.Logger
}

// NewIdentityService wires the orchestrator. avatars may be nil, in which case
// federated profile pictures keep their third-party URLs.
func NewIdentityService(
	users repository.UserRepository,
	tokens *auth.TokenIssuer,
	verifier auth.IdentityVerifier,
	avatars storage.AvatarStore,
	verifyTimeout time.Duration,
	logger *logrus.Logger,
) IdentityService {
	if verifyTimeout <= 0 {
		verifyTimeout = 10 * time.Second
	}
	return &identityService{
		users:         users,
		tokens:        tokens,
		verifier:      verifier,
		avatars:       avatars,
		verifyTimeout: verifyTimeout,
		logger:        logger,
	}
}

// Register creates a local account. No uniqueness pre-check is done here;
// a duplicate email is detected by the store at write time.
func (s *identityService) Register(ctx context.Context, firstName, lastName, email, password string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = normalizeEmail(email)

	if firstName == "" || lastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	user := &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return fmt.Errorf("%w: %w", ErrRegistrationFailed, repository.ErrEmailTaken)
		}
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return nil
}

// Login authenticates a local account and issues a bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *identityService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, sanitizeUser(user), nil
}

// FederatedLogin verifies a third-party assertion, reconciles the claimed
// identity against the store, and issues a bearer token for the resulting
// account. Verification failures write nothing.
func (s *identityService) FederatedLogin(ctx context.Context, assertion string) (string, *domain.User, error) {
	if strings.TrimSpace(assertion) == "" {
		return "", nil, fmt.Errorf("%w: assertion token is required", ErrFederatedAuthFailed)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()
	claim, err := s.verifier.Verify(verifyCtx, assertion)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrFederatedAuthFailed, err)
	}
	claim.Email = normalizeEmail(claim.Email)

	existing, err := s.users.GetByEmail(ctx, claim.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	decision, err := auth.Reconcile(claim, existing)
	if err != nil {
		return "", nil, fmt.Errorf("reconcile identity: %w", err)
	}

	user := decision.User
	switch decision.Outcome {
	case auth.OutcomeCreated:
		s.mirrorAvatar(ctx, user)
		if _, err := s.users.Create(ctx, user); err != nil {
			return "", nil, fmt.Errorf("create federated user: %w", err)
		}
		s.logger.WithField("user_id", user.ID).Info("federated user created")
	case auth.OutcomeLinked:
		if err := s.users.LinkFederatedID(ctx, user.ID, user.FederatedID); err != nil {
			return "", nil, fmt.Errorf("link federated identity: %w", err)
		}
		s.logger.WithField("user_id", user.ID).Info("federated identity linked")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, sanitizeUser(user), nil
}

// ResolveUser maps a bearer token back to its account record.
func (s *identityService) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Subject(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return sanitizeUser(user), nil
}

// mirrorAvatar is best effort; a failed copy keeps the third-party URL.
func (s *identityService) mirrorAvatar(ctx context.Context, user *domain.User) {
	if s.avatars == nil || user.ProfilePicture == "" {
		return
	}
	url, err := s.avatars.Mirror(ctx, user.ProfilePicture)
	if err != nil {
		s.logger.WithError(err).Warn("mirror avatar")
		return
	}
	user.ProfilePicture = url
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		FederatedID:     user.FederatedID,
		IsFederatedUser: user.IsFederatedUser,
		ProfilePicture:  user.ProfilePicture,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
