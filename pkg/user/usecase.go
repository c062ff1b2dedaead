package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agenda-pj/accounts/pkg/logging"
	"github.com/agenda-pj/accounts/pkg/metrics"
	"github.com/agenda-pj/accounts/pkg/notifier"
)

// Hasher abstracts one-way password hashing.
type Hasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A mismatch is
	// (false, nil); only a malformed digest yields an error.
	Verify(plaintext, digest string) (bool, error)
}

// TokenPair is the session credential pair returned by login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer abstracts session-token minting (e.g., JWT).
type TokenIssuer interface {
	IssuePair(userID uuid.UUID, email string) (TokenPair, error)
}

// LoginResult bundles the authenticated user with its fresh token pair.
type LoginResult struct {
	User   User
	Tokens TokenPair
}

// UpdateInput carries the mutable fields of a user record. Password is
// optional: nil leaves the stored hash untouched.
type UpdateInput struct {
	Name     string
	Email    string
	Password *string
}

// UseCase describes account operations.
type UseCase interface {
	Signup(ctx context.Context, name, email, password string) (User, error)
	Login(ctx context.Context, login, password string) (LoginResult, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const (
	storeTimeout  = 5 * time.Second
	notifyTimeout = 10 * time.Second
)

type service struct {
	repo     Repository
	hasher   Hasher
	tokens   TokenIssuer
	notifier notifier.Notifier
	log      logging.Logger
	metrics  *metrics.Metrics
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, hasher Hasher, tokens TokenIssuer, n notifier.Notifier, log logging.Logger, m *metrics.Metrics) UseCase {
	return &service{repo: repo, hasher: hasher, tokens: tokens, notifier: n, log: log, metrics: m}
}

func (s *service) Signup(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return User{}, ErrMissingField
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}

	s.metrics.Signups.Inc()
	s.notify(u.Email, "Bem-vindo à Agenda PJ!",
		fmt.Sprintf("Olá %s, sua conta foi criada com sucesso.", u.Name))
	return u, nil
}

func (s *service) Login(ctx context.Context, login, password string) (LoginResult, error) {
	if login == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		// Not-found and any lookup failure collapse into one answer so the
		// response does not reveal whether the account exists.
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "verify password", "user_id", u.ID, "error", err)
		return LoginResult{}, ErrInvalidCredentials
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(u.ID, u.Email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue tokens: %w", err)
	}

	s.metrics.Logins.Inc()
	s.notify(u.Email, "Novo acesso à sua conta",
		fmt.Sprintf("Olá %s, detectamos um novo login na sua conta.", u.Name))
	return LoginResult{User: u, Tokens: pair}, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (User, error) {
	u := User{
		ID:    id,
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
	}
	if in.Password != nil && *in.Password != "" {
		digest, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = digest
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		s.log.Error(ctx, "update user", "user_id", id, "error", err)
		return User{}, ErrUpdateFailed
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete user", "user_id", id, "error", err)
		return ErrDeleteFailed
	}
	return nil
}

// notify sends an email in the background. The outcome never affects the
// operation that triggered it.
func (s *service) notify(to, subject, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Send(ctx, to, subject, message); err != nil {
			s.metrics.NotifyFailures.Inc()
			s.log.Warn(ctx, "notification email failed", "to", to, "error", err)
		}
	}()
}
