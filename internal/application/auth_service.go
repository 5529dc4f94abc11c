package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
	"github.com/veldtec/talentctl/internal/session"
)

// AuthService drives the session lifecycle: login, registration, logout, and
// restoring a persisted session at startup.
type AuthService struct {
	gw       ports.Gateway
	sessions *session.Store
	clock    ports.Clock
	validate *validator.Validate
}

func NewAuthService(gw ports.Gateway, sessions *session.Store, clock ports.Clock) *AuthService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AuthService{
		gw:       gw,
		sessions: sessions,
		clock:    clock,
		validate: newValidator(),
	}
}

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegistrationForm struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8"`
	FullName    string
	CompanyName string
}

// Login runs the canonical token-then-profile sequence: obtain the access
// token, confirm it against /auth/me, and only then commit identity and
// token to the session store in a single Set.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (domain.Session, error) {
	if err := s.validate.Struct(creds); err != nil {
		return domain.Session{}, preconditionFromValidation(err)
	}

	token, err := s.gw.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	user, err := s.gw.Me(ctx, token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("confirm login token: %w", err)
	}

	s.sessions.Set(ctx, user, token)

	return domain.Session{User: user, Token: token}, nil
}

// Register creates the account; the register contract returns token and
// profile inline, so the session commits without a second round trip.
func (s *AuthService) Register(ctx context.Context, form RegistrationForm) (domain.Session, error) {
	if err := s.validate.Struct(form); err != nil {
		return domain.Session{}, preconditionFromValidation(err)
	}

	sess, err := s.gw.Register(ctx, domain.Registration{
		Email:       form.Email,
		Password:    form.Password,
		FullName:    form.FullName,
		CompanyName: form.CompanyName,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("register: %w", err)
	}

	s.sessions.Set(ctx, sess.User, sess.Token)

	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context) {
	s.sessions.Clear(ctx)
}

// Whoami confirms the current session against the server and returns the
// fresh profile. A 401 has already cleared the session by the time the error
// reaches the caller.
func (s *AuthService) Whoami(ctx context.Context) (domain.User, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return domain.User{}, domain.ErrNoSession
	}

	user, err := s.gw.Me(ctx, sess.Token)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch profile: %w", err)
	}

	return user, nil
}

// RestoreSession loads the persisted session as a provisional identity and
// confirms it with a profile fetch. A token that is expired on its face, or
// one the server rejects, clears silently: startup lands logged out rather
// than failing.
func (s *AuthService) RestoreSession(ctx context.Context) (domain.Session, bool, error) {
	sess, ok, err := s.sessions.Restore(ctx)
	if err != nil {
		return domain.Session{}, false, err
	}
	if !ok {
		return domain.Session{}, false, nil
	}

	if session.TokenExpired(sess.Token, s.clock.Now()) {
		s.sessions.Clear(ctx)
		return domain.Session{}, false, nil
	}

	user, err := s.gw.Me(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, domain.ErrAuthExpired) {
			s.sessions.Invalidate(ctx, sess.Token)
			return domain.Session{}, false, nil
		}
		// Server unreachable: keep the provisional session; the next
		// gateway call settles it.
		return sess, true, nil
	}

	s.sessions.Set(ctx, user, sess.Token)

	return domain.Session{User: user, Token: sess.Token}, true, nil
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func preconditionFromValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Precondition(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", strings.ToLower(fe.Field())))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", strings.ToLower(fe.Field()), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}

	return domain.Precondition(strings.Join(messages, "; "))
}
