package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
	"github.com/voltmarket/market-client/internal/pkg/validation"
)

// AuthService runs the session lifecycle: it signs in through the gateway,
// persists what the backend returns and clears it on logout.
type AuthService struct {
	api      ports.AuthGateway
	sessions ports.SessionStore
	validate *validation.Validator
	log      zerolog.Logger
}

func NewAuthService(api ports.AuthGateway, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		validate: validation.New(),
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// credentials only checks presence; the backend judges the email format.
type credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Login authenticates and stores the returned session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return domain.Session{}, err
	}

	body, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	return s.persist(ctx, body)
}

// Register creates the account and signs in with the session the backend
// returns.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (domain.Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return domain.Session{}, err
	}

	body, err := s.api.Register(ctx, in)
	if err != nil {
		return domain.Session{}, err
	}
	return s.persist(ctx, body)
}

// Logout tells the backend and then clears local state. Server failures are
// logged and ignored; only a failing store is reported.
func (s *AuthService) Logout(ctx context.Context) error {
	if _, err := s.api.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("server logout failed, clearing local session anyway")
	}
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// SyncProfile fetches the profile and replaces the stored user, keeping the
// token.
func (s *AuthService) SyncProfile(ctx context.Context) (*domain.User, error) {
	body, err := s.api.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return s.storeUser(ctx, body)
}

// UpdateProfile saves the editable fields and writes the refreshed user back
// when the backend returns one.
func (s *AuthService) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Address = strings.TrimSpace(in.Address)
	if in.DateOfBirth != nil && strings.TrimSpace(*in.DateOfBirth) == "" {
		in.DateOfBirth = nil
	}

	body, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	if !body.Get("data.user").Exists() {
		return nil, nil
	}
	return s.storeUser(ctx, body)
}

// Current returns the stored session, empty when signed out.
func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	return s.sessions.Get(ctx)
}

func (s *AuthService) persist(ctx context.Context, body ports.Body) (domain.Session, error) {
	token := body.Get("data.token").String()
	if token == "" {
		return domain.Session{}, domain.ErrMissingToken
	}

	user := &domain.User{}
	if res := body.Get("data.user"); res.IsObject() {
		if err := body.Decode("data.user", user); err != nil {
			return domain.Session{}, fmt.Errorf("decode user: %w", err)
		}
	}

	session := domain.Session{Token: token, User: user}
	if err := s.sessions.Set(ctx, session); err != nil {
		return domain.Session{}, err
	}
	s.log.Info().Str("email", user.Email).Str("role", string(user.RoleName)).Msg("signed in")
	return session, nil
}

func (s *AuthService) storeUser(ctx context.Context, body ports.Body) (*domain.User, error) {
	user := &domain.User{}
	if res := body.Get("data.user"); res.IsObject() {
		if err := body.Decode("data.user", user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
	}

	current, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current.Token == "" {
		return user, nil
	}
	if err := s.sessions.Set(ctx, domain.Session{Token: current.Token, User: user}); err != nil {
		return nil, err
	}
	return user, nil
}
