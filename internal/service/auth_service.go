package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"factfind/config"
	"factfind/internal/model"
	"factfind/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrLoginUnsupported   = errors.New("login is handled by the identity provider")
)

// Provider is the single identity capability the rest of the service
// depends on. The implementation is chosen by configuration, never by
// duplicated call sites.
type Provider interface {
	Verify(ctx context.Context, token string) (*model.Identity, error)
}

// AuthService resolves bearer tokens to local users. Identities come
// from the configured Provider as given facts; the first request for an
// unknown subject lazily creates the local user row.
type AuthService struct {
	provider Provider
	users    repository.UserRepo

	static *staticProvider // non-nil only in static mode
}

// NewAuthService creates an auth service with the provider selected by
// cfg.AuthMode: "jwt" verifies provider-issued HS256 identity tokens,
// anything else runs the self-contained static provider for local use.
func NewAuthService(cfg *config.Config, users repository.UserRepo) *AuthService {
	s := &AuthService{users: users}
	if cfg.AuthMode == "jwt" {
		s.provider = newJWTProvider([]byte(cfg.JWTSecret))
	} else {
		s.static = newStaticProvider(cfg.AdminUsername, cfg.AdminPassword, []byte(cfg.JWTSecret))
		s.provider = s.static
	}
	return s
}

// Authenticate verifies a token and returns the local user, creating it
// on first sight. The provider's isAdmin assertion is authoritative for
// the request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	identity, err := s.provider.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByExternalID(ctx, identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		user = &model.User{
			ExternalID: identity.Subject,
			Email:      identity.Email,
			Name:       identity.Name,
			IsAdmin:    identity.IsAdmin,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}
	user.IsAdmin = identity.IsAdmin
	return user, nil
}

// Login issues a token in static mode. In jwt mode tokens come from the
// identity provider and this returns ErrLoginUnsupported.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if s.static == nil {
		return nil, ErrLoginUnsupported
	}
	return s.static.login(username, password)
}

// jwtProvider verifies HS256 identity tokens minted by the external
// provider with a shared secret.
type jwtProvider struct {
	secret []byte
}

func newJWTProvider(secret []byte) *jwtProvider {
	return &jwtProvider{secret: secret}
}

func (p *jwtProvider) Verify(_ context.Context, tokenString string) (*model.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &model.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		IsAdmin: claims.IsAdmin,
	}, nil
}

// staticProvider is the local stand-in for the identity provider: the
// configured credentials sign in as admin, any other non-empty pair
// signs in as a plain respondent. Tokens are HS256 like the real ones.
type staticProvider struct {
	adminUsername string
	adminPassword string
	secret        []byte

	mu       sync.Mutex
	subjects map[string]string // username -> stable subject
}

func newStaticProvider(adminUsername, adminPassword string, secret []byte) *staticProvider {
	return &staticProvider{
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		secret:        secret,
		subjects:      make(map[string]string),
	}
}

func (p *staticProvider) login(username, password string) (*model.LoginResponse, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	isAdmin := username == p.adminUsername
	if isAdmin && password != p.adminPassword {
		return nil, ErrInvalidCredentials
	}

	p.mu.Lock()
	subject, ok := p.subjects[username]
	if !ok {
		subject = "usr_" + uuid.New().String()[:8]
		p.subjects[username] = subject
	}
	p.mu.Unlock()

	claims := &model.IdentityClaims{
		Email:   username + "@local",
		Name:    username,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(p.secret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: tokenString, Subject: subject, IsAdmin: isAdmin}, nil
}

func (p *staticProvider) Verify(_ context.Context, tokenString string) (*model.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &model.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		IsAdmin: claims.IsAdmin,
	}, nil
}
