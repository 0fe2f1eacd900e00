// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks and issuing
// JWT access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/server/auth"
	"github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AccessToken is what a successful login hands back to the client.
type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
}

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Authenticate: verify username and password
// - Login: verify credentials and mint an access token
// - PrincipalFromToken: resolve a bearer token to the calling user
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      *auth.PasswordHasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         utcNow,
		newID:                       uuid.NewV7,
	}
}

// Register creates a new user. The password is stored only as a bcrypt hash.
// A taken username yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("error generating user id: %w", err)
	}

	user := &models.User{
		ID:           id.String(),
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Authenticate checks the password of the named user. Unknown users and wrong
// passwords both yield common.ErrorUnauthorized after the same amount of
// bcrypt work.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CheckDummy(password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !s.hasher.Check(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Login authenticates the user and returns a signed access token.
func (s *UserService) Login(ctx context.Context, username, password string) (*AccessToken, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &AccessToken{Token: token, ExpiresIn: s.accessTokenValidityDuration}, nil
}

// PrincipalFromToken validates a bearer token and resolves it to an existing
// user. It returns common.ErrInvalidToken or common.ErrTokenExpired for
// unusable tokens, including tokens whose user no longer exists.
func (s *UserService) PrincipalFromToken(ctx context.Context, token string) (*models.Principal, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error looking up token user: %w", err)
	}
	return &models.Principal{UserID: user.ID, UserName: user.UserName}, nil
}

// utcNow is truncated to microseconds, the precision Postgres keeps.
func utcNow() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
