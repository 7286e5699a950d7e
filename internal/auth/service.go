// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account inactive")
)

type UserInfo struct {
	ID           int64
	Name         string
	Email        *string
	PasswordHash string
	Role         string
	Status       string
	Active       bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	revocations  RevocationStore
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	revocations RevocationStore,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		revocations:  revocations,
	}
}

type LoginResult struct {
	User    UserResponse
	Token   string
	Session *Session
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResult, error) {
	req.Normalize()

	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.Active {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	token, session, err := s.jwt.CreateSessionToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("create session token: %w", err)
	}

	return &LoginResult{
		User: UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		Token:   token,
		Session: session,
	}, nil
}

// VerifySession resolves a cookie token to the current identity. The role
// returned is the stored one, so role changes apply to live sessions.
func (s *Service) VerifySession(
	ctx context.Context,
	token string,
) (*middleware.SessionClaims, error) {
	session, err := s.jwt.ParseSessionToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
	}

	user, err := s.userProvider.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("verify session: %w", core.ErrUnauthorized)
		}
		return nil, fmt.Errorf("verify session: %w", err)
	}

	if !user.Active {
		return nil, fmt.Errorf("verify session: %w: %w", ErrInactiveAccount, core.ErrUnauthorized)
	}

	return &middleware.SessionClaims{
		UserID:  user.ID,
		Role:    user.Role,
		TokenID: session.ID,
	}, nil
}

// Logout revokes the presented token when it is still valid. Invalid or
// missing tokens are ignored so logout is idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	session, err := s.jwt.ParseSessionToken(token)
	if err != nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, session.ID, session.Remaining()); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID int64,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, fmt.Errorf("get current user: %w", core.ErrUnauthorized)
	}

	return &UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

var _ middleware.SessionVerifier = (*Service)(nil)
