// Package services contains server-side business logic. This file implements
// AuthService, which handles signup and login from encrypted credential
// payloads and the stateless access/refresh token lifecycle.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yeabtsegataye/equb-system/internal/common"
	"github.com/yeabtsegataye/equb-system/internal/cryptox"
	"github.com/yeabtsegataye/equb-system/internal/dbx"
	"github.com/yeabtsegataye/equb-system/internal/logging"
	"github.com/yeabtsegataye/equb-system/internal/server/auth"
	"github.com/yeabtsegataye/equb-system/internal/server/models"
	"github.com/yeabtsegataye/equb-system/internal/server/passwords"
	"github.com/yeabtsegataye/equb-system/internal/server/repositories/repomanager"
)

// CredentialRequest is the signup/login body. EncryptedPassword is the
// passphrase-encrypted password produced by the client with the shared key.
type CredentialRequest struct {
	Email             string `json:"email"`
	EncryptedPassword string `json:"Password"`
}

// VerifyResult is the outcome of VerifyToken.
type VerifyResult struct {
	Verified bool `json:"verified"`
}

// AuthService provides authentication operations:
// - Signup: create a user and mint a token pair
// - Login: verify credentials and mint a token pair
// - RefreshAccessToken: mint a new access token from a refresh token
// - VerifyToken: report whether a bearer access token is valid
// - Logout: nothing server-side; the transport clears the cookie
type AuthService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	tokens      *auth.Manager
	hasher      passwords.Hasher
	cipherKey   string
	log         logging.Logger
}

// NewAuthService wires an AuthService. db may be nil when the repository
// manager does not need a connection (in-memory store).
func NewAuthService(db dbx.DBTX, m repomanager.RepositoryManager, tokens *auth.Manager,
	hasher passwords.Hasher, cipherKey string, log logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		cipherKey:   cipherKey,
		log:         log,
	}
}

// Signup creates a user for req.Email and returns its token pair.
//
// Errors: ErrUserExists when the email is taken (including a lost race at the
// store), ErrInvalidCredentialPayload when the password cannot be decrypted,
// ErrorInternal on persistence, hashing or signing failures.
func (s *AuthService) Signup(ctx context.Context, req CredentialRequest) (*auth.TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrUserExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.log.Error(ctx, "signup lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	plaintext, err := s.decrypt(req.EncryptedPassword)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		if passwords.IsPasswordTooLong(err) {
			return nil, common.ErrInvalidCredentialPayload
		}
		s.log.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        models.PlaceholderPhone,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrUserExists
		}
		s.log.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user signed up", "user_id", user.ID)
	return s.issuePair(ctx, user)
}

// Login checks req against the stored hash and returns a token pair.
//
// The payload is decrypted before the user lookup. Errors:
// ErrInvalidCredentialPayload, ErrUserNotFound, ErrorUnauthorized on a wrong
// password, ErrorInternal otherwise.
func (s *AuthService) Login(ctx context.Context, req CredentialRequest) (*auth.TokenPair, error) {
	plaintext, err := s.decrypt(req.EncryptedPassword)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		s.log.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Compare(plaintext, user.PasswordHash) {
		s.log.Warn(ctx, "login rejected", "user_id", user.ID)
		return nil, common.ErrorUnauthorized
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return s.issuePair(ctx, user)
}

// RefreshAccessToken returns a new access token for the identity carried by
// refreshToken. The refresh token itself is not rotated.
//
// Errors: ErrNoToken for an empty token, ErrRefreshTokenExpired once it has
// expired, ErrInvalidToken for any other verification failure.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", common.ErrNoToken
	}

	payload, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return "", common.ErrRefreshTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	access, err := s.tokens.IssueAccessToken(payload)
	if err != nil {
		s.log.Error(ctx, "access token signing failed", "error", err)
		return "", common.ErrorInternal
	}
	return access, nil
}

// VerifyToken checks the bearer access token. Both the Authorization header
// and the refresh cookie must be present, otherwise ErrNoToken is returned.
// Any other failure, including a header without the "Bearer " prefix, is
// reported as VerifyResult{Verified: false} with a nil error.
func (s *AuthService) VerifyToken(ctx context.Context, bearerHeader, refreshCookie string) (VerifyResult, error) {
	if bearerHeader == "" || refreshCookie == "" {
		return VerifyResult{}, common.ErrNoToken
	}

	token, ok := strings.CutPrefix(bearerHeader, common.BearerPrefix)
	if !ok {
		token = ""
	}

	if _, err := s.tokens.VerifyAccessToken(token); err != nil {
		return VerifyResult{Verified: false}, nil
	}
	return VerifyResult{Verified: true}, nil
}

// Logout has no server-side state to clear; refresh tokens stay valid until
// they expire.
func (s *AuthService) Logout(ctx context.Context) {
	s.log.Info(ctx, "logout")
}

// AccessTokenTTL and RefreshTokenTTL expose token lifetimes to the transport.
func (s *AuthService) AccessTokenTTL() time.Duration  { return s.tokens.AccessTokenTTL() }
func (s *AuthService) RefreshTokenTTL() time.Duration { return s.tokens.RefreshTokenTTL() }

// --- helpers below ---

func (s *AuthService) decrypt(ciphertext string) (string, error) {
	plaintext, err := cryptox.Decrypt(ciphertext, s.cipherKey)
	if err != nil || plaintext == "" {
		return "", common.ErrInvalidCredentialPayload
	}
	return plaintext, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*auth.TokenPair, error) {
	pair, err := s.tokens.IssuePair(auth.Payload{ID: user.ID, Email: user.Email})
	if err != nil {
		s.log.Error(ctx, "token signing failed", "error", err)
		return nil, common.ErrorInternal
	}
	return pair, nil
}
