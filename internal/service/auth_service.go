package service

import (
	"context"
	"fmt"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTokenTTL = time.Hour

// AuthService handles registration, sign-in and session tokens.
type AuthService struct {
	authRepo    repository.Authorization
	sessionRepo repository.SessionRepo
	policy      PasswordPolicy
	signingKey  []byte
	tokenTTL    time.Duration
}

var _ Authorization = (*AuthService)(nil)

func NewAuthService(authRepo repository.Authorization, sessionRepo repository.SessionRepo, policy PasswordPolicy, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		authRepo:    authRepo,
		sessionRepo: sessionRepo,
		policy:      policy,
		signingKey:  []byte(cfg.SigningKey),
		tokenTTL:    ttl,
	}
}

// Claims defines JWT claims; the registered ID names the session row.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// SignUp validates the registration input, stores the user with a
// hashed password, and establishes a session. The raw password is
// never persisted or logged.
func (s *AuthService) SignUp(ctx context.Context, username, password, passwordConfirm string) (int, string, error) {
	verr := &ValidationError{}
	if username == "" {
		verr.add("username", "username is required")
	}
	if password != passwordConfirm {
		verr.add("password_confirm", "passwords do not match")
	} else if err := s.policy.Check(password, username); err != nil {
		if pe, ok := err.(*ValidationError); ok {
			verr.Fields = append(verr.Fields, pe.Fields...)
		} else {
			return 0, "", err
		}
	}
	if !verr.ok() {
		return 0, "", verr
	}

	existing, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return 0, "", err
	}
	if existing != nil {
		return 0, "", fieldError("username", "username is already taken")
	}

	hash, err := s.policy.Hash(password)
	if err != nil {
		return 0, "", err
	}

	id, err := s.authRepo.Create(username, hash)
	if err != nil {
		return 0, "", err
	}

	token, err := s.openSession(ctx, id)
	if err != nil {
		return 0, "", err
	}
	return id, token, nil
}

// SignIn verifies credentials and returns a session token. Failures are
// uniformly ErrInvalidCredentials so callers cannot probe for usernames.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := s.policy.Verify(password, u.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.openSession(ctx, u.ID)
}

// Authenticate parses the token, then requires a live session row.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (int, error) {
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return 0, err
	}

	sess, err := s.sessionRepo.Get(ctx, claims.ID)
	if err != nil {
		return 0, err
	}
	if sess == nil || sess.UserID != claims.UserID {
		return 0, ErrInvalidToken
	}
	if time.Now().After(sess.ExpiresAt) {
		return 0, ErrSessionExpired
	}
	return claims.UserID, nil
}

// Logout deletes the session named by the token. Idempotent.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, claims.ID)
}

// openSession stores a session row and issues the matching signed token.
func (s *AuthService) openSession(ctx context.Context, userID int) (string, error) {
	now := time.Now()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.tokenTTL).UTC(),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// parseToken validates the signature and returns the claims.
func (s *AuthService) parseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
