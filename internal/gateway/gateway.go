// Package gateway is the identity side of the system: credentials,
// sign-in, and the revocable session registry. Profiles and everything
// hanging off them live elsewhere; the gateway only knows ids, emails
// and passwords.
package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"community-board/internal/model"
	"community-board/internal/repository"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is an authenticated account as the gateway sees it.
type Identity struct {
	ID    string
	Email string
}

// Session is a live, revocable login. Token is the signed JWT handed to
// the client; TokenID is the registry key that makes it revocable.
type Session struct {
	UserID  string
	Email   string
	Token   string
	TokenID string
}

type Gateway struct {
	credentials *repository.CredentialRepository
	sessions    SessionStore
	secret      string
	ttl         time.Duration
}

func New(credentials *repository.CredentialRepository, sessions SessionStore, secret string, ttl time.Duration) *Gateway {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gateway{
		credentials: credentials,
		sessions:    sessions,
		secret:      secret,
		ttl:         ttl,
	}
}

type sessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func generateID(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// SignUp creates a credential row and returns the new identity. The
// caller is responsible for provisioning a profile afterwards.
func (g *Gateway) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	existing, err := g.credentials.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	credential := &model.Credential{
		ID:           generateID(16),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := g.credentials.Create(credential); err != nil {
		return nil, err
	}
	return &Identity{ID: credential.ID, Email: credential.Email}, nil
}

// SignIn verifies the password, mints a JWT and registers its token id
// so the session can be revoked later.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	credential, err := g.credentials.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if credential == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokenID := generateID(16)
	now := time.Now()
	claims := sessionClaims{
		UserID: credential.ID,
		Email:  credential.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.secret))
	if err != nil {
		return nil, fmt.Errorf("sign session token failed: %w", err)
	}

	if err := g.sessions.Create(ctx, tokenID, credential.ID, g.ttl); err != nil {
		return nil, err
	}
	return &Session{
		UserID:  credential.ID,
		Email:   credential.Email,
		Token:   token,
		TokenID: tokenID,
	}, nil
}

// CurrentSession resolves a bearer token to a live session. A missing,
// malformed or revoked token yields (nil, nil): the JWT alone is not
// enough, the registry entry must still exist.
func (g *Gateway) CurrentSession(ctx context.Context, token string) (*Session, error) {
	claims, ok := g.parseToken(token)
	if !ok {
		return nil, nil
	}

	userID, err := g.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if userID == "" || userID != claims.UserID {
		return nil, nil
	}
	return &Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Token:   token,
		TokenID: claims.ID,
	}, nil
}

// SignOut revokes the session behind a token. Tokens that no longer
// parse are treated as already signed out.
func (g *Gateway) SignOut(ctx context.Context, token string) error {
	claims, ok := g.parseToken(token)
	if !ok {
		return nil
	}
	return g.sessions.Delete(ctx, claims.ID)
}

// SignOutUser revokes every live session for a user. Used when a ban
// must expel someone holding a still-valid token.
func (g *Gateway) SignOutUser(ctx context.Context, userID string) error {
	return g.sessions.DeleteAllForUser(ctx, userID)
}

// DeleteIdentity removes the credential and revokes all sessions.
func (g *Gateway) DeleteIdentity(ctx context.Context, userID string) error {
	if err := g.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	return g.credentials.Delete(userID)
}

func (g *Gateway) parseToken(token string) (*sessionClaims, bool) {
	if token == "" {
		return nil, false
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(g.secret), nil
	})
	if err != nil || !parsed.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, false
	}
	return claims, true
}
