package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"community-board/internal/gateway"
	"community-board/internal/model"
	"community-board/internal/repository"
)

type ProfileService struct {
	profiles *repository.ProfileRepository
	gateway  *gateway.Gateway
}

func NewProfileService(profiles *repository.ProfileRepository, gw *gateway.Gateway) *ProfileService {
	return &ProfileService{profiles: profiles, gateway: gw}
}

type SearchResult struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Type     string `json:"type,omitempty"`
}

// EnsureProfile lazily creates the profile for an authenticated
// identity. It is idempotent and deliberately best-effort: failures are
// logged and swallowed so they never block the calling flow.
func (s *ProfileService) EnsureProfile(ctx context.Context, identity *gateway.Identity, nickname string) {
	if identity == nil || identity.ID == "" {
		return
	}

	existing, err := s.profiles.GetByID(identity.ID)
	if err != nil {
		log.Printf("ensure profile lookup failed for %s: %v", identity.ID, err)
		return
	}
	if existing != nil {
		return
	}

	profile := &model.Profile{ID: identity.ID}
	if identity.Email != "" {
		email := identity.Email
		profile.Email = &email
	}
	if nickname = strings.TrimSpace(nickname); nickname != "" {
		profile.Nickname = &nickname
	}
	if err := s.profiles.Create(profile); err != nil {
		log.Printf("ensure profile create failed for %s: %v", identity.ID, err)
		return
	}
	log.Printf("profile created for user %s", identity.ID)
}

// SignUp registers a new account. The nickname uniqueness check runs
// before the identity is created so a taken nickname leaves no side
// effects behind.
func (s *ProfileService) SignUp(ctx context.Context, email, password, nickname string) (*gateway.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	nickname = strings.TrimSpace(nickname)
	if email == "" || password == "" || nickname == "" {
		return nil, ErrValidation
	}

	taken, err := s.profiles.GetByNickname(nickname)
	if err != nil {
		log.Printf("nickname check failed: %v", err)
		return nil, storeErr(err)
	}
	if taken != nil {
		return nil, ErrNicknameTaken
	}

	identity, err := s.gateway.SignUp(ctx, email, password)
	if err != nil {
		if errors.Is(err, gateway.ErrEmailExists) {
			return nil, err
		}
		log.Printf("gateway signup failed: %v", err)
		return nil, storeErr(err)
	}

	s.EnsureProfile(ctx, identity, nickname)
	return identity, nil
}

// SignIn authenticates against the gateway and makes sure the profile
// exists before the caller does anything that references it.
func (s *ProfileService) SignIn(ctx context.Context, email, password string) (*gateway.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	session, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			return nil, err
		}
		log.Printf("gateway signin failed: %v", err)
		return nil, storeErr(err)
	}

	s.EnsureProfile(ctx, &gateway.Identity{ID: session.UserID, Email: session.Email}, "")
	return session, nil
}

// SearchNick performs a case-insensitive substring search over
// nicknames. A blank query returns no results rather than matching
// everything.
func (s *ProfileService) SearchNick(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	profiles, err := s.profiles.SearchByNickname(query, limit)
	if err != nil {
		log.Printf("nickname search failed: %v", err)
		return nil, storeErr(err)
	}

	results := make([]SearchResult, 0, len(profiles))
	for _, p := range profiles {
		result := SearchResult{}
		if p.Nickname != nil {
			result.Nickname = *p.Nickname
		}
		if p.Email != nil {
			result.Email = *p.Email
		}
		if p.Type != nil {
			result.Type = *p.Type
		}
		results = append(results, result)
	}
	return results, nil
}
