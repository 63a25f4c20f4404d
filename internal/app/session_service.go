package app

import (
	"context"
	"log"

	"community-board/internal/gateway"
	"community-board/internal/repository"
)

// SessionState is the explicit render state derived from the current
// session; the transport layer serializes it instead of any handler
// mutating ambient UI state.
type SessionState struct {
	LoggedIn bool   `json:"logged_in"`
	Label    string `json:"label,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
	Banned   bool   `json:"banned"`
	Notice   string `json:"notice,omitempty"`
}

type SessionService struct {
	profiles    *repository.ProfileRepository
	provisioner *ProfileService
	gateway     *gateway.Gateway
}

func NewSessionService(profiles *repository.ProfileRepository, provisioner *ProfileService, gw *gateway.Gateway) *SessionService {
	return &SessionService{profiles: profiles, provisioner: provisioner, gateway: gw}
}

// Refresh derives the visible session state. A banned profile is
// expelled here: the gateway session is revoked and the returned state
// is logged-out with a blocking notice, no matter how valid the token
// still is. Safe to call after every state-changing action.
func (s *SessionService) Refresh(ctx context.Context, session *gateway.Session) (*SessionState, error) {
	if session == nil {
		return &SessionState{}, nil
	}

	// guards against missing-profile errors on subsequent writes
	s.provisioner.EnsureProfile(ctx, &gateway.Identity{ID: session.UserID, Email: session.Email}, "")

	profile, err := s.profiles.GetByID(session.UserID)
	if err != nil {
		log.Printf("session profile fetch failed for %s: %v", session.UserID, err)
		return nil, storeErr(err)
	}

	if profile != nil && profile.Banned {
		if err := s.gateway.SignOut(ctx, session.Token); err != nil {
			log.Printf("ban expulsion signout failed for %s: %v", session.UserID, err)
		}
		return &SessionState{
			Banned: true,
			Notice: "Your account has been banned.",
		}, nil
	}

	state := &SessionState{LoggedIn: true, Label: session.Email}
	if profile != nil {
		if profile.Nickname != nil && *profile.Nickname != "" {
			state.Label = *profile.Nickname
		}
		state.IsAdmin = profile.IsAdmin
	}
	return state, nil
}
