package app

import (
	"context"
	"log"
	"strconv"

	"community-board/internal/gateway"
	"community-board/internal/model"
	"community-board/internal/repository"
)

const adminListLimit = 1000

// AuditPublisher delivers moderation audit events for asynchronous
// persistence. Publishing is best-effort and never fails the action.
type AuditPublisher interface {
	Publish(ctx context.Context, entry model.AuditLog) error
}

type AdminService struct {
	profiles *repository.ProfileRepository
	posts    *repository.PostRepository
	messages *repository.MessageRepository
	gateway  *gateway.Gateway
	audit    AuditPublisher
}

func NewAdminService(
	profiles *repository.ProfileRepository,
	posts *repository.PostRepository,
	messages *repository.MessageRepository,
	gw *gateway.Gateway,
	audit AuditPublisher,
) *AdminService {
	return &AdminService{
		profiles: profiles,
		posts:    posts,
		messages: messages,
		gateway:  gw,
		audit:    audit,
	}
}

// requireAdmin is the single authorization chokepoint. It re-reads the
// is_admin flag from the profile on every call; client-visible state is
// never trusted.
func (s *AdminService) requireAdmin(session *gateway.Session) error {
	if session == nil {
		return ErrForbidden
	}
	profile, err := s.profiles.GetByID(session.UserID)
	if err != nil {
		log.Printf("admin check failed for %s: %v", session.UserID, err)
		return storeErr(err)
	}
	if profile == nil || !profile.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *AdminService) IsAdmin(ctx context.Context, session *gateway.Session) bool {
	return s.requireAdmin(session) == nil
}

func (s *AdminService) ListUsers(ctx context.Context, session *gateway.Session, limit int) ([]model.Profile, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = adminListLimit
	}
	profiles, err := s.profiles.ListNewestFirst(limit)
	if err != nil {
		log.Printf("admin list users failed: %v", err)
		return nil, storeErr(err)
	}
	return profiles, nil
}

func (s *AdminService) ListPosts(ctx context.Context, session *gateway.Session, limit int) ([]PostView, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = adminListLimit
	}
	posts, err := s.posts.ListNewestFirst(limit)
	if err != nil {
		log.Printf("admin list posts failed: %v", err)
		return nil, storeErr(err)
	}
	views, err := resolveAuthors(s.profiles, posts)
	if err != nil {
		log.Printf("admin list posts resolution failed: %v", err)
		return nil, storeErr(err)
	}
	return views, nil
}

func (s *AdminService) ListMessages(ctx context.Context, session *gateway.Session, limit int) ([]MessageView, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = adminListLimit
	}
	messages, err := s.messages.ListNewestFirst(limit)
	if err != nil {
		log.Printf("admin list messages failed: %v", err)
		return nil, storeErr(err)
	}
	views, err := resolveParticipants(s.profiles, messages)
	if err != nil {
		log.Printf("admin list messages resolution failed: %v", err)
		return nil, storeErr(err)
	}
	return views, nil
}

// ToggleBan flips the user's banned flag and returns the new state.
// Read-then-write, not atomic against a concurrent toggle; acceptable
// at this scale.
func (s *AdminService) ToggleBan(ctx context.Context, session *gateway.Session, userID string) (bool, error) {
	if err := s.requireAdmin(session); err != nil {
		return false, err
	}

	profile, err := s.profiles.GetByID(userID)
	if err != nil {
		log.Printf("ban toggle fetch failed for %s: %v", userID, err)
		return false, storeErr(err)
	}
	if profile == nil {
		return false, ErrNotFound
	}
	current := profile.Banned

	if err := s.profiles.UpdateBanned(userID, !current); err != nil {
		log.Printf("ban toggle update failed for %s: %v", userID, err)
		return false, storeErr(err)
	}

	action := "user.ban"
	if current {
		action = "user.unban"
	} else {
		// expel every live session right away; the next Refresh is
		// only the backstop
		if err := s.gateway.SignOutUser(ctx, userID); err != nil {
			log.Printf("revoke sessions failed for banned user %s: %v", userID, err)
		}
	}
	s.publishAudit(ctx, session.UserID, action, userID)
	return !current, nil
}

// DeleteUser removes the profile, the gateway credential and every live
// session for the account.
func (s *AdminService) DeleteUser(ctx context.Context, session *gateway.Session, userID string) error {
	if err := s.requireAdmin(session); err != nil {
		return err
	}

	if err := s.profiles.Delete(userID); err != nil {
		log.Printf("delete user profile failed for %s: %v", userID, err)
		return storeErr(err)
	}
	if err := s.gateway.DeleteIdentity(ctx, userID); err != nil {
		log.Printf("delete user identity failed for %s: %v", userID, err)
		return storeErr(err)
	}

	s.publishAudit(ctx, session.UserID, "user.delete", userID)
	return nil
}

func (s *AdminService) DeletePost(ctx context.Context, session *gateway.Session, postID uint) error {
	if err := s.requireAdmin(session); err != nil {
		return err
	}
	if err := s.posts.Delete(postID); err != nil {
		log.Printf("admin delete post failed: %v", err)
		return storeErr(err)
	}
	s.publishAudit(ctx, session.UserID, "post.delete", strconv.FormatUint(uint64(postID), 10))
	return nil
}

func (s *AdminService) DeleteMessage(ctx context.Context, session *gateway.Session, messageID uint) error {
	if err := s.requireAdmin(session); err != nil {
		return err
	}
	if err := s.messages.Delete(messageID); err != nil {
		log.Printf("admin delete message failed: %v", err)
		return storeErr(err)
	}
	s.publishAudit(ctx, session.UserID, "message.delete", strconv.FormatUint(uint64(messageID), 10))
	return nil
}

func (s *AdminService) publishAudit(ctx context.Context, actorID, action, subjectID string) {
	if s.audit == nil {
		return
	}
	entry := model.AuditLog{ActorID: actorID, Action: action, SubjectID: subjectID}
	if err := s.audit.Publish(ctx, entry); err != nil {
		log.Printf("publish audit event %s failed: %v", action, err)
	}
}
