package app

import (
	"context"
	"log"
	"strings"
	"time"

	"community-board/internal/gateway"
	"community-board/internal/model"
	"community-board/internal/repository"
)

const defaultInboxLimit = 500

type MessageView struct {
	ID        uint      `json:"id"`
	FromID    string    `json:"from_id"`
	From      string    `json:"from"`
	ToID      string    `json:"to_id"`
	To        string    `json:"to"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// InboxResult distinguishes "not signed in, show a prompt" from an
// actual listing; a missing session is not an error for the inbox.
type InboxResult struct {
	LoggedIn bool          `json:"logged_in"`
	Messages []MessageView `json:"messages"`
}

type MessageService struct {
	messages *repository.MessageRepository
	profiles *repository.ProfileRepository
}

func NewMessageService(messages *repository.MessageRepository, profiles *repository.ProfileRepository) *MessageService {
	return &MessageService{messages: messages, profiles: profiles}
}

// Send delivers a private message to the profile holding the target
// nickname. The recipient must exist and must not be banned.
func (s *MessageService) Send(ctx context.Context, session *gateway.Session, targetNickname, content string) error {
	targetNickname = strings.TrimSpace(targetNickname)
	content = strings.TrimSpace(content)
	if targetNickname == "" || content == "" {
		return ErrValidation
	}

	recipient, err := s.profiles.GetByNickname(targetNickname)
	if err != nil {
		log.Printf("recipient lookup failed: %v", err)
		return storeErr(err)
	}
	if recipient == nil {
		return ErrNotFound
	}
	if recipient.Banned {
		return ErrForbidden
	}

	if session == nil {
		return ErrAuthRequired
	}

	message := &model.PrivateMessage{
		SenderID:    session.UserID,
		RecipientID: recipient.ID,
		Content:     content,
	}
	if err := s.messages.Create(message); err != nil {
		log.Printf("send message insert failed: %v", err)
		return storeErr(err)
	}
	return nil
}

// ListInbox returns the session user's sent and received messages,
// newest first, with both participants resolved to nicknames in one
// batched query. No session yields a prompt-state result, not an error.
func (s *MessageService) ListInbox(ctx context.Context, session *gateway.Session, limit int) (*InboxResult, error) {
	if session == nil {
		return &InboxResult{}, nil
	}
	if limit <= 0 {
		limit = defaultInboxLimit
	}

	messages, err := s.messages.ListForUser(session.UserID, limit)
	if err != nil {
		log.Printf("list inbox failed: %v", err)
		return nil, storeErr(err)
	}

	views, err := resolveParticipants(s.profiles, messages)
	if err != nil {
		log.Printf("inbox nickname resolution failed: %v", err)
		return nil, storeErr(err)
	}
	return &InboxResult{LoggedIn: true, Messages: views}, nil
}

func resolveParticipants(profiles *repository.ProfileRepository, messages []model.PrivateMessage) ([]MessageView, error) {
	ids := make([]string, 0, len(messages)*2)
	seen := make(map[string]bool, len(messages)*2)
	for _, m := range messages {
		for _, id := range []string{m.SenderID, m.RecipientID} {
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	nicknames, err := profiles.NicknamesByIDs(ids)
	if err != nil {
		return nil, err
	}

	label := func(id string) string {
		if nick := nicknames[id]; nick != "" {
			return nick
		}
		return id
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, MessageView{
			ID:        m.ID,
			FromID:    m.SenderID,
			From:      label(m.SenderID),
			ToID:      m.RecipientID,
			To:        label(m.RecipientID),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return views, nil
}
