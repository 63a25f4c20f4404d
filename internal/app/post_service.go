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

// anonymousAuthor labels posts whose author id no longer resolves to a
// nicknamed profile.
const anonymousAuthor = "Anonymous"

const defaultPostLimit = 500

type PostView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	GameTypes string    `json:"game_types"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type PostService struct {
	posts       *repository.PostRepository
	profiles    *repository.ProfileRepository
	provisioner *ProfileService
}

func NewPostService(posts *repository.PostRepository, profiles *repository.ProfileRepository, provisioner *ProfileService) *PostService {
	return &PostService{posts: posts, profiles: profiles, provisioner: provisioner}
}

// Create inserts a new announcement for the session's user.
func (s *PostService) Create(ctx context.Context, session *gateway.Session, title, content, gameTypes string) error {
	if session == nil {
		return ErrAuthRequired
	}

	profile, err := s.profiles.GetByID(session.UserID)
	if err != nil {
		log.Printf("create post profile fetch failed: %v", err)
		return storeErr(err)
	}
	if profile == nil {
		// missing profile: provision and carry on, same as any other
		// first authenticated write
		s.provisioner.EnsureProfile(ctx, &gateway.Identity{ID: session.UserID, Email: session.Email}, "")
	} else if profile.Banned {
		return ErrForbidden
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return ErrValidation
	}

	post := &model.Post{
		UserID:    session.UserID,
		Title:     title,
		Content:   content,
		GameTypes: strings.TrimSpace(gameTypes),
	}
	if err := s.posts.Create(post); err != nil {
		log.Printf("create post insert failed: %v", err)
		return storeErr(err)
	}
	return nil
}

// List returns the newest posts with author nicknames resolved in one
// batched query over the distinct id set. The public listing never
// returns more than defaultPostLimit rows regardless of the caller's
// limit; only the admin listing may go higher.
func (s *PostService) List(ctx context.Context, limit int) ([]PostView, error) {
	if limit <= 0 || limit > defaultPostLimit {
		limit = defaultPostLimit
	}

	posts, err := s.posts.ListNewestFirst(limit)
	if err != nil {
		log.Printf("list posts failed: %v", err)
		return nil, storeErr(err)
	}

	views, err := resolveAuthors(s.profiles, posts)
	if err != nil {
		log.Printf("list posts nickname resolution failed: %v", err)
		return nil, storeErr(err)
	}
	return views, nil
}

// Delete removes a post. The author may delete their own post; admins
// may delete any.
func (s *PostService) Delete(ctx context.Context, session *gateway.Session, postID uint) error {
	if session == nil {
		return ErrAuthRequired
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		log.Printf("delete post fetch failed: %v", err)
		return storeErr(err)
	}
	if post == nil {
		return ErrNotFound
	}

	if post.UserID != session.UserID {
		profile, err := s.profiles.GetByID(session.UserID)
		if err != nil {
			log.Printf("delete post profile fetch failed: %v", err)
			return storeErr(err)
		}
		if profile == nil || !profile.IsAdmin {
			return ErrForbidden
		}
	}

	if err := s.posts.Delete(postID); err != nil {
		log.Printf("delete post failed: %v", err)
		return storeErr(err)
	}
	return nil
}

func resolveAuthors(profiles *repository.ProfileRepository, posts []model.Post) ([]PostView, error) {
	ids := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if p.UserID != "" && !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	nicknames, err := profiles.NicknamesByIDs(ids)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		author := nicknames[p.UserID]
		if author == "" {
			author = anonymousAuthor
		}
		views = append(views, PostView{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			GameTypes: p.GameTypes,
			AuthorID:  p.UserID,
			Author:    author,
			CreatedAt: p.CreatedAt,
		})
	}
	return views, nil
}
