package app_test

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"community-board/internal/app"
	"community-board/internal/gateway"
	"community-board/internal/model"
	"community-board/internal/repository"
)

type testEnv struct {
	db          *gorm.DB
	profiles    *repository.ProfileRepository
	posts       *repository.PostRepository
	messages    *repository.MessageRepository
	credentials *repository.CredentialRepository
	store       *gateway.MemorySessionStore
	gateway     *gateway.Gateway

	profileSvc *app.ProfileService
	sessionSvc *app.SessionService
	postSvc    *app.PostService
	messageSvc *app.MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Credential{},
		&model.Profile{},
		&model.Post{},
		&model.PrivateMessage{},
		&model.AuditLog{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	env := &testEnv{
		db:          db,
		profiles:    repository.NewProfileRepository(db),
		posts:       repository.NewPostRepository(db),
		messages:    repository.NewMessageRepository(db),
		credentials: repository.NewCredentialRepository(db),
		store:       gateway.NewMemorySessionStore(),
	}
	env.gateway = gateway.New(env.credentials, env.store, "test-secret", time.Hour)
	env.profileSvc = app.NewProfileService(env.profiles, env.gateway)
	env.sessionSvc = app.NewSessionService(env.profiles, env.profileSvc, env.gateway)
	env.postSvc = app.NewPostService(env.posts, env.profiles, env.profileSvc)
	env.messageSvc = app.NewMessageService(env.messages, env.profiles)
	return env
}

type userOpts struct {
	admin  bool
	banned bool
}

// createUser registers a credential, writes the profile with the given
// flags and signs in.
func (e *testEnv) createUser(t *testing.T, email, nickname string, opts userOpts) *gateway.Session {
	t.Helper()
	ctx := context.Background()

	identity, err := e.gateway.SignUp(ctx, email, "password1")
	if err != nil {
		t.Fatalf("gateway signup failed: %v", err)
	}

	profile := &model.Profile{
		ID:      identity.ID,
		Email:   &identity.Email,
		IsAdmin: opts.admin,
		Banned:  opts.banned,
	}
	if nickname != "" {
		profile.Nickname = &nickname
	}
	if err := e.profiles.Create(profile); err != nil {
		t.Fatalf("create profile failed: %v", err)
	}

	session, err := e.gateway.SignIn(ctx, email, "password1")
	if err != nil {
		t.Fatalf("gateway signin failed: %v", err)
	}
	return session
}

func (e *testEnv) profileCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&model.Profile{}).Count(&count).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	return count
}

func (e *testEnv) postCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&model.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count posts failed: %v", err)
	}
	return count
}

// countQueries registers a callback counting SELECTs issued on the test
// database while fn runs.
func (e *testEnv) countQueries(t *testing.T, fn func()) int {
	t.Helper()
	var queries int
	err := e.db.Callback().Query().After("gorm:query").Register("test:count_queries", func(*gorm.DB) {
		queries++
	})
	if err != nil {
		t.Fatalf("register query counter failed: %v", err)
	}
	defer func() {
		_ = e.db.Callback().Query().Remove("test:count_queries")
	}()

	fn()
	return queries
}
