package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"community-board/internal/app"
	"community-board/internal/model"
)

func TestCreatePostRequiresSession(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)

	err := env.postSvc.Create(context.Background(), nil, "title", "content", "")
	c.Assert(err, qt.ErrorIs, app.ErrAuthRequired)
	c.Assert(env.postCount(t), qt.Equals, int64(0))
}

func TestCreatePostBannedUser(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	session := env.createUser(t, "a@x.com", "alice", userOpts{banned: true})

	err := env.postSvc.Create(context.Background(), session, "title", "content", "")
	c.Assert(err, qt.ErrorIs, app.ErrForbidden)
	c.Assert(env.postCount(t), qt.Equals, int64(0))
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
	}{
		{name: "empty title", title: "", content: "content"},
		{name: "empty content", title: "title", content: ""},
		{name: "whitespace only", title: "  ", content: "\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			env := newTestEnv(t)
			session := env.createUser(t, "a@x.com", "alice", userOpts{})

			err := env.postSvc.Create(context.Background(), session, tt.title, tt.content, "")
			c.Assert(err, qt.ErrorIs, app.ErrValidation)
			c.Assert(env.postCount(t), qt.Equals, int64(0))
		})
	}
}

func TestCreatePostProvisionsMissingProfile(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.gateway.SignUp(ctx, "a@x.com", "password1")
	c.Assert(err, qt.IsNil)
	session, err := env.gateway.SignIn(ctx, "a@x.com", "password1")
	c.Assert(err, qt.IsNil)

	err = env.postSvc.Create(ctx, session, "hello", "world", "coop")
	c.Assert(err, qt.IsNil)
	c.Assert(env.postCount(t), qt.Equals, int64(1))
	c.Assert(env.profileCount(t), qt.Equals, int64(1))
}

func TestListPostsResolvesAuthors(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createUser(t, "a@x.com", "alice", userOpts{})

	err := env.postSvc.Create(ctx, session, "first", "content", "rpg")
	c.Assert(err, qt.IsNil)

	// a post whose author has no profile row
	err = env.posts.Create(&model.Post{
		UserID:    "ghost",
		Title:     "orphan",
		Content:   "content",
		CreatedAt: time.Now().Add(time.Second),
	})
	c.Assert(err, qt.IsNil)

	views, err := env.postSvc.List(ctx, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(len(views), qt.Equals, 2)

	// newest first
	c.Assert(views[0].Title, qt.Equals, "orphan")
	c.Assert(views[0].Author, qt.Equals, "Anonymous")
	c.Assert(views[1].Title, qt.Equals, "first")
	c.Assert(views[1].Author, qt.Equals, "alice")
	c.Assert(views[1].GameTypes, qt.Equals, "rpg")
}

func TestListPostsIssuesTwoQueries(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "a@x.com", "alice", userOpts{})
	bob := env.createUser(t, "b@x.com", "bob", userOpts{})
	c.Assert(env.postSvc.Create(ctx, alice, "a1", "content", ""), qt.IsNil)
	c.Assert(env.postSvc.Create(ctx, alice, "a2", "content", ""), qt.IsNil)
	c.Assert(env.postSvc.Create(ctx, bob, "b1", "content", ""), qt.IsNil)

	queries := env.countQueries(t, func() {
		views, err := env.postSvc.List(ctx, 0)
		c.Assert(err, qt.IsNil)
		c.Assert(len(views), qt.Equals, 3)
	})
	c.Assert(queries, qt.Equals, 2)
}

func TestListPostsCapsCallerLimit(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createUser(t, "a@x.com", "alice", userOpts{})

	for i := 0; i < 510; i++ {
		err := env.posts.Create(&model.Post{
			UserID:  session.UserID,
			Title:   fmt.Sprintf("post %d", i),
			Content: "content",
		})
		c.Assert(err, qt.IsNil)
	}

	views, err := env.postSvc.List(ctx, 600)
	c.Assert(err, qt.IsNil)
	c.Assert(len(views), qt.Equals, 500)
}

func TestDeletePost(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "a@x.com", "alice", userOpts{})
	stranger := env.createUser(t, "b@x.com", "bob", userOpts{})
	admin := env.createUser(t, "root@x.com", "root", userOpts{admin: true})

	c.Assert(env.postSvc.Create(ctx, author, "one", "content", ""), qt.IsNil)
	c.Assert(env.postSvc.Create(ctx, author, "two", "content", ""), qt.IsNil)

	views, err := env.postSvc.List(ctx, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(len(views), qt.Equals, 2)

	c.Assert(env.postSvc.Delete(ctx, nil, views[0].ID), qt.ErrorIs, app.ErrAuthRequired)
	c.Assert(env.postSvc.Delete(ctx, stranger, views[0].ID), qt.ErrorIs, app.ErrForbidden)
	c.Assert(env.postCount(t), qt.Equals, int64(2))

	c.Assert(env.postSvc.Delete(ctx, author, views[0].ID), qt.IsNil)
	c.Assert(env.postSvc.Delete(ctx, admin, views[1].ID), qt.IsNil)
	c.Assert(env.postCount(t), qt.Equals, int64(0))

	c.Assert(env.postSvc.Delete(ctx, author, views[0].ID), qt.ErrorIs, app.ErrNotFound)
}
