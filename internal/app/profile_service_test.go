package app_test

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"community-board/internal/app"
	"community-board/internal/gateway"
	"community-board/internal/model"
)

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		nickname string
	}{
		{name: "empty email", email: "", password: "pw", nickname: "alice"},
		{name: "empty password", email: "a@x.com", password: "", nickname: "alice"},
		{name: "empty nickname", email: "a@x.com", password: "pw", nickname: ""},
		{name: "whitespace nickname", email: "a@x.com", password: "pw", nickname: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			env := newTestEnv(t)

			_, err := env.profileSvc.SignUp(context.Background(), tt.email, tt.password, tt.nickname)
			c.Assert(err, qt.ErrorIs, app.ErrValidation)
			c.Assert(env.profileCount(t), qt.Equals, int64(0))
		})
	}
}

func TestSignUpCreatesProfileWithNickname(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	identity, err := env.profileSvc.SignUp(ctx, "a@x.com", "pw", "alice")
	c.Assert(err, qt.IsNil)
	c.Assert(identity.Email, qt.Equals, "a@x.com")

	profile, err := env.profiles.GetByID(identity.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(profile, qt.IsNotNil)
	c.Assert(profile.Nickname, qt.IsNotNil)
	c.Assert(*profile.Nickname, qt.Equals, "alice")
	c.Assert(profile.Email, qt.IsNotNil)
	c.Assert(*profile.Email, qt.Equals, "a@x.com")
}

func TestSignUpNicknameConflictLeavesNoSideEffects(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.profileSvc.SignUp(ctx, "a@x.com", "pw", "alice")
	c.Assert(err, qt.IsNil)

	_, err = env.profileSvc.SignUp(ctx, "b@x.com", "pw", "alice")
	c.Assert(err, qt.ErrorIs, app.ErrNicknameTaken)

	// the conflict must fire before identity creation
	credential, err := env.credentials.GetByEmail("b@x.com")
	c.Assert(err, qt.IsNil)
	c.Assert(credential, qt.IsNil)
	c.Assert(env.profileCount(t), qt.Equals, int64(1))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.profileSvc.SignUp(ctx, "a@x.com", "pw", "alice")
	c.Assert(err, qt.IsNil)

	_, err = env.profileSvc.SignUp(ctx, "a@x.com", "pw", "bob")
	c.Assert(err, qt.ErrorIs, gateway.ErrEmailExists)
}

func TestEnsureProfileIdempotent(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	identity := &gateway.Identity{ID: "user-1", Email: "a@x.com"}
	env.profileSvc.EnsureProfile(ctx, identity, "")
	c.Assert(env.profileCount(t), qt.Equals, int64(1))

	profile, err := env.profiles.GetByID("user-1")
	c.Assert(err, qt.IsNil)
	c.Assert(profile, qt.IsNotNil)
	c.Assert(profile.Nickname, qt.IsNil)
	c.Assert(*profile.Email, qt.Equals, "a@x.com")

	// second call is a no-op even with a different nickname
	env.profileSvc.EnsureProfile(ctx, identity, "late-nick")
	c.Assert(env.profileCount(t), qt.Equals, int64(1))
	profile, err = env.profiles.GetByID("user-1")
	c.Assert(err, qt.IsNil)
	c.Assert(profile.Nickname, qt.IsNil)
}

func TestEnsureProfileIgnoresNilIdentity(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)

	env.profileSvc.EnsureProfile(context.Background(), nil, "alice")
	c.Assert(env.profileCount(t), qt.Equals, int64(0))
}

func TestSignInProvisionsMissingProfile(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	// credential exists but nothing ever created the profile
	identity, err := env.gateway.SignUp(ctx, "a@x.com", "password1")
	c.Assert(err, qt.IsNil)

	session, err := env.profileSvc.SignIn(ctx, "a@x.com", "password1")
	c.Assert(err, qt.IsNil)
	c.Assert(session.UserID, qt.Equals, identity.ID)

	profile, err := env.profiles.GetByID(identity.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(profile, qt.IsNotNil)
	c.Assert(profile.Nickname, qt.IsNil)
}

func TestSignInInvalidCredentials(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.profileSvc.SignUp(ctx, "a@x.com", "pw", "alice")
	c.Assert(err, qt.IsNil)

	_, err = env.profileSvc.SignIn(ctx, "a@x.com", "wrong")
	c.Assert(err, qt.ErrorIs, gateway.ErrInvalidCredentials)
}

func TestSearchNick(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	for _, nick := range []string{"Alice", "alicia", "bob"} {
		n := nick
		email := n + "@x.com"
		err := env.profiles.Create(&model.Profile{ID: "id-" + n, Nickname: &n, Email: &email})
		c.Assert(err, qt.IsNil)
	}

	results, err := env.profileSvc.SearchNick(ctx, "ALI", 50)
	c.Assert(err, qt.IsNil)
	c.Assert(len(results), qt.Equals, 2)

	results, err = env.profileSvc.SearchNick(ctx, "bob", 50)
	c.Assert(err, qt.IsNil)
	c.Assert(len(results), qt.Equals, 1)
	c.Assert(results[0].Nickname, qt.Equals, "bob")
	c.Assert(results[0].Email, qt.Equals, "bob@x.com")
}

func TestSearchNickBlankQueryShortCircuits(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)

	queries := env.countQueries(t, func() {
		results, err := env.profileSvc.SearchNick(context.Background(), "   ", 50)
		c.Assert(err, qt.IsNil)
		c.Assert(results, qt.IsNil)
	})
	c.Assert(queries, qt.Equals, 0)
}
