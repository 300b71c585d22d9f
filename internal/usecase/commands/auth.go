package commands

import (
	"context"

	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/pkg/session"
	"roomstay-admin/internal/upstream"
)

type AuthCommands interface {
	Login(ctx context.Context, email, password string) (session.Identity, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, payload user.User) (user.User, error)
}

type authCommandsImpl struct {
	auth *upstream.Auth
	sess session.Provider
}

func NewAuthCommands(auth *upstream.Auth, sess session.Provider) AuthCommands {
	return &authCommandsImpl{auth: auth, sess: sess}
}

// Login exchanges credentials upstream and persists the resulting
// identity; every authenticated call from then on reads it from the
// session provider.
func (c *authCommandsImpl) Login(ctx context.Context, email, password string) (session.Identity, error) {
	id, err := c.auth.Signin(ctx, email, password)
	if err != nil {
		return session.Identity{}, err
	}
	if err := c.sess.Save(ctx, id); err != nil {
		return session.Identity{}, err
	}
	return id, nil
}

func (c *authCommandsImpl) Logout(ctx context.Context) error {
	return c.sess.Clear(ctx)
}

func (c *authCommandsImpl) Register(ctx context.Context, payload user.User) (user.User, error) {
	return c.auth.Signup(ctx, payload)
}
