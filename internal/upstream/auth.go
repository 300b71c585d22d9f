package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/pkg/session"
)

type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

type signinBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signinContent is the envelope content of /auth/signin.
type signinContent struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

// Signin exchanges credentials for the upstream identity and bearer
// token. Persisting the result is the caller's business.
func (a *Auth) Signin(ctx context.Context, email, password string) (session.Identity, error) {
	raw, err := a.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/signin",
		body:   signinBody{Email: email, Password: password},
	})
	if err != nil {
		return session.Identity{}, err
	}

	var content signinContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return session.Identity{}, WrapAPIErr(a.c.logger, KindValidation, "failed to decode signin response", err)
	}

	return session.Identity{
		UserID:      content.User.ID,
		Name:        content.User.Name,
		Email:       content.User.Email,
		Role:        content.User.Role,
		AccessToken: content.Token,
	}, nil
}

func (a *Auth) Signup(ctx context.Context, payload user.User) (user.User, error) {
	return createOne[user.User](ctx, a.c, []string{"/auth/signup"}, payload.CreateBody(), false)
}
