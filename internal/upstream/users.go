package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"roomstay-admin/internal/domain/user"
)

// The paged-search route is the documented one; the bare collection
// route is the observed working alternative.
var userListPaths = []string{"/users/paged-search", "/users"}

type Users struct {
	c *Client
}

func NewUsers(c *Client) *Users {
	return &Users{c: c}
}

func (u *Users) List(ctx context.Context, p ListParams) (Page[user.User], error) {
	return list[user.User](ctx, u.c, userListPaths, p, false)
}

func (u *Users) Get(ctx context.Context, id int64) (user.User, error) {
	return getOne[user.User](ctx, u.c, []string{fmt.Sprintf("/users/%d", id)}, false)
}

func (u *Users) Create(ctx context.Context, payload user.User) (user.User, error) {
	return createOne[user.User](ctx, u.c, []string{"/users"}, payload.CreateBody(), true)
}

func (u *Users) Update(ctx context.Context, id int64, payload user.User) (user.User, error) {
	return putOne[user.User](ctx, u.c, fmt.Sprintf("/users/%d", id), payload.UpdateBody(id), true)
}

// Delete takes the id as a query parameter; that is the route the
// upstream actually serves, unlike every other resource.
func (u *Users) Delete(ctx context.Context, id int64) error {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))
	_, err := u.c.do(ctx, call{method: http.MethodDelete, path: "/users", query: q, authed: true})
	return err
}

// UploadAvatar replaces the current user's avatar. The owning record
// is implied by the session, not an explicit id.
func (u *Users) UploadAvatar(ctx context.Context, filename string, content io.Reader) (user.User, error) {
	return uploadOne[user.User](ctx, u.c, "/users/upload-avatar", nil, "formFile", filename, content)
}
