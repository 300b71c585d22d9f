package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"roomstay-admin/internal/domain/room"
)

var (
	roomListPaths   = []string{"/rooms/paged-search", "/rooms"}
	roomCreatePaths = []string{"/rooms", "/rooms/add-room", "/api/rooms"}
)

type Rooms struct {
	c *Client
}

func NewRooms(c *Client) *Rooms {
	return &Rooms{c: c}
}

func (r *Rooms) List(ctx context.Context, p ListParams) (Page[room.Room], error) {
	return list[room.Room](ctx, r.c, roomListPaths, p, false)
}

func (r *Rooms) ByLocation(ctx context.Context, locationID int64) (Page[room.Room], error) {
	q := url.Values{}
	q.Set("locationId", strconv.FormatInt(locationID, 10))
	raw, err := r.c.do(ctx, call{method: http.MethodGet, path: "/rooms/by-location", query: q})
	if err != nil {
		return Page[room.Room]{}, err
	}
	return decodePage[room.Room](raw)
}

func (r *Rooms) Get(ctx context.Context, id int64) (room.Room, error) {
	return getOne[room.Room](ctx, r.c,
		[]string{fmt.Sprintf("/rooms/%d", id), fmt.Sprintf("/api/rooms/%d", id)}, false)
}

func (r *Rooms) Create(ctx context.Context, payload room.Room) (room.Room, error) {
	return createOne[room.Room](ctx, r.c, roomCreatePaths, payload.CreateBody(), true)
}

func (r *Rooms) Update(ctx context.Context, id int64, payload room.Room) (room.Room, error) {
	return putOne[room.Room](ctx, r.c, fmt.Sprintf("/rooms/%d", id), payload.UpdateBody(id), true)
}

func (r *Rooms) Delete(ctx context.Context, id int64) error {
	_, err := r.c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/rooms/%d", id), authed: true})
	return err
}

func (r *Rooms) UploadImage(ctx context.Context, id int64, filename string, content io.Reader) (room.Room, error) {
	q := url.Values{}
	q.Set("roomId", strconv.FormatInt(id, 10))
	return uploadOne[room.Room](ctx, r.c, "/rooms/upload-image", q, "formFile", filename, content)
}
