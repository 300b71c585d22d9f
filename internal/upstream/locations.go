package upstream

import (
	"context"
	"fmt"
	"net/http"

	"roomstay-admin/internal/domain/location"
)

var locationListPaths = []string{"/locations/paged-search", "/locations"}

type Locations struct {
	c *Client
}

func NewLocations(c *Client) *Locations {
	return &Locations{c: c}
}

func (l *Locations) List(ctx context.Context, p ListParams) (Page[location.Location], error) {
	return list[location.Location](ctx, l.c, locationListPaths, p, false)
}

func (l *Locations) Get(ctx context.Context, id int64) (location.Location, error) {
	return getOne[location.Location](ctx, l.c, []string{fmt.Sprintf("/locations/%d", id)}, false)
}

func (l *Locations) Create(ctx context.Context, payload location.Location) (location.Location, error) {
	return createOne[location.Location](ctx, l.c, []string{"/locations"}, payload.CreateBody(), true)
}

func (l *Locations) Update(ctx context.Context, id int64, payload location.Location) (location.Location, error) {
	return putOne[location.Location](ctx, l.c, fmt.Sprintf("/locations/%d", id), payload.UpdateBody(id), true)
}

func (l *Locations) Delete(ctx context.Context, id int64) error {
	_, err := l.c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/locations/%d", id), authed: true})
	return err
}
