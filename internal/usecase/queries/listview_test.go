//go:build unit

package queries_test

import (
	"fmt"
	"testing"

	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/usecase/queries"
	"roomstay-admin/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuerySetters(t *testing.T) {
	t.Run("changing the search term snaps back to page 1", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetPage(4)
		q.SetSearchTerm("suite")
		assert.Equal(t, 1, q.PageIndex)
	})

	t.Run("setting the same search term keeps the page", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetSearchTerm("suite")
		q.SetPage(3)
		q.SetSearchTerm("suite")
		assert.Equal(t, 3, q.PageIndex)
	})

	t.Run("changing a filter snaps back to page 1", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetPage(5)
		q.SetFilter("wifi", "true")
		assert.Equal(t, 1, q.PageIndex)
	})

	t.Run("re-setting an identical filter keeps the page", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetFilter("wifi", "true")
		q.SetPage(2)
		q.SetFilter("wifi", "true")
		assert.Equal(t, 2, q.PageIndex)
	})

	t.Run("clearing a filter resets the page too", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetFilter("wifi", "true")
		q.SetPage(2)
		q.SetFilter("wifi", "")
		assert.Equal(t, 1, q.PageIndex)
		assert.NotContains(t, q.Filters, "wifi")
	})

	t.Run("page clamps to 1", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetPage(0)
		assert.Equal(t, 1, q.PageIndex)
		q.SetPage(-3)
		assert.Equal(t, 1, q.PageIndex)
	})
}

func TestApplyFilter(t *testing.T) {
	rooms := []room.Room{
		{ID: 1, Name: "Seaside Suite", Description: "ocean view", WiFi: true, LocationID: 1},
		{ID: 2, Name: "Garden Bungalow", Description: "quiet garden", WiFi: false, LocationID: 1},
		{ID: 3, Name: "City Loft", Description: "downtown SUITE deal", WiFi: true, LocationID: 2},
	}

	t.Run("keyword match is case-insensitive across search fields", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetSearchTerm("SuItE")
		got := queries.ApplyFilter(rooms, q)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("field filters AND together with the keyword", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetSearchTerm("suite")
		q.SetFilter("wifi", "true")
		q.SetFilter("locationId", "2")
		got := queries.ApplyFilter(rooms, q)
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("unknown filter field matches nothing", func(t *testing.T) {
		q := queries.NewListQuery(6)
		q.SetFilter("petFriendly", "true")
		assert.Empty(t, queries.ApplyFilter(rooms, q))
	})

	t.Run("preserves input order", func(t *testing.T) {
		q := queries.NewListQuery(6)
		got := queries.ApplyFilter(rooms, q)
		if diff := cmp.Diff(rooms, got); diff != "" {
			t.Errorf("order changed (-want +got):\n%s", diff)
		}
	})
}

func TestPaginate(t *testing.T) {
	var users []user.User
	for i := 1; i <= 13; i++ {
		users = append(users, builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
			b.ID = int64(i)
		}).Build())
	}

	t.Run("totalPages rounds up", func(t *testing.T) {
		page, totalPages := queries.Paginate(users, 1, 6)
		assert.Len(t, page, 6)
		assert.Equal(t, 3, totalPages)
	})

	t.Run("last page carries the remainder", func(t *testing.T) {
		page, _ := queries.Paginate(users, 3, 6)
		assert.Len(t, page, 1)
		assert.Equal(t, int64(13), page[0].ID)
	})

	t.Run("empty input still reports one page", func(t *testing.T) {
		page, totalPages := queries.Paginate([]user.User{}, 1, 6)
		assert.Empty(t, page)
		assert.Equal(t, 1, totalPages)
	})

	t.Run("out-of-range page returns no rows", func(t *testing.T) {
		page, totalPages := queries.Paginate(users, 9, 6)
		assert.Nil(t, page)
		assert.Equal(t, 3, totalPages)
	})
}

func TestPageWindow(t *testing.T) {
	num := func(p int) queries.PageItem { return queries.PageItem{Page: p} }
	gap := queries.PageItem{Ellipsis: true}

	tests := []struct {
		current, total int
		want           []queries.PageItem
	}{
		{1, 1, []queries.PageItem{num(1)}},
		{3, 7, []queries.PageItem{num(1), num(2), num(3), num(4), num(5), num(6), num(7)}},
		{1, 10, []queries.PageItem{num(1), num(2), gap, num(10)}},
		{2, 10, []queries.PageItem{num(1), num(2), num(3), gap, num(10)}},
		{5, 10, []queries.PageItem{num(1), gap, num(4), num(5), num(6), gap, num(10)}},
		{9, 10, []queries.PageItem{num(1), gap, num(8), num(9), num(10)}},
		{10, 10, []queries.PageItem{num(1), gap, num(9), num(10)}},
		// adjacent kept pages never produce an ellipsis
		{3, 8, []queries.PageItem{num(1), num(2), num(3), num(4), gap, num(8)}},
		// a gap of exactly one page shows the page, not dots
		{4, 10, []queries.PageItem{num(1), num(2), num(3), num(4), num(5), gap, num(10)}},
		{7, 10, []queries.PageItem{num(1), gap, num(6), num(7), num(8), num(9), num(10)}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("current=%d total=%d", tt.current, tt.total), func(t *testing.T) {
			got := queries.PageWindow(tt.current, tt.total)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("window mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("out-of-range current is clamped", func(t *testing.T) {
		got := queries.PageWindow(42, 5)
		want := []queries.PageItem{num(1), num(2), num(3), num(4), num(5)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("window mismatch (-want +got):\n%s", diff)
		}
	})
}
