package resource_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/resource"
	"github.com/rpggio/outbreakwatch/internal/resource/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type payload struct {
	Name string `json:"name"`
}

func newCollection(req *mocks.Requester) *resource.Collection[item, item, payload] {
	return resource.NewCollection[item, item, payload](req, "/api/widgets/")
}

func TestCollection_List(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	req.On("Do", ctx, http.MethodGet, "api/widgets", nil, mock.Anything).Return(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`, nil)

	items, err := newCollection(req).List(ctx)
	require.NoError(t, err)
	require.Equal(t, []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, items)
	req.AssertExpectations(t)
}

func TestCollection_List_EmptyBody(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	req.On("Do", ctx, http.MethodGet, "api/widgets", nil, mock.Anything).Return(nil, nil)

	items, err := newCollection(req).List(ctx)
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestCollection_GetCreateReplaceDelete(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	req.On("Do", ctx, http.MethodGet, "api/widgets/4", nil, mock.Anything).Return(`{"id":4,"name":"x"}`, nil)
	req.On("Do", ctx, http.MethodPost, "api/widgets", payload{Name: "y"}, mock.Anything).Return(`{"id":5,"name":"y"}`, nil)
	req.On("Do", ctx, http.MethodPut, "api/widgets/5", payload{Name: "z"}, nil).Return(nil, nil)
	req.On("Do", ctx, http.MethodDelete, "api/widgets/5", nil, nil).Return(nil, nil)

	c := newCollection(req)

	got, err := c.Get(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, &item{ID: 4, Name: "x"}, got)

	created, err := c.Create(ctx, payload{Name: "y"})
	require.NoError(t, err)
	require.Equal(t, int64(5), created.ID)

	require.NoError(t, c.Replace(ctx, 5, payload{Name: "z"}))
	require.NoError(t, c.Delete(ctx, 5))
	req.AssertExpectations(t)
}

func TestCollection_Patch(t *testing.T) {
	ctx := context.Background()
	ops := []patch.Operation{patch.Replace("name", "renamed")}
	req := &mocks.Requester{}
	req.On("Do", ctx, http.MethodPatch, "api/widgets/3", ops, nil).Return(nil, nil)

	require.NoError(t, newCollection(req).Patch(ctx, 3, ops))
	req.AssertExpectations(t)
}

func TestCollection_RejectsInvalidInputWithoutRequest(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	c := newCollection(req)

	_, err := c.Get(ctx, 0)
	require.ErrorIs(t, err, resource.ErrInvalidID)
	require.ErrorIs(t, c.Replace(ctx, -1, payload{}), resource.ErrInvalidID)
	require.ErrorIs(t, c.Delete(ctx, 0), resource.ErrInvalidID)
	require.ErrorIs(t, c.Patch(ctx, 1, nil), resource.ErrEmptyPatch)

	req.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCollection_PropagatesError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	req := &mocks.Requester{}
	req.On("Do", ctx, http.MethodGet, "api/widgets/8", nil, mock.Anything).Return(nil, boom)

	_, err := newCollection(req).Get(ctx, 8)
	require.ErrorIs(t, err, boom)
}
