package facility_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rpggio/outbreakwatch/internal/apiclient"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/resource/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFacilityService_CRUD(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	payload := facility.Payload{Name: "Maple Lodge", Address: "1 Maple St", Setting: "LTCH"}

	req.On("Do", ctx, http.MethodPost, "api/facilities", payload, mock.Anything).
		Return(`{"facilityId":2,"name":"Maple Lodge","address":"1 Maple St","setting":"LTCH"}`, nil)
	req.On("Do", ctx, http.MethodPut, "api/facilities/2", payload, nil).Return(nil, nil)
	req.On("Do", ctx, http.MethodDelete, "api/facilities/2", nil, nil).Return(nil, nil)

	svc := facility.NewService(req)
	created, err := svc.Create(ctx, payload)
	require.NoError(t, err)
	require.Equal(t, facility.Facility{ID: 2, Name: "Maple Lodge", Address: "1 Maple St", Setting: "LTCH"}, *created)

	require.NoError(t, svc.Replace(ctx, 2, payload))
	require.NoError(t, svc.Delete(ctx, 2))
	req.AssertExpectations(t)
}

func TestFacilityService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	req.On("Do", ctx, http.MethodGet, "api/facilities/99", nil, mock.Anything).
		Return(nil, &apiclient.RequestError{StatusCode: http.StatusNotFound, Message: "Not Found"})

	_, err := facility.NewService(req).Get(ctx, 99)
	require.True(t, apiclient.IsNotFound(err))
}

func TestFacilityService_Validation(t *testing.T) {
	req := &mocks.Requester{}
	svc := facility.NewService(req)

	_, err := svc.Create(context.Background(), facility.Payload{Name: "x", Address: " "})
	require.ErrorIs(t, err, facility.ErrInvalidInput)

	_, err = svc.PatchField(context.Background(), 2, "name", "")
	require.ErrorIs(t, err, patch.ErrValidation)

	req.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFacilityService_PatchField(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	ops := []patch.Operation{{Op: "replace", Path: "/setting", Value: "Retirement home"}}
	req.On("Do", ctx, http.MethodPatch, "api/facilities/2", ops, nil).Return(nil, nil)

	op, err := facility.NewService(req).PatchField(ctx, 2, "setting", "Retirement home")
	require.NoError(t, err)
	require.Equal(t, "/setting", op.Path)
	req.AssertExpectations(t)
}

func TestFilter(t *testing.T) {
	items := []facility.Facility{
		{ID: 1, Name: "Maple Lodge", Address: "1 Maple St", Setting: "LTCH"},
		{ID: 2, Name: "Cedar House", Address: "9 Queen St", Setting: "Retirement home"},
	}
	require.Len(t, facility.Filter(items, ""), 2)
	require.Equal(t, []facility.Facility{items[1]}, facility.Filter(items, "queen"))
	require.Equal(t, []facility.Facility{items[0]}, facility.Filter(items, "ltch"))
	require.Empty(t, facility.Filter(items, "hospital"))
}
