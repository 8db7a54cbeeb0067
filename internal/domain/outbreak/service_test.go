package outbreak_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/resource/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOutbreakService_Create_Normalizes(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}

	want := outbreak.Payload{
		FacilityID:      3,
		OutbreakType:    "Respiratory",
		CausativeAgent1: strPtr("Influenza A"),
		DateBegan:       "2024-01-05T00:00:00.000Z",
		IsActive:        true,
	}
	req.On("Do", ctx, http.MethodPost, "api/outbreaks", want, mock.Anything).
		Return(`{"outbreakId":11,"facilityName":"Maple Lodge","outbreakType":"Respiratory","isActive":true,"causativeAgent1":"Influenza A","causativeAgent2":null,"dateBegan":"2024-01-05T00:00:00.000Z","dateDeclaredOver":null}`, nil)

	svc := outbreak.NewService(req).WithLocation(time.UTC)
	created, err := svc.Create(ctx, outbreak.Payload{
		FacilityID:       3,
		OutbreakType:     "Respiratory",
		CausativeAgent1:  strPtr("Influenza A"),
		CausativeAgent2:  strPtr(""),
		DateBegan:        "2024-01-05",
		DateDeclaredOver: strPtr(" "),
		IsActive:         true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), created.ID)
	require.Equal(t, "Maple Lodge", created.FacilityName)
	require.True(t, created.Ongoing())
	require.Equal(t, []string{"Influenza A"}, created.Agents())
	req.AssertExpectations(t)
}

func TestOutbreakService_Create_InvalidInput(t *testing.T) {
	req := &mocks.Requester{}
	svc := outbreak.NewService(req)

	_, err := svc.Create(context.Background(), outbreak.Payload{OutbreakType: "Enteric", DateBegan: "2024-01-01"})
	require.ErrorIs(t, err, outbreak.ErrInvalidInput)

	err = svc.Replace(context.Background(), 1, outbreak.Payload{FacilityID: 1, DateBegan: "2024-01-01"})
	require.ErrorIs(t, err, outbreak.ErrInvalidInput)

	_, err = svc.Create(context.Background(), outbreak.Payload{FacilityID: 1, OutbreakType: "Enteric", DateBegan: "2024-13-45"})
	require.ErrorIs(t, err, outbreak.ErrInvalidInput)

	req.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOutbreakService_Replace(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	over := "2024-02-01T00:00:00.000Z"
	want := outbreak.Payload{
		FacilityID:       3,
		OutbreakType:     "Enteric",
		DateBegan:        "2024-01-05T00:00:00.000Z",
		DateDeclaredOver: &over,
	}
	req.On("Do", ctx, http.MethodPut, "api/outbreaks/11", want, nil).Return(nil, nil)

	svc := outbreak.NewService(req).WithLocation(time.UTC)
	err := svc.Replace(ctx, 11, outbreak.Payload{
		FacilityID:       3,
		OutbreakType:     "Enteric",
		DateBegan:        "2024-01-05",
		DateDeclaredOver: strPtr("2024-02-01"),
	})
	require.NoError(t, err)
	req.AssertExpectations(t)
}

func TestOutbreakService_PatchField(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	ops := []patch.Operation{{Op: "replace", Path: "/causativeAgent1", Value: nil}}
	req.On("Do", ctx, http.MethodPatch, "api/outbreaks/4", ops, nil).Return(nil, nil)

	op, err := outbreak.NewService(req).PatchField(ctx, 4, "causativeAgent1", "")
	require.NoError(t, err)
	require.Nil(t, op.Value)
	req.AssertExpectations(t)
}

func TestOutbreakService_PatchField_ValidationFailure(t *testing.T) {
	req := &mocks.Requester{}
	_, err := outbreak.NewService(req).PatchField(context.Background(), 4, "isActive", "sometimes")
	require.ErrorIs(t, err, patch.ErrValidation)

	_, err = outbreak.NewService(req).PatchField(context.Background(), 4, "facilityName", "x")
	require.ErrorIs(t, err, patch.ErrValidation)

	req.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOutbreakService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	req.On("Do", ctx, http.MethodGet, "api/outbreaks", nil, mock.Anything).
		Return(`[{"outbreakId":1,"facilityName":"A","outbreakType":"Respiratory","isActive":true}]`, nil)
	req.On("Do", ctx, http.MethodGet, "api/outbreaks/1", nil, mock.Anything).
		Return(`{"outbreakId":1,"facilityName":"A","outbreakType":"Respiratory","isActive":false,"dateBegan":"2024-01-01T05:00:00.000Z","dateDeclaredOver":"2024-01-20T05:00:00.000Z"}`, nil)

	svc := outbreak.NewService(req)
	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].IsActive)

	detail, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, detail.Ongoing())
	require.Empty(t, detail.Agents())
}
