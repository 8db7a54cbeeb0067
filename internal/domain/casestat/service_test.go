package casestat_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/resource/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCaseStatService_PatchField(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	ops := []patch.Operation{{Op: "replace", Path: "/residentCases", Value: int64(5)}}
	req.On("Do", ctx, http.MethodPatch, "api/casestats/6", ops, nil).Return(nil, nil)

	op, err := casestat.NewService(req).PatchField(ctx, 6, "residentCases", "5")
	require.NoError(t, err)
	require.Equal(t, int64(5), op.Value)
	req.AssertExpectations(t)
}

func TestCaseStatService_PatchField_NonNumeric(t *testing.T) {
	req := &mocks.Requester{}
	_, err := casestat.NewService(req).PatchField(context.Background(), 6, "deaths", "abc")
	require.ErrorIs(t, err, patch.ErrValidation)
	req.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCaseStatService_PatchField_RejectsInvalidCounts(t *testing.T) {
	tests := []struct {
		field string
		raw   string
	}{
		{"deaths", "2.5"},
		{"staffCases", "-3"},
		{"outbreakId", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.field+" "+tt.raw, func(t *testing.T) {
			req := &mocks.Requester{}
			_, err := casestat.NewService(req).PatchField(context.Background(), 6, tt.field, tt.raw)
			require.ErrorIs(t, err, patch.ErrValidation)
			req.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCaseStatService_Create(t *testing.T) {
	ctx := context.Background()
	req := &mocks.Requester{}
	payload := casestat.Payload{OutbreakID: 3, ResidentCases: 4, StaffCases: 2, Deaths: 1}
	req.On("Do", ctx, http.MethodPost, "api/casestats", payload, mock.Anything).
		Return(`{"caseStatId":9,"outbreakId":3,"residentCases":4,"staffCases":2,"deaths":1}`, nil)

	created, err := casestat.NewService(req).Create(ctx, payload)
	require.NoError(t, err)
	require.Equal(t, 6, created.TotalCases())

	_, err = casestat.NewService(req).Create(ctx, casestat.Payload{OutbreakID: 3, Deaths: -1})
	require.ErrorIs(t, err, casestat.ErrInvalidInput)
	req.AssertNumberOfCalls(t, "Do", 1)
}

func TestForOutbreak(t *testing.T) {
	stats := []casestat.CaseStat{{ID: 1, OutbreakID: 3}, {ID: 2, OutbreakID: 4}, {ID: 3, OutbreakID: 3}}
	require.Len(t, casestat.ForOutbreak(stats, 3), 2)
	require.Empty(t, casestat.ForOutbreak(stats, 5))
	require.Equal(t, 7, casestat.Deaths(casestat.CaseStat{Deaths: 7}))
}
