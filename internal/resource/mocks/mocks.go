package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// Requester is a mock for resource.Requester.
//
// When the first return value set via Return is a string or []byte, it is
// decoded into out as the response body.
type Requester struct {
	mock.Mock
}

func (m *Requester) Do(ctx context.Context, method, path string, body, out any) error {
	args := m.Called(ctx, method, path, body, out)
	if out != nil {
		var raw []byte
		switch v := args.Get(0).(type) {
		case string:
			raw = []byte(v)
		case []byte:
			raw = v
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}
