// Package resource maps the six uniform REST operations of a collection
// endpoint onto a Requester.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rpggio/outbreakwatch/internal/patch"
)

var (
	// ErrInvalidID is returned for ids that the API can never have assigned.
	ErrInvalidID = errors.New("invalid id: must be a positive integer")

	// ErrEmptyPatch is returned when a partial update carries no operations.
	ErrEmptyPatch = errors.New("patch has no operations")
)

// Requester issues one JSON API call. *apiclient.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Collection exposes list, get, create, replace, patch and delete for one
// resource kind. L is the list shape, D the detail shape and P the create
// and replace payload.
type Collection[L, D, P any] struct {
	req  Requester
	path string
}

// NewCollection binds a collection to its path relative to the API base,
// e.g. "api/outbreaks".
func NewCollection[L, D, P any](req Requester, path string) *Collection[L, D, P] {
	return &Collection[L, D, P]{req: req, path: strings.Trim(path, "/")}
}

// List fetches every record in list shape.
func (c *Collection[L, D, P]) List(ctx context.Context) ([]L, error) {
	var items []L
	if err := c.req.Do(ctx, http.MethodGet, c.path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []L{}
	}
	return items, nil
}

// Get fetches one record in detail shape.
func (c *Collection[L, D, P]) Get(ctx context.Context, id int64) (*D, error) {
	path, err := c.itemPath(id)
	if err != nil {
		return nil, err
	}
	var item D
	if err := c.req.Do(ctx, http.MethodGet, path, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new record and returns it with its server-assigned id.
func (c *Collection[L, D, P]) Create(ctx context.Context, payload P) (*D, error) {
	var item D
	if err := c.req.Do(ctx, http.MethodPost, c.path, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Replace overwrites the full record.
func (c *Collection[L, D, P]) Replace(ctx context.Context, id int64, payload P) error {
	path, err := c.itemPath(id)
	if err != nil {
		return err
	}
	return c.req.Do(ctx, http.MethodPut, path, payload, nil)
}

// Patch applies partial-update operations to the record.
func (c *Collection[L, D, P]) Patch(ctx context.Context, id int64, ops []patch.Operation) error {
	path, err := c.itemPath(id)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return ErrEmptyPatch
	}
	return c.req.Do(ctx, http.MethodPatch, path, ops, nil)
}

// Delete removes the record.
func (c *Collection[L, D, P]) Delete(ctx context.Context, id int64) error {
	path, err := c.itemPath(id)
	if err != nil {
		return err
	}
	return c.req.Do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Collection[L, D, P]) itemPath(id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return fmt.Sprintf("%s/%d", c.path, id), nil
}
