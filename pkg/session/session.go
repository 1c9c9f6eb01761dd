// Package session persists aggregated stacks between the processing and
// generation steps, so a stack collected once can be rendered many times.
package session

import (
	"context"

	"github.com/stackshift-net/stackshift/pkg/model"
)

// Store saves and loads aggregated stacks by name.
type Store interface {
	Save(ctx context.Context, st *model.Stack) error
	Load(ctx context.Context, name string) (*model.Stack, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}
