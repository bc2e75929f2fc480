package outbound

import (
	"context"

	"github.com/ajkula/livetext/domain/model"
)

// RegisteredResource describes one entry of a ResourceRegistry.
type RegisteredResource struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// ResourceRegistry keeps opened text resources addressable by ID for callers
// that share them across goroutines (e.g. HTTP handlers).
type ResourceRegistry interface {
	// stores res and returns its new identifier
	Add(ctx context.Context, res *model.TextResource) (string, error)

	// runs fn with exclusive access to the resource identified by id
	With(ctx context.Context, id string, fn func(res *model.TextResource) error) error

	// lists all registered resources
	List(ctx context.Context) ([]RegisteredResource, error)
}
