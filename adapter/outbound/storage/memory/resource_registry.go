package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ajkula/livetext/domain/model"
	"github.com/ajkula/livetext/domain/port/outbound"
)

type registeredResource struct {
	id    string
	order int
	mu    sync.Mutex // a TextResource has a single owner; callers take turns
	res   *model.TextResource
}

type ResourceRegistry struct {
	resources map[string]*registeredResource
	next      int
	mu        sync.RWMutex
}

func NewResourceRegistry() outbound.ResourceRegistry {
	return &ResourceRegistry{
		resources: make(map[string]*registeredResource),
	}
}

func (r *ResourceRegistry) Add(ctx context.Context, res *model.TextResource) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.resources[id] = &registeredResource{
		id:    id,
		order: r.next,
		res:   res,
	}
	r.next++

	return id, nil
}

func (r *ResourceRegistry) With(ctx context.Context, id string, fn func(res *model.TextResource) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	entry, exists := r.resources[id]
	r.mu.RUnlock()

	if !exists {
		return model.ErrResourceNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return fn(entry.res)
}

// List returns resources in registration order.
func (r *ResourceRegistry) List(ctx context.Context) ([]outbound.RegisteredResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entries := make([]*registeredResource, 0, len(r.resources))
	for _, entry := range r.resources {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})

	result := make([]outbound.RegisteredResource, 0, len(entries))
	for _, entry := range entries {
		result = append(result, outbound.RegisteredResource{
			ID:   entry.id,
			Path: entry.res.Path(),
		})
	}

	return result, nil
}
