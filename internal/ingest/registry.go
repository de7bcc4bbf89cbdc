package ingest

import (
	"context"

	"github.com/chronoline/backend/internal/repos"
)

// CategoryRegistry is the authoritative set of valid leaf categories. The
// pipeline only reads it; lookups are side-effect-free.
type CategoryRegistry interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type repoRegistry struct {
	categories repos.CategoryRepo
}

// NewRepoRegistry backs the registry with the categories table.
func NewRepoRegistry(categories repos.CategoryRepo) CategoryRegistry {
	return &repoRegistry{categories: categories}
}

func (r *repoRegistry) Exists(ctx context.Context, id string) (bool, error) {
	return r.categories.ExistsLeaf(ctx, nil, id)
}
