package segment

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrSegmentNotFound = errors.New("segment not found")

// FindParams narrows level-scoped queries.
type FindParams struct {
	Search string
	Limit  int
	Offset int
	SortBy []string
}

// ChildChanges is the bulk update applied to the direct children of a
// renamed segment; nil fields are left untouched.
type ChildChanges struct {
	Name *string
	Slug *string
}

func (c ChildChanges) Empty() bool {
	return c.Name == nil && c.Slug == nil
}

type Repository interface {
	Create(ctx context.Context, data Segment) (Segment, error)
	Update(ctx context.Context, data Segment) (Segment, error)
	// UpdateChildren rewrites the denormalized parent name/slug on every
	// direct child of the given segment in one statement.
	UpdateChildren(ctx context.Context, parentID uuid.UUID, changes ChildChanges) error
	GetByID(ctx context.Context, id uuid.UUID) (Segment, error)
	GetBySlug(ctx context.Context, slug string, level Level) (Segment, error)
	GetProjectGroups(ctx context.Context, params *FindParams) ([]Segment, error)
	GetProjects(ctx context.Context, params *FindParams) ([]Segment, error)
	GetSubprojects(ctx context.Context, params *FindParams) ([]Segment, error)
	Count(ctx context.Context, level Level, params *FindParams) (int64, error)
}
