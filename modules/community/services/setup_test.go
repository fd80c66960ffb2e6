package services_test

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
	"github.com/commverse/community-sdk/pkg/eventbus"
	"github.com/commverse/community-sdk/pkg/logging"
)

var errDuplicateSibling = errors.New("duplicate slug among siblings")

// memSegmentRepository is an in-memory segment.Repository with the same
// observable behavior as the Postgres implementation: parent ids resolved at
// insert, sibling slug uniqueness enforced, not-found signalled with
// segment.ErrSegmentNotFound.
type memSegmentRepository struct {
	mu       sync.Mutex
	segments map[uuid.UUID]segment.Segment
	order    []uuid.UUID
}

func newMemSegmentRepository() *memSegmentRepository {
	return &memSegmentRepository{segments: map[uuid.UUID]segment.Segment{}}
}

func (r *memSegmentRepository) snapshot() map[uuid.UUID]segment.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]segment.Segment, len(r.segments))
	for id, s := range r.segments {
		out[id] = s
	}
	return out
}

func (r *memSegmentRepository) restore(snapshot map[uuid.UUID]segment.Segment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = snapshot
	r.order = r.order[:0]
	for id := range snapshot {
		r.order = append(r.order, id)
	}
}

func (r *memSegmentRepository) all() []segment.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]segment.Segment, 0, len(r.segments))
	for _, id := range r.order {
		if s, ok := r.segments[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func rebuild(data segment.Segment, parentID uuid.UUID, parentSlug, parentName string) segment.Segment {
	return segment.New(data.Name(), data.Slug(), data.Level(),
		segment.WithID(data.ID()),
		segment.WithParentID(parentID),
		segment.WithParent(parentSlug, parentName),
		segment.WithGrandparent(data.GrandparentSlug(), data.GrandparentName()),
		segment.WithActivityTypes(data.ActivityTypes()),
		segment.WithActivityChannels(data.ActivityChannels()),
		segment.WithCreatedAt(data.CreatedAt()),
		segment.WithUpdatedAt(data.UpdatedAt()),
	)
}

func (r *memSegmentRepository) Create(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.segments {
		if existing.Level() == data.Level() &&
			existing.Slug() == data.Slug() &&
			existing.ParentSlug() == data.ParentSlug() &&
			existing.GrandparentSlug() == data.GrandparentSlug() {
			return nil, errDuplicateSibling
		}
	}

	// The parent row is pinned by the full chain: a subproject's parent is
	// the project whose own parent is the subproject's grandparent.
	var parentID uuid.UUID
	if parentLevel, ok := data.Level().Parent(); ok && data.ParentSlug() != "" {
		for _, existing := range r.segments {
			if existing.Level() == parentLevel &&
				existing.Slug() == data.ParentSlug() &&
				existing.ParentSlug() == data.GrandparentSlug() {
				parentID = existing.ID()
				break
			}
		}
	}

	stored := rebuild(data, parentID, data.ParentSlug(), data.ParentName())
	r.segments[stored.ID()] = stored
	r.order = append(r.order, stored.ID())
	return stored, nil
}

func (r *memSegmentRepository) Update(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.segments[data.ID()]
	if !ok {
		return nil, segment.ErrSegmentNotFound
	}
	stored := rebuild(data, existing.ParentID(), existing.ParentSlug(), existing.ParentName())
	r.segments[data.ID()] = stored
	return stored, nil
}

func (r *memSegmentRepository) UpdateChildren(ctx context.Context, parentID uuid.UUID, changes segment.ChildChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, child := range r.segments {
		if child.ParentID() != parentID {
			continue
		}
		parentSlug := child.ParentSlug()
		parentName := child.ParentName()
		if changes.Slug != nil {
			parentSlug = *changes.Slug
		}
		if changes.Name != nil {
			parentName = *changes.Name
		}
		r.segments[id] = rebuild(child, parentID, parentSlug, parentName)
	}
	return nil
}

func (r *memSegmentRepository) GetByID(ctx context.Context, id uuid.UUID) (segment.Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.segments[id]; ok {
		return s, nil
	}
	return nil, segment.ErrSegmentNotFound
}

func (r *memSegmentRepository) GetBySlug(ctx context.Context, slug string, level segment.Level) (segment.Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.segments {
		if s.Slug() == slug && s.Level() == level {
			return s, nil
		}
	}
	return nil, segment.ErrSegmentNotFound
}

func (r *memSegmentRepository) byLevel(level segment.Level, params *segment.FindParams) []segment.Segment {
	out := make([]segment.Segment, 0)
	for _, s := range r.all() {
		if s.Level() == level {
			out = append(out, s)
		}
	}
	if params != nil && params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out
}

func (r *memSegmentRepository) GetProjectGroups(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return r.byLevel(segment.LevelProjectGroup, params), nil
}

func (r *memSegmentRepository) GetProjects(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return r.byLevel(segment.LevelProject, params), nil
}

func (r *memSegmentRepository) GetSubprojects(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return r.byLevel(segment.LevelSubproject, params), nil
}

func (r *memSegmentRepository) Count(ctx context.Context, level segment.Level, params *segment.FindParams) (int64, error) {
	return int64(len(r.byLevel(level, nil))), nil
}

// failingSegmentRepository fails the Nth Create call, for probing rollback
// behavior at each cascade step.
type failingSegmentRepository struct {
	*memSegmentRepository
	failOnCreate int
	creates      int
	err          error
}

func (r *failingSegmentRepository) Create(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	r.creates++
	if r.creates == r.failOnCreate {
		return nil, r.err
	}
	return r.memSegmentRepository.Create(ctx, data)
}

// memTransactor mimics begin/commit/rollback over the in-memory repository:
// a snapshot taken at begin is restored when the closure fails.
type memTransactor struct {
	repo    *memSegmentRepository
	inTxRan int
}

func (t *memTransactor) InTx(ctx context.Context, fn func(context.Context) error) error {
	t.inTxRan++
	snapshot := t.repo.snapshot()
	if err := fn(ctx); err != nil {
		t.repo.restore(snapshot)
		return err
	}
	return nil
}

func testPublisher() eventbus.EventBus {
	return eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.PanicLevel))
}
