package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
	"github.com/commverse/community-sdk/pkg/composables"
	"github.com/commverse/community-sdk/pkg/eventbus"
	"github.com/commverse/community-sdk/pkg/metrics"
	"github.com/commverse/community-sdk/pkg/serrors"
)

var (
	ErrGroupHasParent = serrors.NewError(
		"SEGMENT_GROUP_HAS_PARENT",
		"a project group is always a root and cannot declare a parent",
		"Segments.Validation.GroupHasParent",
	)
	ErrProjectHasGrandparent = serrors.NewError(
		"SEGMENT_PROJECT_HAS_GRANDPARENT",
		"a project cannot declare a grandparent",
		"Segments.Validation.ProjectHasGrandparent",
	)
	ErrProjectMissingParent = serrors.NewError(
		"SEGMENT_PROJECT_MISSING_PARENT",
		"a project must belong to a project group",
		"Segments.Validation.ProjectMissingParent",
	)
	ErrSubprojectMissingParents = serrors.NewError(
		"SEGMENT_SUBPROJECT_MISSING_PARENTS",
		"a subproject must have both a parent project and a grandparent group",
		"Segments.Validation.SubprojectMissingParents",
	)
)

// ErrParentGroupNotFound names the group a project tried to attach to.
func ErrParentGroupNotFound(slug string) *serrors.NotFoundError {
	return serrors.NewNotFoundError(slug, "Segments.Errors.ParentGroupNotFound")
}

// SegmentService owns the creation and rename cascades of the hierarchy.
// Every multi-step mutation runs as an ordered list of steps inside a single
// transaction; a failing step rolls the whole cascade back.
type SegmentService struct {
	repo       segment.Repository
	transactor composables.Transactor
	publisher  eventbus.EventBus
}

func NewSegmentService(
	repo segment.Repository,
	transactor composables.Transactor,
	publisher eventbus.EventBus,
) *SegmentService {
	return &SegmentService{
		repo:       repo,
		transactor: transactor,
		publisher:  publisher,
	}
}

type cascadeStep func(ctx context.Context) error

func (s *SegmentService) runCascade(ctx context.Context, steps []cascadeStep) error {
	return s.transactor.InTx(ctx, func(txCtx context.Context) error {
		for _, step := range steps {
			if err := step(txCtx); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateProjectGroup creates the group plus its project and subproject
// counterparts atomically: three rows sharing the group's name and slug.
func (s *SegmentService) CreateProjectGroup(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	if data.ParentSlug() != "" || data.GrandparentSlug() != "" {
		return nil, ErrGroupHasParent
	}

	var group segment.Segment
	steps := []cascadeStep{
		func(txCtx context.Context) error {
			var err error
			group, err = s.repo.Create(txCtx, data)
			return err
		},
		func(txCtx context.Context) error {
			project := segment.New(data.Name(), data.Slug(), segment.LevelProject,
				segment.WithParent(data.Slug(), data.Name()),
				segment.WithActivityTypes(data.ActivityTypes()),
				segment.WithActivityChannels(data.ActivityChannels()),
			)
			_, err := s.repo.Create(txCtx, project)
			return err
		},
		func(txCtx context.Context) error {
			subproject := segment.New(data.Name(), data.Slug(), segment.LevelSubproject,
				segment.WithParent(data.Slug(), data.Name()),
				segment.WithGrandparent(data.Slug(), data.Name()),
				segment.WithActivityTypes(data.ActivityTypes()),
				segment.WithActivityChannels(data.ActivityChannels()),
			)
			_, err := s.repo.Create(txCtx, subproject)
			return err
		},
		func(txCtx context.Context) error {
			var err error
			group, err = s.repo.GetByID(txCtx, group.ID())
			return err
		},
	}
	if err := s.runCascade(ctx, steps); err != nil {
		return nil, err
	}

	metrics.SegmentCreates.WithLabelValues(string(segment.LevelProjectGroup)).Inc()
	s.publisher.Publish(segment.NewCreatedEvent(group))
	return group, nil
}

// CreateProject creates the project and its subproject counterpart
// atomically. The parent group must exist before any write happens.
func (s *SegmentService) CreateProject(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	if data.GrandparentSlug() != "" {
		return nil, ErrProjectHasGrandparent
	}
	if data.ParentSlug() == "" {
		return nil, ErrProjectMissingParent
	}

	parent, err := s.repo.GetBySlug(ctx, data.ParentSlug(), segment.LevelProjectGroup)
	if err != nil {
		if errors.Is(err, segment.ErrSegmentNotFound) {
			return nil, ErrParentGroupNotFound(data.ParentSlug())
		}
		return nil, err
	}

	var project segment.Segment
	steps := []cascadeStep{
		func(txCtx context.Context) error {
			row := segment.New(data.Name(), data.Slug(), segment.LevelProject,
				segment.WithID(data.ID()),
				segment.WithParent(parent.Slug(), parent.Name()),
				segment.WithActivityTypes(data.ActivityTypes()),
				segment.WithActivityChannels(data.ActivityChannels()),
			)
			var err error
			project, err = s.repo.Create(txCtx, row)
			return err
		},
		func(txCtx context.Context) error {
			subproject := segment.New(data.Name(), data.Slug(), segment.LevelSubproject,
				segment.WithParent(data.Slug(), data.Name()),
				segment.WithGrandparent(parent.Slug(), parent.Name()),
				segment.WithActivityTypes(data.ActivityTypes()),
				segment.WithActivityChannels(data.ActivityChannels()),
			)
			_, err := s.repo.Create(txCtx, subproject)
			return err
		},
		func(txCtx context.Context) error {
			var err error
			project, err = s.repo.GetByID(txCtx, project.ID())
			return err
		},
	}
	if err := s.runCascade(ctx, steps); err != nil {
		return nil, err
	}

	metrics.SegmentCreates.WithLabelValues(string(segment.LevelProject)).Inc()
	s.publisher.Publish(segment.NewCreatedEvent(project))
	return project, nil
}

// CreateSubproject creates a single leaf row. Nothing cascades below a
// subproject, so no transaction is opened.
func (s *SegmentService) CreateSubproject(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	if data.ParentSlug() == "" || data.GrandparentSlug() == "" {
		return nil, ErrSubprojectMissingParents
	}

	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}

	metrics.SegmentCreates.WithLabelValues(string(segment.LevelSubproject)).Inc()
	s.publisher.Publish(segment.NewCreatedEvent(created))
	return created, nil
}

// Update renames a segment. For groups and projects a name or slug change is
// propagated to every direct child in one bulk statement inside the same
// transaction, keeping the denormalized parentName/parentSlug copies
// consistent. Subprojects have no children to propagate to.
func (s *SegmentService) Update(ctx context.Context, id uuid.UUID, data segment.Segment) (segment.Segment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated segment.Segment
	err = s.transactor.InTx(ctx, func(txCtx context.Context) error {
		row := existing.WithName(data.Name()).WithSlug(data.Slug())
		if _, err := s.repo.Update(txCtx, row); err != nil {
			return err
		}

		if !existing.Level().IsSubproject() {
			changes := segment.ChildChanges{}
			if existing.Name() != data.Name() {
				name := data.Name()
				changes.Name = &name
			}
			if existing.Slug() != data.Slug() {
				slug := data.Slug()
				changes.Slug = &slug
			}
			if !changes.Empty() {
				if err := s.repo.UpdateChildren(txCtx, id, changes); err != nil {
					return err
				}
			}
		}

		var err error
		updated, err = s.repo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.SegmentUpdates.WithLabelValues(string(existing.Level())).Inc()
	s.publisher.Publish(segment.NewUpdatedEvent(existing, updated))
	return updated, nil
}
