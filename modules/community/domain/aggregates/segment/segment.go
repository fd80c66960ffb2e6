package segment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level places a segment in the three-step hierarchy:
// project group -> project -> subproject.
type Level string

const (
	LevelProjectGroup Level = "project_group"
	LevelProject      Level = "project"
	LevelSubproject   Level = "subproject"
)

func (l Level) Valid() bool {
	switch l {
	case LevelProjectGroup, LevelProject, LevelSubproject:
		return true
	}
	return false
}

func (l Level) IsSubproject() bool {
	return l == LevelSubproject
}

// Child returns the level directly below, or false for the leaf level.
func (l Level) Child() (Level, bool) {
	switch l {
	case LevelProjectGroup:
		return LevelProject, true
	case LevelProject:
		return LevelSubproject, true
	}
	return "", false
}

// Parent returns the level directly above, or false for the root level.
func (l Level) Parent() (Level, bool) {
	switch l {
	case LevelProject:
		return LevelProjectGroup, true
	case LevelSubproject:
		return LevelProject, true
	}
	return "", false
}

// Segment is a node in the hierarchy. Parent and grandparent slugs/names are
// denormalized copies kept consistent by the write service; the two activity
// configuration blobs belong to the node itself.
type Segment interface {
	ID() uuid.UUID
	Level() Level
	Name() string
	Slug() string
	ParentID() uuid.UUID
	ParentSlug() string
	ParentName() string
	GrandparentSlug() string
	GrandparentName() string
	ActivityTypes() ActivityTypes
	ActivityChannels() ActivityChannels
	CreatedAt() time.Time
	UpdatedAt() time.Time

	WithName(name string) Segment
	WithSlug(slug string) Segment
	WithActivityTypes(types ActivityTypes) Segment
	WithActivityChannels(channels ActivityChannels) Segment

	Validate() error
}

type Option func(*impl)

func WithID(id uuid.UUID) Option {
	return func(s *impl) {
		s.id = id
	}
}

func WithParent(slug, name string) Option {
	return func(s *impl) {
		s.parentSlug = slug
		s.parentName = name
	}
}

func WithParentID(id uuid.UUID) Option {
	return func(s *impl) {
		s.parentID = id
	}
}

func WithGrandparent(slug, name string) Option {
	return func(s *impl) {
		s.grandparentSlug = slug
		s.grandparentName = name
	}
}

func WithActivityTypes(types ActivityTypes) Option {
	return func(s *impl) {
		s.activityTypes = types
	}
}

func WithActivityChannels(channels ActivityChannels) Option {
	return func(s *impl) {
		s.activityChannels = channels
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(s *impl) {
		s.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(s *impl) {
		s.updatedAt = updatedAt
	}
}

func New(name, slug string, level Level, opts ...Option) Segment {
	s := &impl{
		id:               uuid.New(),
		name:             name,
		slug:             slug,
		level:            level,
		activityTypes:    ActivityTypes{},
		activityChannels: ActivityChannels{},
		createdAt:        time.Now(),
		updatedAt:        time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate enforces the per-level parentage shape: groups are roots, projects
// carry a parent only, subprojects carry both parent and grandparent.
func (s *impl) Validate() error {
	if !s.level.Valid() {
		return fmt.Errorf("invalid segment level %q", s.level)
	}
	switch s.level {
	case LevelProjectGroup:
		if s.parentSlug != "" || s.grandparentSlug != "" {
			return fmt.Errorf("project group %q cannot have a parent", s.slug)
		}
	case LevelProject:
		if s.parentSlug == "" {
			return fmt.Errorf("project %q must belong to a project group", s.slug)
		}
		if s.grandparentSlug != "" {
			return fmt.Errorf("project %q cannot have a grandparent", s.slug)
		}
	case LevelSubproject:
		if s.parentSlug == "" || s.grandparentSlug == "" {
			return fmt.Errorf("subproject %q must have both a parent and a grandparent", s.slug)
		}
	}
	return nil
}
