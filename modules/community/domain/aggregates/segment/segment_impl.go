package segment

import (
	"time"

	"github.com/google/uuid"
)

type impl struct {
	id               uuid.UUID
	level            Level
	name             string
	slug             string
	parentID         uuid.UUID
	parentSlug       string
	parentName       string
	grandparentSlug  string
	grandparentName  string
	activityTypes    ActivityTypes
	activityChannels ActivityChannels
	createdAt        time.Time
	updatedAt        time.Time
}

func (s *impl) ID() uuid.UUID {
	return s.id
}

func (s *impl) Level() Level {
	return s.level
}

func (s *impl) Name() string {
	return s.name
}

func (s *impl) Slug() string {
	return s.slug
}

func (s *impl) ParentID() uuid.UUID {
	return s.parentID
}

func (s *impl) ParentSlug() string {
	return s.parentSlug
}

func (s *impl) ParentName() string {
	return s.parentName
}

func (s *impl) GrandparentSlug() string {
	return s.grandparentSlug
}

func (s *impl) GrandparentName() string {
	return s.grandparentName
}

func (s *impl) ActivityTypes() ActivityTypes {
	return s.activityTypes
}

func (s *impl) ActivityChannels() ActivityChannels {
	return s.activityChannels
}

func (s *impl) CreatedAt() time.Time {
	return s.createdAt
}

func (s *impl) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *impl) WithName(name string) Segment {
	out := *s
	out.name = name
	out.updatedAt = time.Now()
	return &out
}

func (s *impl) WithSlug(slug string) Segment {
	out := *s
	out.slug = slug
	out.updatedAt = time.Now()
	return &out
}

func (s *impl) WithActivityTypes(types ActivityTypes) Segment {
	out := *s
	out.activityTypes = types
	out.updatedAt = time.Now()
	return &out
}

func (s *impl) WithActivityChannels(channels ActivityChannels) Segment {
	out := *s
	out.activityChannels = channels
	out.updatedAt = time.Now()
	return &out
}
