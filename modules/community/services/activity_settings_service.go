package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
	"github.com/commverse/community-sdk/pkg/eventbus"
	"github.com/commverse/community-sdk/pkg/metrics"
	"github.com/commverse/community-sdk/pkg/serrors"
)

// ErrActivityTypeNotFound carries the flat key that failed to resolve.
func ErrActivityTypeNotFound(key string) *serrors.NotFoundError {
	return serrors.NewNotFoundError(key, "Segments.ActivityTypes.NotFound")
}

// ActivitySettingsService manages the per-segment activity configuration:
// custom activity-type definitions and activity channel lists. Each
// operation is a single-row read-modify-write against the addressed segment;
// last writer wins at the blob level.
type ActivitySettingsService struct {
	repo      segment.Repository
	publisher eventbus.EventBus
}

func NewActivitySettingsService(repo segment.Repository, publisher eventbus.EventBus) *ActivitySettingsService {
	return &ActivitySettingsService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateActivityType registers a custom type under the given platform.
// Creating a key that already exists under the same platform is a no-op
// returning the unchanged configuration.
func (s *ActivitySettingsService) CreateActivityType(
	ctx context.Context,
	segmentID uuid.UUID,
	typeName, platform string,
) (segment.ActivityTypes, error) {
	if strings.TrimSpace(typeName) == "" {
		return nil, serrors.NewFieldRequiredError("type", "Segments.ActivityTypes.TypeRequired")
	}

	seg, err := s.repo.GetByID(ctx, segmentID)
	if err != nil {
		return nil, err
	}

	platformKey := segment.NormalizeKey(platform)
	if platformKey == "" {
		platformKey = segment.PlatformOther
	}
	typeKey := segment.NormalizeKey(typeName)

	types, inserted := seg.ActivityTypes().Insert(platformKey, typeKey, segment.NewActivityTypeDefinition(typeName))
	if !inserted {
		return seg.ActivityTypes(), nil
	}

	updated, err := s.repo.Update(ctx, seg.WithActivityTypes(types))
	if err != nil {
		return nil, err
	}

	metrics.ActivityTypeMutations.WithLabelValues("create").Inc()
	s.publisher.Publish(segment.NewUpdatedEvent(seg, updated))
	return updated.ActivityTypes(), nil
}

// UpdateActivityType rewrites the display texts of an existing type, looked
// up through the flat projection. The type stays on the platform that owns
// it; only the display texts change.
func (s *ActivitySettingsService) UpdateActivityType(
	ctx context.Context,
	segmentID uuid.UUID,
	key, typeName string,
) (segment.ActivityTypes, error) {
	if strings.TrimSpace(typeName) == "" {
		return nil, serrors.NewFieldRequiredError("type", "Segments.ActivityTypes.TypeRequired")
	}

	seg, err := s.repo.GetByID(ctx, segmentID)
	if err != nil {
		return nil, err
	}

	typeKey := segment.NormalizeKey(key)
	flat := seg.ActivityTypes().Flatten()
	entry, ok := flat[typeKey]
	if !ok {
		return nil, ErrActivityTypeNotFound(typeKey)
	}

	def := entry.ActivityTypeDefinition
	def.Display = segment.NewActivityTypeDefinition(typeName).Display
	types := seg.ActivityTypes().Replace(entry.Platform, typeKey, def)

	updated, err := s.repo.Update(ctx, seg.WithActivityTypes(types))
	if err != nil {
		return nil, err
	}

	metrics.ActivityTypeMutations.WithLabelValues("update").Inc()
	s.publisher.Publish(segment.NewUpdatedEvent(seg, updated))
	return updated.ActivityTypes(), nil
}

// DestroyActivityType removes a type by its flat key. Destroying an absent
// key is a no-op, not an error.
func (s *ActivitySettingsService) DestroyActivityType(
	ctx context.Context,
	segmentID uuid.UUID,
	key string,
) (segment.ActivityTypes, error) {
	seg, err := s.repo.GetByID(ctx, segmentID)
	if err != nil {
		return nil, err
	}

	typeKey := segment.NormalizeKey(key)
	flat := seg.ActivityTypes().Flatten()
	entry, ok := flat[typeKey]
	if !ok {
		return seg.ActivityTypes(), nil
	}

	types := seg.ActivityTypes().Remove(entry.Platform, typeKey)
	updated, err := s.repo.Update(ctx, seg.WithActivityTypes(types))
	if err != nil {
		return nil, err
	}

	metrics.ActivityTypeMutations.WithLabelValues("destroy").Inc()
	s.publisher.Publish(segment.NewUpdatedEvent(seg, updated))
	return updated.ActivityTypes(), nil
}

// ListActivityTypes returns the nested configuration unchanged.
func (s *ActivitySettingsService) ListActivityTypes(ctx context.Context, segmentID uuid.UUID) (segment.ActivityTypes, error) {
	seg, err := s.repo.GetByID(ctx, segmentID)
	if err != nil {
		return nil, err
	}
	return seg.ActivityTypes(), nil
}

// UpdateActivityChannels appends a channel to the platform's ordered list,
// suppressing duplicates.
func (s *ActivitySettingsService) UpdateActivityChannels(
	ctx context.Context,
	segmentID uuid.UUID,
	platform, channel string,
) (segment.ActivityChannels, error) {
	if strings.TrimSpace(channel) == "" {
		return nil, serrors.NewFieldRequiredError("channel", "Segments.ActivityChannels.ChannelRequired")
	}

	seg, err := s.repo.GetByID(ctx, segmentID)
	if err != nil {
		return nil, err
	}

	platformKey := segment.NormalizeKey(platform)
	if platformKey == "" {
		platformKey = segment.PlatformOther
	}

	channels, changed := seg.ActivityChannels().Append(platformKey, channel)
	if !changed {
		return seg.ActivityChannels(), nil
	}

	updated, err := s.repo.Update(ctx, seg.WithActivityChannels(channels))
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(segment.NewUpdatedEvent(seg, updated))
	return updated.ActivityChannels(), nil
}
