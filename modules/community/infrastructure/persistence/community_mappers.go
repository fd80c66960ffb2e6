package persistence

import (
	"database/sql"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
	"github.com/commverse/community-sdk/modules/community/infrastructure/persistence/models"
)

func ToDomainSegment(dbSegment *models.Segment) (segment.Segment, error) {
	id, err := uuid.Parse(dbSegment.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid segment id")
	}

	activityTypes := segment.ActivityTypes{}
	if len(dbSegment.CustomActivityTypes) > 0 {
		if err := json.Unmarshal(dbSegment.CustomActivityTypes, &activityTypes); err != nil {
			return nil, errors.Wrap(err, "failed to decode custom activity types")
		}
	}

	activityChannels := segment.ActivityChannels{}
	if len(dbSegment.ActivityChannels) > 0 {
		if err := json.Unmarshal(dbSegment.ActivityChannels, &activityChannels); err != nil {
			return nil, errors.Wrap(err, "failed to decode activity channels")
		}
	}

	options := []segment.Option{
		segment.WithID(id),
		segment.WithParent(dbSegment.ParentSlug.String, dbSegment.ParentName.String),
		segment.WithGrandparent(dbSegment.GrandparentSlug.String, dbSegment.GrandparentName.String),
		segment.WithActivityTypes(activityTypes),
		segment.WithActivityChannels(activityChannels),
		segment.WithCreatedAt(dbSegment.CreatedAt),
		segment.WithUpdatedAt(dbSegment.UpdatedAt),
	}
	if dbSegment.ParentID.Valid {
		parentID, err := uuid.Parse(dbSegment.ParentID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid parent id")
		}
		options = append(options, segment.WithParentID(parentID))
	}

	return segment.New(
		dbSegment.Name,
		dbSegment.Slug,
		segment.Level(dbSegment.Level),
		options...,
	), nil
}

func ToDBSegment(entity segment.Segment) (*models.Segment, error) {
	activityTypes, err := json.Marshal(entity.ActivityTypes())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode custom activity types")
	}
	activityChannels, err := json.Marshal(entity.ActivityChannels())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode activity channels")
	}

	return &models.Segment{
		ID:                  entity.ID().String(),
		Level:               string(entity.Level()),
		Name:                entity.Name(),
		Slug:                entity.Slug(),
		ParentSlug:          nullString(entity.ParentSlug()),
		ParentName:          nullString(entity.ParentName()),
		GrandparentSlug:     nullString(entity.GrandparentSlug()),
		GrandparentName:     nullString(entity.GrandparentName()),
		CustomActivityTypes: activityTypes,
		ActivityChannels:    activityChannels,
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
