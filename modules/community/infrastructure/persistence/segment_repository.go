package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
	"github.com/commverse/community-sdk/modules/community/infrastructure/persistence/models"
	"github.com/commverse/community-sdk/pkg/composables"
)

const (
	segmentFindQuery = `
        SELECT
            s.id,
            s.level,
            s.name,
            s.slug,
            s.parent_id,
            s.parent_slug,
            s.parent_name,
            s.grandparent_slug,
            s.grandparent_name,
            s.custom_activity_types,
            s.activity_channels,
            s.created_at,
            s.updated_at
        FROM segments s`

	segmentCountQuery = `SELECT COUNT(s.id) FROM segments s`

	// parent_id is resolved from the denormalized parent chain at insert
	// time so that the bulk children update can key on it later. The parent
	// row is pinned by its own parent slug as well: projects in different
	// groups may share a slug, and a subproject's parent is the project whose
	// parent is the subproject's grandparent.
	segmentInsertQuery = `
        INSERT INTO segments (
            id, level, name, slug, parent_id, parent_slug, parent_name,
            grandparent_slug, grandparent_name, custom_activity_types,
            activity_channels, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4,
            (SELECT p.id FROM segments p
             WHERE p.slug = $5 AND p.level = $6
               AND COALESCE(p.parent_slug, '') = COALESCE($8, '')),
            $5, $7, $8, $9, $10, $11, $12, $13
        )`

	segmentUpdateQuery = `
        UPDATE segments SET
            name = $2,
            slug = $3,
            custom_activity_types = $4,
            activity_channels = $5,
            updated_at = $6
        WHERE id = $1`

	segmentUpdateChildrenQuery = `
        UPDATE segments SET
            parent_name = COALESCE($2, parent_name),
            parent_slug = COALESCE($3, parent_slug),
            updated_at = NOW()
        WHERE parent_id = $1`
)

type PgSegmentRepository struct {
	sortMap map[string]string
}

func NewSegmentRepository() segment.Repository {
	return &PgSegmentRepository{
		sortMap: map[string]string{
			"name":      "s.name",
			"slug":      "s.slug",
			"createdAt": "s.created_at",
			"updatedAt": "s.updated_at",
		},
	}
}

func (r *PgSegmentRepository) Create(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	dbSegment, err := ToDBSegment(data)
	if err != nil {
		return nil, err
	}

	parentLevel := ""
	if level, ok := data.Level().Parent(); ok {
		parentLevel = string(level)
	}

	if _, err := tx.Exec(ctx, segmentInsertQuery,
		dbSegment.ID,
		dbSegment.Level,
		dbSegment.Name,
		dbSegment.Slug,
		dbSegment.ParentSlug,
		parentLevel,
		dbSegment.ParentName,
		dbSegment.GrandparentSlug,
		dbSegment.GrandparentName,
		dbSegment.CustomActivityTypes,
		dbSegment.ActivityChannels,
		dbSegment.CreatedAt,
		dbSegment.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create segment")
	}

	return r.GetByID(ctx, data.ID())
}

func (r *PgSegmentRepository) Update(ctx context.Context, data segment.Segment) (segment.Segment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	dbSegment, err := ToDBSegment(data)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, segmentUpdateQuery,
		dbSegment.ID,
		dbSegment.Name,
		dbSegment.Slug,
		dbSegment.CustomActivityTypes,
		dbSegment.ActivityChannels,
		dbSegment.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update segment")
	}

	return r.GetByID(ctx, data.ID())
}

func (r *PgSegmentRepository) UpdateChildren(ctx context.Context, parentID uuid.UUID, changes segment.ChildChanges) error {
	if changes.Empty() {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, segmentUpdateChildrenQuery,
		parentID.String(),
		changes.Name,
		changes.Slug,
	); err != nil {
		return errors.Wrap(err, "failed to update segment children")
	}
	return nil
}

func (r *PgSegmentRepository) GetByID(ctx context.Context, id uuid.UUID) (segment.Segment, error) {
	segments, err := r.querySegments(ctx, segmentFindQuery+" WHERE s.id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, segment.ErrSegmentNotFound
	}
	return segments[0], nil
}

func (r *PgSegmentRepository) GetBySlug(ctx context.Context, slug string, level segment.Level) (segment.Segment, error) {
	segments, err := r.querySegments(ctx,
		segmentFindQuery+" WHERE s.slug = $1 AND s.level = $2",
		slug, string(level),
	)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, segment.ErrSegmentNotFound
	}
	return segments[0], nil
}

func (r *PgSegmentRepository) GetProjectGroups(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return r.queryByLevel(ctx, segment.LevelProjectGroup, params)
}

func (r *PgSegmentRepository) GetProjects(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return r.queryByLevel(ctx, segment.LevelProject, params)
}

func (r *PgSegmentRepository) GetSubprojects(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return r.queryByLevel(ctx, segment.LevelSubproject, params)
}

func (r *PgSegmentRepository) Count(ctx context.Context, level segment.Level, params *segment.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	where, args := r.buildFilters(level, params)
	var count int64
	if err := tx.QueryRow(ctx,
		segmentCountQuery+" WHERE "+strings.Join(where, " AND "),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count segments")
	}
	return count, nil
}

func (r *PgSegmentRepository) queryByLevel(ctx context.Context, level segment.Level, params *segment.FindParams) ([]segment.Segment, error) {
	if params == nil {
		params = &segment.FindParams{}
	}

	where, args := r.buildFilters(level, params)
	query := segmentFindQuery + " WHERE " + strings.Join(where, " AND ") + r.orderBy(params)
	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
	}
	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", params.Offset)
	}

	return r.querySegments(ctx, query, args...)
}

func (r *PgSegmentRepository) buildFilters(level segment.Level, params *segment.FindParams) ([]string, []interface{}) {
	where := []string{"s.level = $1"}
	args := []interface{}{string(level)}

	if params != nil && params.Search != "" {
		index := len(args) + 1
		where = append(where, fmt.Sprintf("(s.name ILIKE $%d OR s.slug ILIKE $%d)", index, index))
		args = append(args, "%"+params.Search+"%")
	}
	return where, args
}

func (r *PgSegmentRepository) orderBy(params *segment.FindParams) string {
	columns := make([]string, 0, len(params.SortBy))
	for _, field := range params.SortBy {
		if column, ok := r.sortMap[field]; ok {
			columns = append(columns, column)
		}
	}
	if len(columns) == 0 {
		columns = []string{"s.created_at"}
	}
	return " ORDER BY " + strings.Join(columns, ", ")
}

func (r *PgSegmentRepository) querySegments(ctx context.Context, query string, args ...interface{}) ([]segment.Segment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query segments")
	}
	defer rows.Close()

	segments := make([]segment.Segment, 0)
	for rows.Next() {
		var dbSegment models.Segment
		if err := rows.Scan(
			&dbSegment.ID,
			&dbSegment.Level,
			&dbSegment.Name,
			&dbSegment.Slug,
			&dbSegment.ParentID,
			&dbSegment.ParentSlug,
			&dbSegment.ParentName,
			&dbSegment.GrandparentSlug,
			&dbSegment.GrandparentName,
			&dbSegment.CustomActivityTypes,
			&dbSegment.ActivityChannels,
			&dbSegment.CreatedAt,
			&dbSegment.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan segment")
		}

		entity, err := ToDomainSegment(&dbSegment)
		if err != nil {
			return nil, err
		}
		segments = append(segments, entity)
	}
	return segments, rows.Err()
}
