package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
	"github.com/commverse/community-sdk/modules/community/services"
)

func TestSegmentQueryService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemSegmentRepository()
	writeSvc, _ := newSegmentService(repo, repo)
	group, err := writeSvc.CreateProjectGroup(ctx, segment.New("Acme", "acme", segment.LevelProjectGroup))
	require.NoError(t, err)

	querySvc := services.NewSegmentQueryService(repo)

	t.Run("GetByID_Hit", func(t *testing.T) {
		found, err := querySvc.GetByID(ctx, group.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, group.ID(), found.ID())
	})

	t.Run("GetByID_Miss_Yields_Nil_Nil", func(t *testing.T) {
		found, err := querySvc.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("GetBySlug_Is_Level_Scoped", func(t *testing.T) {
		found, err := querySvc.GetBySlug(ctx, "acme", segment.LevelProject)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, segment.LevelProject, found.Level())

		missing, err := querySvc.GetBySlug(ctx, "ghost", segment.LevelProject)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Level_Listings_And_Count", func(t *testing.T) {
		groups, err := querySvc.GetProjectGroups(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, groups, 1)

		projects, err := querySvc.GetProjects(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, projects, 1)

		subprojects, err := querySvc.GetSubprojects(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, subprojects, 1)

		count, err := querySvc.Count(ctx, segment.LevelSubproject, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}
