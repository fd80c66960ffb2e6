package segment_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
)

func TestSegment_Validate(t *testing.T) {
	t.Parallel()

	t.Run("Valid_Project_Group", func(t *testing.T) {
		s := segment.New("Acme", "acme", segment.LevelProjectGroup)
		require.NoError(t, s.Validate())
	})

	t.Run("Group_With_Parent_Is_Invalid", func(t *testing.T) {
		s := segment.New("Acme", "acme", segment.LevelProjectGroup,
			segment.WithParent("other", "Other"))
		require.Error(t, s.Validate())
	})

	t.Run("Project_Requires_Parent", func(t *testing.T) {
		s := segment.New("Acme", "acme", segment.LevelProject)
		require.Error(t, s.Validate())

		s = segment.New("Acme", "acme", segment.LevelProject,
			segment.WithParent("group", "Group"))
		require.NoError(t, s.Validate())
	})

	t.Run("Project_With_Grandparent_Is_Invalid", func(t *testing.T) {
		s := segment.New("Acme", "acme", segment.LevelProject,
			segment.WithParent("group", "Group"),
			segment.WithGrandparent("group", "Group"))
		require.Error(t, s.Validate())
	})

	t.Run("Subproject_Requires_Both", func(t *testing.T) {
		s := segment.New("Acme", "acme", segment.LevelSubproject,
			segment.WithParent("project", "Project"))
		require.Error(t, s.Validate())

		s = segment.New("Acme", "acme", segment.LevelSubproject,
			segment.WithParent("project", "Project"),
			segment.WithGrandparent("group", "Group"))
		require.NoError(t, s.Validate())
	})

	t.Run("Invalid_Level", func(t *testing.T) {
		s := segment.New("Acme", "acme", segment.Level("team"))
		require.Error(t, s.Validate())
	})
}

func TestSegment_Withers(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	s := segment.New("Acme", "acme", segment.LevelProjectGroup, segment.WithID(id))

	renamed := s.WithName("Acme Corp").WithSlug("acme-corp")
	assert.Equal(t, "Acme Corp", renamed.Name())
	assert.Equal(t, "acme-corp", renamed.Slug())
	assert.Equal(t, id, renamed.ID())

	// Withers return copies.
	assert.Equal(t, "Acme", s.Name())
	assert.Equal(t, "acme", s.Slug())
}

func TestLevel_Relations(t *testing.T) {
	t.Parallel()

	child, ok := segment.LevelProjectGroup.Child()
	require.True(t, ok)
	assert.Equal(t, segment.LevelProject, child)

	child, ok = segment.LevelProject.Child()
	require.True(t, ok)
	assert.Equal(t, segment.LevelSubproject, child)

	_, ok = segment.LevelSubproject.Child()
	assert.False(t, ok)

	parent, ok := segment.LevelSubproject.Parent()
	require.True(t, ok)
	assert.Equal(t, segment.LevelProject, parent)

	_, ok = segment.LevelProjectGroup.Parent()
	assert.False(t, ok)

	assert.True(t, segment.LevelSubproject.IsSubproject())
	assert.False(t, segment.LevelProject.IsSubproject())
}
