package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/commverse/community-sdk/modules/community/domain/aggregates/segment"
)

// SegmentQueryService is a read-only facade over the segment repository.
// Lookups that miss yield a nil segment, not an error.
type SegmentQueryService struct {
	repo segment.Repository
}

func NewSegmentQueryService(repo segment.Repository) *SegmentQueryService {
	return &SegmentQueryService{repo: repo}
}

func (s *SegmentQueryService) GetByID(ctx context.Context, id uuid.UUID) (segment.Segment, error) {
	found, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, segment.ErrSegmentNotFound) {
		return nil, nil
	}
	return found, err
}

func (s *SegmentQueryService) GetBySlug(ctx context.Context, slug string, level segment.Level) (segment.Segment, error) {
	found, err := s.repo.GetBySlug(ctx, slug, level)
	if errors.Is(err, segment.ErrSegmentNotFound) {
		return nil, nil
	}
	return found, err
}

func (s *SegmentQueryService) GetProjectGroups(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return s.repo.GetProjectGroups(ctx, params)
}

func (s *SegmentQueryService) GetProjects(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return s.repo.GetProjects(ctx, params)
}

func (s *SegmentQueryService) GetSubprojects(ctx context.Context, params *segment.FindParams) ([]segment.Segment, error) {
	return s.repo.GetSubprojects(ctx, params)
}

func (s *SegmentQueryService) Count(ctx context.Context, level segment.Level, params *segment.FindParams) (int64, error) {
	return s.repo.Count(ctx, level, params)
}
